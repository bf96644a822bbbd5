package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "hardstore/internal/log"
	"hardstore/internal/services"
)

// fail maps a service error onto the boundary contract: typed errors become
// 4xx JSON bodies, anything else is a storage failure reported as a plain 500
// with no internals leaked.
func fail(c *fiber.Ctx, action string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
		return c.Status(status).JSON(fiber.Map{"error": "storage failure"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
