package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hardstore/internal/domain"
	applog "hardstore/internal/log"
	"hardstore/internal/repos"
	"hardstore/internal/validate"
)

type LookupHandler struct {
	Lookups *repos.LookupRepo
}

// GET /api/v1/categories
func (h *LookupHandler) Categories(c *fiber.Ctx) error {
	out, err := h.Lookups.Categories()
	if err != nil {
		return fail(c, "lookups.categories.fail", err)
	}
	return c.JSON(out)
}

// POST /api/v1/categories — creates when id is absent, updates otherwise.
func (h *LookupHandler) SaveCategory(c *fiber.Ctx) error {
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return badRequest(c, "malformed category body")
	}
	name, ok := validate.Name(cat.Name)
	if !ok {
		return badRequest(c, "category name is required")
	}
	cat.Name = name

	if cat.ID == 0 {
		id, err := h.Lookups.CreateCategory(cat)
		if err != nil {
			return fail(c, "lookups.category.create.fail", err)
		}
		applog.Audit(c, "lookups.category.create", map[string]any{"category_id": id})
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}

	n, err := h.Lookups.UpdateCategory(cat)
	if err != nil {
		return fail(c, "lookups.category.update.fail", err)
	}
	if n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "category not found"})
	}
	applog.Audit(c, "lookups.category.update", map[string]any{"category_id": cat.ID})
	return c.JSON(fiber.Map{"id": cat.ID})
}

// GET /api/v1/units
func (h *LookupHandler) Units(c *fiber.Ctx) error {
	out, err := h.Lookups.Units()
	if err != nil {
		return fail(c, "lookups.units.fail", err)
	}
	return c.JSON(out)
}

// POST /api/v1/units — creates when id is absent, updates otherwise.
func (h *LookupHandler) SaveUnit(c *fiber.Ctx) error {
	var u domain.Unit
	if err := c.BodyParser(&u); err != nil {
		return badRequest(c, "malformed unit body")
	}
	name, ok := validate.Name(u.Name)
	if !ok {
		return badRequest(c, "unit name is required")
	}
	u.Name = name
	if u.Abbreviation == "" {
		return badRequest(c, "unit abbreviation is required")
	}

	if u.ID == 0 {
		id, err := h.Lookups.CreateUnit(u)
		if err != nil {
			return fail(c, "lookups.unit.create.fail", err)
		}
		applog.Audit(c, "lookups.unit.create", map[string]any{"unit_id": id})
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}

	n, err := h.Lookups.UpdateUnit(u)
	if err != nil {
		return fail(c, "lookups.unit.update.fail", err)
	}
	if n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unit not found"})
	}
	applog.Audit(c, "lookups.unit.update", map[string]any{"unit_id": u.ID})
	return c.JSON(fiber.Map{"id": u.ID})
}
