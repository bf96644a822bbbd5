package handlers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"hardstore/internal/domain"
	applog "hardstore/internal/log"
	"hardstore/internal/repos"
	"hardstore/internal/services"
	"hardstore/internal/validate"
)

type CustomerHandler struct {
	Customers *repos.CustomerRepo
	Ledger    *services.LedgerService
}

// GET /api/v1/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.Customers.List()
	if err != nil {
		return fail(c, "customers.list.fail", err)
	}
	return c.JSON(out)
}

// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	cust, err := h.Customers.Get(id)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "customer not found"})
	}
	if err != nil {
		return fail(c, "customers.get.fail", err)
	}
	return c.JSON(cust)
}

// POST /api/v1/customers — creates when id is absent, updates otherwise.
func (h *CustomerHandler) Save(c *fiber.Ctx) error {
	var cust domain.Customer
	if err := c.BodyParser(&cust); err != nil {
		return badRequest(c, "malformed customer body")
	}
	name, ok := validate.Name(cust.Name)
	if !ok {
		return badRequest(c, "customer name is required")
	}
	cust.Name = name
	if _, ok := validate.Phone(cust.Phone); !ok {
		return badRequest(c, "invalid phone")
	}
	if _, ok := validate.Email(cust.Email); !ok {
		return badRequest(c, "invalid email")
	}

	if cust.ID == 0 {
		id, err := h.Customers.Create(cust)
		if err != nil {
			return fail(c, "customers.create.fail", err)
		}
		applog.Audit(c, "customers.create", map[string]any{"customer_id": id})
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}

	n, err := h.Customers.Update(cust)
	if err != nil {
		return fail(c, "customers.update.fail", err)
	}
	if n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "customer not found"})
	}
	applog.Audit(c, "customers.update", map[string]any{"customer_id": cust.ID})
	return c.JSON(fiber.Map{"id": cust.ID})
}

// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	n, err := h.Customers.Delete(id)
	if err != nil {
		return fail(c, "customers.delete.fail", err)
	}
	if n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "customer not found"})
	}
	applog.Audit(c, "customers.delete", map[string]any{"customer_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/customers/:id/sales
func (h *CustomerHandler) Sales(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	out, err := h.Ledger.CustomerSales(id)
	if err != nil {
		return fail(c, "customers.sales.fail", err)
	}
	return c.JSON(out)
}
