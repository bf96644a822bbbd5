package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hardstore/internal/domain"
	applog "hardstore/internal/log"
	"hardstore/internal/services"
	"hardstore/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.Products()
	if err != nil {
		return fail(c, "products.list.fail", err)
	}
	return c.JSON(out)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.Product(id)
	if err != nil {
		return fail(c, "products.get.fail", err)
	}
	return c.JSON(p)
}

// GET /api/v1/products/barcode/:code
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	code, ok := validate.Barcode(c.Params("code"))
	if !ok {
		return badRequest(c, "invalid barcode")
	}
	p, err := h.Catalog.ProductByBarcode(code)
	if err != nil {
		return fail(c, "products.barcode.fail", err)
	}
	return c.JSON(p)
}

// GET /api/v1/products/low-stock
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.Catalog.LowStockProducts()
	if err != nil {
		return fail(c, "products.lowstock.fail", err)
	}
	return c.JSON(out)
}

// POST /api/v1/products — creates when id is absent, updates otherwise.
func (h *ProductHandler) Save(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "malformed product body")
	}
	id, err := h.Catalog.SaveProduct(p)
	if err != nil {
		return fail(c, "products.save.fail", err)
	}
	applog.Audit(c, "products.save", map[string]any{"product_id": id})
	status := fiber.StatusOK
	if p.ID == 0 {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"id": id})
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

type stockAdjustment struct {
	Delta float64 `json:"delta"`
	Type  string  `json:"type"`
	Notes string  `json:"notes"`
}

// POST /api/v1/products/:id/stock
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var adj stockAdjustment
	if err := c.BodyParser(&adj); err != nil {
		return badRequest(c, "malformed stock adjustment body")
	}
	if err := h.Catalog.AdjustStock(id, adj.Delta, adj.Type, adj.Notes); err != nil {
		return fail(c, "products.stock.fail", err)
	}
	applog.Audit(c, "products.stock", map[string]any{
		"product_id": id, "delta": adj.Delta, "type": adj.Type,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/products/:id/stock-history
func (h *ProductHandler) StockHistory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	limit := validate.Limit(c.Query("limit"), 100, 500)
	out, err := h.Catalog.StockHistory(id, limit)
	if err != nil {
		return fail(c, "products.history.fail", err)
	}
	return c.JSON(out)
}
