package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "hardstore/internal/log"
	"hardstore/internal/services"
	"hardstore/internal/validate"
)

type InvoiceHandler struct {
	Ledger *services.LedgerService
}

type createInvoiceRequest struct {
	services.InvoiceDraft
	Items []services.InvoiceLine `json:"items"`
}

// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var req createInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed invoice body")
	}
	id, err := h.Ledger.CreateInvoice(req.InvoiceDraft, req.Items)
	if err != nil {
		return fail(c, "invoices.create.fail", err)
	}
	inv, err := h.Ledger.Invoice(id)
	if err != nil {
		return fail(c, "invoices.create.load.fail", err)
	}
	applog.Audit(c, "invoices.create", map[string]any{
		"invoice_id": id, "invoice_number": inv.InvoiceNumber, "final_amount": inv.FinalAmount,
	})
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.Ledger.ListInvoices()
	if err != nil {
		return fail(c, "invoices.list.fail", err)
	}
	return c.JSON(out)
}

// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	inv, err := h.Ledger.Invoice(id)
	if err != nil {
		return fail(c, "invoices.get.fail", err)
	}
	return c.JSON(inv)
}

// GET /api/v1/invoices/:id/items
func (h *InvoiceHandler) Items(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	out, err := h.Ledger.InvoiceItems(id)
	if err != nil {
		return fail(c, "invoices.items.fail", err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/invoices/:id — reverses stock before removing rows.
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	if err := h.Ledger.DeleteInvoice(id); err != nil {
		return fail(c, "invoices.delete.fail", err)
	}
	applog.Audit(c, "invoices.delete", map[string]any{"invoice_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/invoices/next-number — advisory preview for draft forms.
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"invoiceNumber": h.Ledger.NextInvoiceNumber()})
}

type paymentUpdate struct {
	Status string `json:"status"`
	Method string `json:"method"`
	Notes  string `json:"notes"`
}

// POST /api/v1/invoices/:id/payment
func (h *InvoiceHandler) UpdatePayment(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid invoice id")
	}
	var upd paymentUpdate
	if err := c.BodyParser(&upd); err != nil {
		return badRequest(c, "malformed payment body")
	}
	if err := h.Ledger.UpdatePaymentStatus(id, upd.Status, upd.Method, upd.Notes); err != nil {
		return fail(c, "invoices.payment.fail", err)
	}
	applog.Audit(c, "invoices.payment", map[string]any{"invoice_id": id, "status": upd.Status})
	return c.SendStatus(fiber.StatusNoContent)
}
