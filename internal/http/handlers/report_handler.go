package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hardstore/internal/services"
	"hardstore/internal/validate"
)

type ReportHandler struct {
	Ledger *services.LedgerService
}

// GET /api/v1/reports/daily-sales?date=YYYY-MM-DD (defaults to today)
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format(time.DateOnly)
	}
	if _, ok := validate.Date(date); !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	out, err := h.Ledger.DailySales(date)
	if err != nil {
		return fail(c, "reports.daily.fail", err)
	}
	return c.JSON(out)
}

// GET /api/v1/reports/sales-range?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) SalesRange(c *fiber.Ctx) error {
	from, okFrom := validate.Date(c.Query("from"))
	to, okTo := validate.Date(c.Query("to"))
	if !okFrom || !okTo {
		return badRequest(c, "from and to must be YYYY-MM-DD")
	}
	out, err := h.Ledger.SalesByDateRange(from, to)
	if err != nil {
		return fail(c, "reports.range.fail", err)
	}
	return c.JSON(out)
}

// GET /api/v1/reports/top-products?limit=N
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	limit := validate.Limit(c.Query("limit"), 10, 100)
	out, err := h.Ledger.TopSellingProducts(limit)
	if err != nil {
		return fail(c, "reports.top.fail", err)
	}
	return c.JSON(out)
}
