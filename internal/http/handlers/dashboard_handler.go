package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hardstore/internal/repos"
)

type DashboardHandler struct {
	Reports *repos.ReportRepo
}

// GET / — server-rendered aggregate metrics page.
func (h *DashboardHandler) Page(c *fiber.Ctx) error {
	m, err := h.Reports.Dashboard()
	if err != nil {
		return fail(c, "dashboard.page.fail", err)
	}
	return c.Render("dashboard", fiber.Map{"Metrics": m})
}

// GET /api/v1/dashboard
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.Reports.Dashboard()
	if err != nil {
		return fail(c, "dashboard.metrics.fail", err)
	}
	return c.JSON(m)
}
