package main

import (
	"io"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"hardstore/internal/config"
	"hardstore/internal/http/handlers"
	applog "hardstore/internal/log"
	"hardstore/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())

	deps := handlers.NewDeps(db)

	// Dashboard page
	app.Get("/", deps.DashboardHandler.Page)

	api := app.Group("/api/v1")
	api.Get("/dashboard", deps.DashboardHandler.Metrics)

	// Customers
	api.Get("/customers", deps.CustomerHandler.List)
	api.Post("/customers", deps.CustomerHandler.Save)
	api.Get("/customers/:id", deps.CustomerHandler.Get)
	api.Delete("/customers/:id", deps.CustomerHandler.Delete)
	api.Get("/customers/:id/sales", deps.CustomerHandler.Sales)

	// Products (static segments before :id)
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", deps.ProductHandler.Save)
	api.Get("/products/low-stock", deps.ProductHandler.LowStock)
	api.Get("/products/barcode/:code", deps.ProductHandler.GetByBarcode)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Post("/products/:id/stock", deps.ProductHandler.AdjustStock)
	api.Get("/products/:id/stock-history", deps.ProductHandler.StockHistory)

	// Lookups
	api.Get("/categories", deps.LookupHandler.Categories)
	api.Post("/categories", deps.LookupHandler.SaveCategory)
	api.Get("/units", deps.LookupHandler.Units)
	api.Post("/units", deps.LookupHandler.SaveUnit)

	// Invoices
	api.Get("/invoices", deps.InvoiceHandler.List)
	api.Post("/invoices", deps.InvoiceHandler.Create)
	api.Get("/invoices/next-number", deps.InvoiceHandler.NextNumber)
	api.Get("/invoices/:id", deps.InvoiceHandler.Get)
	api.Get("/invoices/:id/items", deps.InvoiceHandler.Items)
	api.Delete("/invoices/:id", deps.InvoiceHandler.Delete)
	api.Post("/invoices/:id/payment", deps.InvoiceHandler.UpdatePayment)

	// Reports
	api.Get("/reports/daily-sales", deps.ReportHandler.DailySales)
	api.Get("/reports/sales-range", deps.ReportHandler.SalesRange)
	api.Get("/reports/top-products", deps.ReportHandler.TopProducts)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
