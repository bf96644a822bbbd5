package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"hardstore/internal/domain"
	"hardstore/internal/http/handlers"
	"hardstore/internal/repos"
)

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	app := fiber.New()
	app.Use(requestid.New())

	deps := handlers.NewDeps(db)
	api := app.Group("/api/v1")
	api.Get("/dashboard", deps.DashboardHandler.Metrics)
	api.Get("/customers", deps.CustomerHandler.List)
	api.Post("/customers", deps.CustomerHandler.Save)
	api.Get("/customers/:id", deps.CustomerHandler.Get)
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", deps.ProductHandler.Save)
	api.Get("/products/low-stock", deps.ProductHandler.LowStock)
	api.Get("/products/barcode/:code", deps.ProductHandler.GetByBarcode)
	api.Get("/categories", deps.LookupHandler.Categories)
	api.Post("/categories", deps.LookupHandler.SaveCategory)
	api.Get("/units", deps.LookupHandler.Units)
	api.Post("/units", deps.LookupHandler.SaveUnit)
	api.Get("/invoices", deps.InvoiceHandler.List)
	api.Post("/invoices", deps.InvoiceHandler.Create)
	api.Get("/invoices/next-number", deps.InvoiceHandler.NextNumber)
	api.Get("/invoices/:id", deps.InvoiceHandler.Get)
	api.Delete("/invoices/:id", deps.InvoiceHandler.Delete)

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func seedProduct(t *testing.T, db *sqlx.DB, name string, price, qty float64) int64 {
	t.Helper()
	id, err := repos.NewProductRepo(db).Create(domain.Product{
		Name: name, SellingPrice: price, CurrentStock: qty,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	pid := seedProduct(t, db, "Wall Paint 5L", 250, 20)

	body := fmt.Sprintf(`{"tax":90,"paymentStatus":"Paid","paymentMethod":"Cash",
	  "items":[{"productId":%d,"quantity":5,"unitPrice":250}]}`, pid)
	status, b := postJSON(t, app, "/api/v1/invoices", body)
	if status != fiber.StatusCreated {
		t.Fatalf("create: want 201, got %d (%s)", status, b)
	}
	var inv domain.Invoice
	if err := json.Unmarshal(b, &inv); err != nil {
		t.Fatal(err)
	}
	if inv.InvoiceNumber != "INV-00001" || inv.FinalAmount != 1340 {
		t.Fatalf("bad created invoice: %+v", inv)
	}

	status, b = getJSON(t, app, fmt.Sprintf("/api/v1/invoices/%d", inv.ID))
	if status != fiber.StatusOK {
		t.Fatalf("get: want 200, got %d (%s)", status, b)
	}

	// list contract is always a JSON array
	status, b = getJSON(t, app, "/api/v1/invoices")
	if status != fiber.StatusOK || !strings.HasPrefix(strings.TrimSpace(string(b)), "[") {
		t.Fatalf("list: want 200 + array, got %d (%s)", status, b)
	}

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/invoices/%d", inv.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}

	p, err := repos.NewProductRepo(db).Get(pid)
	if err != nil {
		t.Fatal(err)
	}
	if p.CurrentStock != 20 {
		t.Fatalf("stock must be restored to 20, got %v", p.CurrentStock)
	}

	status, _ = getJSON(t, app, fmt.Sprintf("/api/v1/invoices/%d", inv.ID))
	if status != fiber.StatusNotFound {
		t.Fatalf("get after delete: want 404, got %d", status)
	}
}

func TestInvoiceErrorsOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	pid := seedProduct(t, db, "PVC Pipe 2m", 8, 3)

	// empty items
	status, b := postJSON(t, app, "/api/v1/invoices", `{"items":[]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("empty items: want 400, got %d (%s)", status, b)
	}

	// unknown product
	status, _ = postJSON(t, app, "/api/v1/invoices",
		`{"items":[{"productId":9999,"quantity":1,"unitPrice":5}]}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown product: want 404, got %d", status)
	}

	// oversell
	status, _ = postJSON(t, app, "/api/v1/invoices",
		fmt.Sprintf(`{"items":[{"productId":%d,"quantity":4,"unitPrice":8}]}`, pid))
	if status != fiber.StatusConflict {
		t.Fatalf("oversell: want 409, got %d", status)
	}

	// nothing persisted by the failures above
	status, b = getJSON(t, app, "/api/v1/invoices")
	if status != fiber.StatusOK || strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("want empty invoice list, got %d (%s)", status, b)
	}

	// delete of a missing invoice
	req := httptest.NewRequest("DELETE", "/api/v1/invoices/777", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("missing delete: want 404, got %d", resp.StatusCode)
	}
}

func TestNextNumberAdvisory(t *testing.T) {
	app, _ := newTestApp(t)
	status, b := getJSON(t, app, "/api/v1/invoices/next-number")
	if status != fiber.StatusOK {
		t.Fatalf("want 200, got %d", status)
	}
	var out map[string]string
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out["invoiceNumber"] != "INV-00001" {
		t.Fatalf("want INV-00001 preview, got %q", out["invoiceNumber"])
	}
}
