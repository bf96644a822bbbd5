package handlers_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCustomerSaveAndList(t *testing.T) {
	app, _ := newTestApp(t)

	status, b := postJSON(t, app, "/api/v1/customers",
		`{"name":"Ana Reyes","phone":"+1 555 0101","email":"ana@example.com"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create: want 201, got %d (%s)", status, b)
	}

	// name is the only required field
	status, _ = postJSON(t, app, "/api/v1/customers", `{"phone":"123456"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("nameless customer: want 400, got %d", status)
	}
	status, _ = postJSON(t, app, "/api/v1/customers", `{"name":"Bad Mail","email":"not-an-email"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("bad email: want 400, got %d", status)
	}

	status, b = getJSON(t, app, "/api/v1/customers")
	if status != fiber.StatusOK {
		t.Fatalf("list: want 200, got %d", status)
	}
	var customers []map[string]any
	if err := json.Unmarshal(b, &customers); err != nil {
		t.Fatalf("list must be a JSON array: %v (%s)", err, b)
	}
	if len(customers) != 1 || customers[0]["name"] != "Ana Reyes" {
		t.Fatalf("bad customer list: %s", b)
	}
}

func TestCustomerGetOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	status, b := postJSON(t, app, "/api/v1/customers", `{"name":"Ben Cruz","phone":"555 0102"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create: want 201, got %d (%s)", status, b)
	}
	var created map[string]int64
	if err := json.Unmarshal(b, &created); err != nil {
		t.Fatal(err)
	}

	status, b = getJSON(t, app, fmt.Sprintf("/api/v1/customers/%d", created["id"]))
	if status != fiber.StatusOK {
		t.Fatalf("get: want 200, got %d (%s)", status, b)
	}
	var cust map[string]any
	if err := json.Unmarshal(b, &cust); err != nil {
		t.Fatal(err)
	}
	if cust["name"] != "Ben Cruz" || cust["phone"] != "555 0102" {
		t.Fatalf("bad customer: %s", b)
	}

	status, _ = getJSON(t, app, "/api/v1/customers/9999")
	if status != fiber.StatusNotFound {
		t.Fatalf("missing customer: want 404, got %d", status)
	}
	status, _ = getJSON(t, app, "/api/v1/customers/abc")
	if status != fiber.StatusBadRequest {
		t.Fatalf("bad id: want 400, got %d", status)
	}
}

func TestBarcodeLookupOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	seedProduct(t, db, "Wood Glue", 6, 12)
	if _, err := db.Exec(`UPDATE products SET barcode = '7501234567890' WHERE name = 'Wood Glue'`); err != nil {
		t.Fatal(err)
	}

	status, b := getJSON(t, app, "/api/v1/products/barcode/7501234567890")
	if status != fiber.StatusOK || !strings.Contains(string(b), "Wood Glue") {
		t.Fatalf("want product by barcode, got %d (%s)", status, b)
	}
	status, _ = getJSON(t, app, "/api/v1/products/barcode/0000000000000")
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown barcode: want 404, got %d", status)
	}
	status, _ = getJSON(t, app, "/api/v1/products/barcode/%20")
	if status != fiber.StatusBadRequest {
		t.Fatalf("blank barcode: want 400, got %d", status)
	}
}

func TestDashboardMetricsOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	seedProduct(t, db, "Hammer", 15, 2) // min level 0 < stock, not low

	status, b := getJSON(t, app, "/api/v1/dashboard")
	if status != fiber.StatusOK {
		t.Fatalf("want 200, got %d", status)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["totalProducts"].(float64) != 1 || m["totalCustomers"].(float64) != 0 {
		t.Fatalf("bad metrics: %s", b)
	}
}

func TestUnitsSeeded(t *testing.T) {
	app, _ := newTestApp(t)
	status, b := getJSON(t, app, "/api/v1/units")
	if status != fiber.StatusOK {
		t.Fatalf("want 200, got %d", status)
	}
	var units []map[string]any
	if err := json.Unmarshal(b, &units); err != nil {
		t.Fatal(err)
	}
	if len(units) != 11 {
		t.Fatalf("want the 11 default units, got %d", len(units))
	}
}

func TestSaveCategoryAndUnit(t *testing.T) {
	app, _ := newTestApp(t)

	status, b := postJSON(t, app, "/api/v1/categories",
		`{"name":"Adhesives","description":"Glues, epoxies, and sealants"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create category: want 201, got %d (%s)", status, b)
	}
	status, _ = postJSON(t, app, "/api/v1/categories", `{"description":"nameless"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("nameless category: want 400, got %d", status)
	}
	status, b = getJSON(t, app, "/api/v1/categories")
	if status != fiber.StatusOK || !strings.Contains(string(b), "Adhesives") {
		t.Fatalf("category list: got %d (%s)", status, b)
	}

	status, b = postJSON(t, app, "/api/v1/units", `{"name":"Dozen","abbreviation":"dz"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create unit: want 201, got %d (%s)", status, b)
	}
	status, _ = postJSON(t, app, "/api/v1/units", `{"name":"Pair"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("unit without abbreviation: want 400, got %d", status)
	}

	// update by id
	var created map[string]int64
	if err := json.Unmarshal(b, &created); err != nil {
		t.Fatal(err)
	}
	status, _ = postJSON(t, app, "/api/v1/units",
		fmt.Sprintf(`{"id":%d,"name":"Dozen","abbreviation":"doz"}`, created["id"]))
	if status != fiber.StatusOK {
		t.Fatalf("update unit: want 200, got %d", status)
	}
	status, b = getJSON(t, app, "/api/v1/units")
	if status != fiber.StatusOK || !strings.Contains(string(b), "doz") {
		t.Fatalf("unit list after update: got %d (%s)", status, b)
	}
}
