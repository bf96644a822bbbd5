package services_test

import (
	"errors"
	"testing"

	"hardstore/internal/domain"
	"hardstore/internal/repos"
	"hardstore/internal/services"

	"github.com/jmoiron/sqlx"
)

func newCatalog(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(db, repos.NewProductRepo(db), repos.NewStockTxRepo(db))
}

func TestSaveProduct_Validation(t *testing.T) {
	db := memdb(t)
	svc := newCatalog(db)

	if _, err := svc.SaveProduct(domain.Product{SellingPrice: 5}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("nameless product: want ErrValidation, got %v", err)
	}
	if _, err := svc.SaveProduct(domain.Product{Name: "Tape", SellingPrice: -1}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("negative price: want ErrValidation, got %v", err)
	}
	if _, err := svc.SaveProduct(domain.Product{ID: 424242, Name: "Tape", SellingPrice: 2}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("update of missing product: want ErrNotFound, got %v", err)
	}

	id, err := svc.SaveProduct(domain.Product{Name: "Duct Tape", PurchasePrice: 1, SellingPrice: 2.5})
	if err != nil {
		t.Fatal(err)
	}
	p, err := svc.Product(id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Duct Tape" || p.SellingPrice != 2.5 {
		t.Fatalf("bad saved product: %+v", p)
	}
}

func TestProductByBarcode(t *testing.T) {
	db := memdb(t)
	svc := newCatalog(db)

	id, err := svc.SaveProduct(domain.Product{Name: "Wood Glue", SellingPrice: 6, Barcode: "7501234567890"})
	if err != nil {
		t.Fatal(err)
	}

	p, err := svc.ProductByBarcode("7501234567890")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != id {
		t.Fatalf("want product %d, got %d", id, p.ID)
	}
	if _, err := svc.ProductByBarcode("0000000000000"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unknown barcode: want ErrNotFound, got %v", err)
	}
}

func TestAdjustStock(t *testing.T) {
	db := memdb(t)
	svc := newCatalog(db)
	pid := addProduct(t, db, "Sandpaper", 1.5, 10)

	if err := svc.AdjustStock(pid, 25, domain.StockTypePurchase, "restock from supplier"); err != nil {
		t.Fatal(err)
	}
	if got := stock(t, db, pid); got != 35 {
		t.Fatalf("want 35 after purchase, got %v", got)
	}

	if err := svc.AdjustStock(pid, -5, domain.StockTypeAdjustment, "damaged sheets"); err != nil {
		t.Fatal(err)
	}
	if got := stock(t, db, pid); got != 30 {
		t.Fatalf("want 30 after adjustment, got %v", got)
	}

	// audit rows for both movements
	txns, err := repos.NewStockTxRepo(db).ListByProduct(pid, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(txns) != 2 {
		t.Fatalf("want two audit rows, got %+v", txns)
	}

	if err := svc.AdjustStock(pid, -100, domain.StockTypeAdjustment, ""); !errors.Is(err, services.ErrInsufficientStock) {
		t.Fatalf("below-zero adjustment: want ErrInsufficientStock, got %v", err)
	}
	if err := svc.AdjustStock(pid, 1, domain.StockTypeSale, ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("Sale type via adjustment: want ErrValidation, got %v", err)
	}
	if err := svc.AdjustStock(9999, 1, domain.StockTypePurchase, ""); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing product: want ErrNotFound, got %v", err)
	}
}

func TestLowStock_InclusiveBoundary(t *testing.T) {
	db := memdb(t)
	svc := newCatalog(db)

	at, err := svc.SaveProduct(domain.Product{Name: "At Threshold", SellingPrice: 1, CurrentStock: 5, MinStockLevel: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveProduct(domain.Product{Name: "Above Threshold", SellingPrice: 1, CurrentStock: 6, MinStockLevel: 5}); err != nil {
		t.Fatal(err)
	}

	low, err := svc.LowStockProducts()
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 1 || low[0].ID != at {
		t.Fatalf("stock == min must count as low, got %+v", low)
	}
}
