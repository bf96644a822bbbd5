package services

import (
	"database/sql"
	"fmt"

	"hardstore/internal/domain"
	"hardstore/internal/repos"

	"github.com/jmoiron/sqlx"
)

// CatalogService owns product writes outside the sales path: CRUD plus
// audited stock adjustments (Purchase, Adjustment, Return). Sale movements
// only ever come from the ledger.
type CatalogService struct {
	DB    *sqlx.DB
	Prods *repos.ProductRepo
	Stock *repos.StockTxRepo
}

func NewCatalogService(db *sqlx.DB, prods *repos.ProductRepo, stock *repos.StockTxRepo) *CatalogService {
	return &CatalogService{DB: db, Prods: prods, Stock: stock}
}

func (s *CatalogService) validate(p domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.PurchasePrice < 0 || p.SellingPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrValidation)
	}
	if p.CurrentStock < 0 || p.MinStockLevel < 0 {
		return fmt.Errorf("%w: stock levels must not be negative", ErrValidation)
	}
	return nil
}

// SaveProduct creates when ID is zero, updates otherwise.
func (s *CatalogService) SaveProduct(p domain.Product) (int64, error) {
	if err := s.validate(p); err != nil {
		return 0, err
	}
	if p.ID == 0 {
		return s.Prods.Create(p)
	}
	n, err := s.Prods.Update(p)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: product %d", ErrNotFound, p.ID)
	}
	return p.ID, nil
}

func (s *CatalogService) DeleteProduct(id int64) error {
	n, err := s.Prods.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}

func (s *CatalogService) Product(id int64) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err == sql.ErrNoRows {
		return p, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, err
}

func (s *CatalogService) ProductByBarcode(code string) (domain.Product, error) {
	if code == "" {
		return domain.Product{}, fmt.Errorf("%w: barcode is required", ErrValidation)
	}
	p, err := s.Prods.GetByBarcode(code)
	if err == sql.ErrNoRows {
		return p, fmt.Errorf("%w: barcode %q", ErrNotFound, code)
	}
	return p, err
}

func (s *CatalogService) Products() ([]domain.Product, error) { return s.Prods.List() }

func (s *CatalogService) LowStockProducts() ([]domain.Product, error) { return s.Prods.LowStock() }

func (s *CatalogService) StockHistory(productID int64, limit int) ([]domain.StockTransaction, error) {
	return s.Stock.ListByProduct(productID, limit)
}

// AdjustStock applies a signed quantity delta and appends the matching audit
// row, atomically. Negative deltas may not drive stock below zero.
func (s *CatalogService) AdjustStock(productID int64, delta float64, txType, note string) error {
	switch txType {
	case domain.StockTypePurchase, domain.StockTypeAdjustment, domain.StockTypeReturn:
	case domain.StockTypeSale:
		return fmt.Errorf("%w: sales are recorded through invoices", ErrValidation)
	default:
		return fmt.Errorf("%w: unknown stock transaction type %q", ErrValidation, txType)
	}
	if delta == 0 {
		return fmt.Errorf("%w: quantity delta must not be zero", ErrValidation)
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := s.Prods.ExistsTx(tx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	if delta < 0 {
		ok, err := s.Prods.DeductStockTx(tx, productID, -delta)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: product %d", ErrInsufficientStock, productID)
		}
	} else {
		if err := s.Prods.RestoreStockTx(tx, productID, delta); err != nil {
			return err
		}
	}
	if err := s.Stock.AppendTx(tx, txType, productID, delta, note); err != nil {
		return err
	}

	return tx.Commit()
}
