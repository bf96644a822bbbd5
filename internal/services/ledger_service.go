package services

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"hardstore/internal/domain"
	"hardstore/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// InvoiceDraft is the caller-supplied invoice header. Discount and Tax are
// absolute amounts computed by the caller; the ledger computes the subtotal
// from the lines. Subtotal, when non-zero, is cross-checked against that
// computation. IdempotencyKey lets a caller safely retry a timed-out create
// without double-decrementing stock.
type InvoiceDraft struct {
	Date           string  `json:"date"`
	CustomerID     *int64  `json:"customerId"`
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	Tax            float64 `json:"tax"`
	PaymentMethod  string  `json:"paymentMethod"`
	PaymentStatus  string  `json:"paymentStatus"`
	Notes          string  `json:"notes"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

type InvoiceLine struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
}

// LedgerService is the sole writer of invoice state and the sole mutator of
// product stock in response to sales; the two never diverge because every
// mutation runs in one database transaction.
type LedgerService struct {
	DB      *sqlx.DB
	Inv     *repos.InvoiceRepo
	Prods   *repos.ProductRepo
	Stock   *repos.StockTxRepo
	Reports *repos.ReportRepo
}

func NewLedgerService(db *sqlx.DB, invoices *repos.InvoiceRepo, products *repos.ProductRepo, stock *repos.StockTxRepo, reports *repos.ReportRepo) *LedgerService {
	return &LedgerService{DB: db, Inv: invoices, Prods: products, Stock: stock, Reports: reports}
}

func invoiceNumber(id int64) string { return fmt.Sprintf("INV-%05d", id) }

func validStatus(s string) bool {
	return s == domain.PaymentStatusPaid || s == domain.PaymentStatusPartial || s == domain.PaymentStatusUnpaid
}

// CreateInvoice persists the header, its lines, the stock decrements, and one
// Sale audit row per line, atomically. On any failure nothing is visible.
// Returns the new invoice id.
func (s *LedgerService) CreateInvoice(draft InvoiceDraft, lines []InvoiceLine) (int64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: invoice needs at least one item", ErrValidation)
	}
	if draft.Discount < 0 || draft.Tax < 0 {
		return 0, fmt.Errorf("%w: discount and tax must not be negative", ErrValidation)
	}
	if draft.PaymentStatus == "" {
		draft.PaymentStatus = domain.PaymentStatusUnpaid
	}
	if !validStatus(draft.PaymentStatus) {
		return 0, fmt.Errorf("%w: unknown payment status %q", ErrValidation, draft.PaymentStatus)
	}
	if draft.Date == "" {
		// UTC to line up with sqlite's CURRENT_TIMESTAMP in the report queries
		draft.Date = time.Now().UTC().Format(time.DateTime)
	}

	subtotal := 0.0
	for i, ln := range lines {
		if ln.Quantity <= 0 {
			return 0, fmt.Errorf("%w: item %d has non-positive quantity", ErrValidation, i+1)
		}
		if ln.UnitPrice < 0 {
			return 0, fmt.Errorf("%w: item %d has negative unit price", ErrValidation, i+1)
		}
		lineTotal := ln.Quantity*ln.UnitPrice - ln.Discount
		if ln.Discount < 0 || lineTotal < 0 {
			return 0, fmt.Errorf("%w: item %d has invalid discount", ErrValidation, i+1)
		}
		subtotal += lineTotal
	}
	if draft.Subtotal != 0 && math.Abs(draft.Subtotal-subtotal) > 0.01 {
		return 0, fmt.Errorf("%w: subtotal %.2f does not match items (%.2f)", ErrValidation, draft.Subtotal, subtotal)
	}

	// Client-generated key dedups retries; assign one when absent so a retry
	// layer can adopt it.
	key := draft.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	} else if id, err := s.Inv.FindByIdempotencyKey(key); err != nil {
		return 0, err
	} else if id != 0 {
		return id, nil
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	header := domain.Invoice{
		// Placeholder satisfies the UNIQUE constraint until the row id is known.
		InvoiceNumber: "PENDING-" + key,
		Date:          draft.Date,
		TotalAmount:   subtotal,
		Discount:      draft.Discount,
		Tax:           draft.Tax,
		FinalAmount:   subtotal - draft.Discount + draft.Tax,
		PaymentMethod: draft.PaymentMethod,
		PaymentStatus: draft.PaymentStatus,
		Notes:         draft.Notes,
		CustomerID:    draft.CustomerID,
	}
	id, err := s.Inv.InsertHeaderTx(tx, header, key)
	if err != nil {
		return 0, err
	}
	number := invoiceNumber(id)
	if err := s.Inv.SetNumberTx(tx, id, number); err != nil {
		return 0, err
	}

	for _, ln := range lines {
		exists, err := s.Prods.ExistsTx(tx, ln.ProductID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, fmt.Errorf("%w: product %d", ErrNotFound, ln.ProductID)
		}
		if err := s.Inv.InsertItemTx(tx, id, domain.InvoiceItem{
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
			Discount:  ln.Discount,
			Total:     ln.Quantity*ln.UnitPrice - ln.Discount,
		}); err != nil {
			return 0, err
		}
		ok, err := s.Prods.DeductStockTx(tx, ln.ProductID, ln.Quantity)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: product %d", ErrInsufficientStock, ln.ProductID)
		}
		note := fmt.Sprintf("Sale through invoice %s", number)
		if err := s.Stock.AppendTx(tx, domain.StockTypeSale, ln.ProductID, ln.Quantity, note); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteInvoice restores stock for every line, appends a Return audit row per
// line, and removes the items and the header, atomically. The original Sale
// audit rows stay: the trail is append-only.
func (s *LedgerService) DeleteInvoice(id int64) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var number string
	if err := tx.Get(&number, `SELECT invoice_number FROM invoices WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
		}
		return err
	}

	items, err := s.Inv.ItemsTx(tx, id)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := s.Prods.RestoreStockTx(tx, it.ProductID, it.Quantity); err != nil {
			return err
		}
		note := fmt.Sprintf("Return on deletion of invoice %s", number)
		if err := s.Stock.AppendTx(tx, domain.StockTypeReturn, it.ProductID, it.Quantity, note); err != nil {
			return err
		}
	}
	if err := s.Inv.DeleteItemsTx(tx, id); err != nil {
		return err
	}
	if _, err := s.Inv.DeleteHeaderTx(tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// NextInvoiceNumber previews the number the next invoice will likely get.
// Display-only: the authoritative number is assigned inside CreateInvoice.
// Never fails; a timestamp placeholder covers storage errors.
func (s *LedgerService) NextInvoiceNumber() string {
	maxID, err := s.Inv.MaxID()
	if err != nil {
		return fmt.Sprintf("INV-%d", time.Now().Unix())
	}
	return invoiceNumber(maxID + 1)
}

// UpdatePaymentStatus moves an invoice between Unpaid, Partial, and Paid.
func (s *LedgerService) UpdatePaymentStatus(id int64, status, method, notes string) error {
	if !validStatus(status) {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}
	n, err := s.Inv.UpdatePayment(id, status, method, notes)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
	}
	return nil
}

// ---------- Read side ----------

func (s *LedgerService) ListInvoices() ([]domain.Invoice, error) { return s.Inv.List() }

func (s *LedgerService) Invoice(id int64) (domain.Invoice, error) {
	inv, err := s.Inv.Get(id)
	if err == sql.ErrNoRows {
		return inv, fmt.Errorf("%w: invoice %d", ErrNotFound, id)
	}
	return inv, err
}

func (s *LedgerService) InvoiceItems(id int64) ([]domain.InvoiceItem, error) {
	return s.Inv.Items(id)
}

func (s *LedgerService) DailySales(date string) (domain.DailySales, error) {
	return s.Reports.DailySales(date)
}

func (s *LedgerService) SalesByDateRange(start, end string) ([]domain.SalesByDay, error) {
	return s.Reports.SalesByDateRange(start, end)
}

func (s *LedgerService) TopSellingProducts(limit int) ([]domain.TopProduct, error) {
	return s.Reports.TopSellingProducts(limit)
}

func (s *LedgerService) CustomerSales(customerID int64) ([]domain.CustomerSale, error) {
	return s.Reports.CustomerSales(customerID)
}
