package repos

import (
	"database/sql"

	"hardstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InvoiceRepo struct{ db *sqlx.DB }

func NewInvoiceRepo(db *sqlx.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

const invoiceCols = `
  i.id, i.invoice_number, i.date, i.total_amount, i.discount, i.tax, i.final_amount,
  COALESCE(i.payment_method,'') AS payment_method,
  i.payment_status,
  COALESCE(i.notes,'') AS notes,
  i.customer_id,
  COALESCE(c.name,'') AS customer_name,
  i.created_at, COALESCE(i.updated_at,'') AS updated_at`

const invoiceJoins = `
  FROM invoices i
  LEFT JOIN customers c ON i.customer_id = c.id`

func (r *InvoiceRepo) List() ([]domain.Invoice, error) {
	out := []domain.Invoice{}
	err := r.db.Select(&out, `SELECT `+invoiceCols+invoiceJoins+` ORDER BY datetime(i.date) DESC, i.id DESC`)
	return out, err
}

func (r *InvoiceRepo) Get(id int64) (domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.Get(&inv, `SELECT `+invoiceCols+invoiceJoins+` WHERE i.id = ?`, id)
	return inv, err
}

func (r *InvoiceRepo) Items(invoiceID int64) ([]domain.InvoiceItem, error) {
	out := []domain.InvoiceItem{}
	// LEFT JOIN: lines must still render after their product is deleted.
	err := r.db.Select(&out, `
	  SELECT ii.id, ii.invoice_id, ii.product_id,
	         COALESCE(p.name,'Unknown') AS product_name,
	         COALESCE(u.abbreviation,'') AS unit,
	         ii.quantity, ii.unit_price, ii.discount, ii.total
	  FROM invoice_items ii
	  LEFT JOIN products p ON ii.product_id = p.id
	  LEFT JOIN units_of_measurement u ON p.unit_id = u.id
	  WHERE ii.invoice_id = ?
	  ORDER BY ii.id
	`, invoiceID)
	return out, err
}

// FindByIdempotencyKey returns the id of an invoice previously committed with
// the same client key, or 0 when none exists.
func (r *InvoiceRepo) FindByIdempotencyKey(key string) (int64, error) {
	var id int64
	err := r.db.Get(&id, `SELECT id FROM invoices WHERE idempotency_key = ?`, key)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return id, err
}

// MaxID returns the highest invoice row id (0 when the table is empty),
// used for the advisory next-number preview.
func (r *InvoiceRepo) MaxID() (int64, error) {
	var id sql.NullInt64
	if err := r.db.Get(&id, `SELECT MAX(id) FROM invoices`); err != nil {
		return 0, err
	}
	return id.Int64, nil
}

func (r *InvoiceRepo) UpdatePayment(id int64, status, method, notes string) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE invoices
	  SET payment_status = ?, payment_method = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, status, method, notes, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ---------- In-transaction persistence used by the ledger ----------

// InsertHeaderTx inserts the invoice header with a placeholder number and
// returns the new row id. The authoritative number is derived from that id
// by SetNumberTx within the same transaction.
func (r *InvoiceRepo) InsertHeaderTx(tx *sqlx.Tx, inv domain.Invoice, idempotencyKey string) (int64, error) {
	res, err := tx.Exec(`
	  INSERT INTO invoices(invoice_number, date, total_amount, discount, tax,
	                       final_amount, payment_method, payment_status, notes,
	                       customer_id, idempotency_key)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.InvoiceNumber, inv.Date, inv.TotalAmount, inv.Discount, inv.Tax,
		inv.FinalAmount, inv.PaymentMethod, inv.PaymentStatus, inv.Notes,
		inv.CustomerID, idempotencyKey)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *InvoiceRepo) SetNumberTx(tx *sqlx.Tx, id int64, number string) error {
	_, err := tx.Exec(`UPDATE invoices SET invoice_number = ? WHERE id = ?`, number, id)
	return err
}

func (r *InvoiceRepo) InsertItemTx(tx *sqlx.Tx, invoiceID int64, it domain.InvoiceItem) error {
	_, err := tx.Exec(`
	  INSERT INTO invoice_items(quantity, unit_price, discount, total, invoice_id, product_id)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, it.Quantity, it.UnitPrice, it.Discount, it.Total, invoiceID, it.ProductID)
	return err
}

func (r *InvoiceRepo) ItemsTx(tx *sqlx.Tx, invoiceID int64) ([]domain.InvoiceItem, error) {
	out := []domain.InvoiceItem{}
	err := tx.Select(&out, `
	  SELECT id, invoice_id, product_id, quantity, unit_price, discount, total
	  FROM invoice_items
	  WHERE invoice_id = ?
	`, invoiceID)
	return out, err
}

func (r *InvoiceRepo) DeleteItemsTx(tx *sqlx.Tx, invoiceID int64) error {
	_, err := tx.Exec(`DELETE FROM invoice_items WHERE invoice_id = ?`, invoiceID)
	return err
}

func (r *InvoiceRepo) DeleteHeaderTx(tx *sqlx.Tx, invoiceID int64) (int64, error) {
	res, err := tx.Exec(`DELETE FROM invoices WHERE id = ?`, invoiceID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
