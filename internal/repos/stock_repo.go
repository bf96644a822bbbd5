package repos

import (
	"hardstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

// StockTxRepo owns the append-only stock_transactions audit trail. Rows are
// never updated or deleted; reversals get their own Return entries.
type StockTxRepo struct{ db *sqlx.DB }

func NewStockTxRepo(db *sqlx.DB) *StockTxRepo { return &StockTxRepo{db: db} }

func (r *StockTxRepo) AppendTx(tx *sqlx.Tx, txType string, productID int64, qty float64, notes string) error {
	_, err := tx.Exec(`
	  INSERT INTO stock_transactions(type, quantity, product_id, notes)
	  VALUES(?, ?, ?, ?)
	`, txType, qty, productID, notes)
	return err
}

func (r *StockTxRepo) ListByProduct(productID int64, limit int) ([]domain.StockTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.StockTransaction{}
	err := r.db.Select(&out, `
	  SELECT id, type, quantity, date, COALESCE(notes,'') AS notes, product_id
	  FROM stock_transactions
	  WHERE product_id = ?
	  ORDER BY datetime(date) DESC, id DESC
	  LIMIT ?
	`, productID, limit)
	return out, err
}
