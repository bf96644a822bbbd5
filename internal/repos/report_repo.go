package repos

import (
	"hardstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ReportRepo holds the read-side aggregation queries behind the dashboard
// and report endpoints. No write side effects.
type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

func (r *ReportRepo) DailySales(date string) (domain.DailySales, error) {
	var out domain.DailySales
	err := r.db.Get(&out, `
	  SELECT COALESCE(SUM(final_amount),0) AS total, COUNT(*) AS count
	  FROM invoices
	  WHERE date(date) = date(?)
	`, date)
	return out, err
}

func (r *ReportRepo) SalesByDateRange(start, end string) ([]domain.SalesByDay, error) {
	out := []domain.SalesByDay{}
	err := r.db.Select(&out, `
	  SELECT date(date) AS sale_date, SUM(final_amount) AS total, COUNT(*) AS count
	  FROM invoices
	  WHERE date(date) BETWEEN date(?) AND date(?)
	  GROUP BY date(date)
	  ORDER BY date(date)
	`, start, end)
	return out, err
}

func (r *ReportRepo) TopSellingProducts(limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []domain.TopProduct{}
	err := r.db.Select(&out, `
	  SELECT p.id, p.name, SUM(ii.quantity) AS quantity_sold, SUM(ii.total) AS total_sales
	  FROM invoice_items ii
	  JOIN products p ON ii.product_id = p.id
	  GROUP BY p.id
	  ORDER BY quantity_sold DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *ReportRepo) CustomerSales(customerID int64) ([]domain.CustomerSale, error) {
	out := []domain.CustomerSale{}
	err := r.db.Select(&out, `
	  SELECT i.id, i.invoice_number, i.date, i.total_amount, i.discount, i.tax, i.final_amount,
	         COALESCE(i.payment_method,'') AS payment_method,
	         i.payment_status,
	         COALESCE(i.notes,'') AS notes,
	         i.customer_id,
	         i.created_at, COALESCE(i.updated_at,'') AS updated_at,
	         COUNT(ii.id) AS item_count
	  FROM invoices i
	  JOIN invoice_items ii ON i.id = ii.invoice_id
	  WHERE i.customer_id = ?
	  GROUP BY i.id
	  ORDER BY datetime(i.date) DESC
	`, customerID)
	return out, err
}

func (r *ReportRepo) Dashboard() (domain.DashboardMetrics, error) {
	var m domain.DashboardMetrics
	if err := r.db.Get(&m.TotalProducts, `SELECT COUNT(*) FROM products`); err != nil {
		return m, err
	}
	if err := r.db.Get(&m.TotalCustomers, `SELECT COUNT(*) FROM customers`); err != nil {
		return m, err
	}
	if err := r.db.Get(&m.LowStockItems, `SELECT COUNT(*) FROM products WHERE current_stock <= min_stock_level`); err != nil {
		return m, err
	}
	err := r.db.Get(&m.TodaySales, `
	  SELECT COALESCE(SUM(final_amount),0) AS total, COUNT(*) AS count
	  FROM invoices
	  WHERE date(date) = date('now')
	`)
	return m, err
}
