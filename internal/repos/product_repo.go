package repos

import (
	"hardstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.name,
  COALESCE(p.description,'') AS description,
  COALESCE(p.sku,'')         AS sku,
  COALESCE(p.barcode,'')     AS barcode,
  p.purchase_price, p.selling_price, p.current_stock, p.min_stock_level,
  COALESCE(p.image,'')       AS image,
  p.category_id, p.unit_id,
  COALESCE(c.name,'')         AS category_name,
  COALESCE(u.name,'')         AS unit_name,
  COALESCE(u.abbreviation,'') AS unit_abbreviation,
  p.created_at, COALESCE(p.updated_at,'') AS updated_at`

const productJoins = `
  FROM products p
  LEFT JOIN product_categories c ON p.category_id = c.id
  LEFT JOIN units_of_measurement u ON p.unit_id = u.id`

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+productJoins+` ORDER BY p.name`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+productJoins+` WHERE p.id = ?`, id)
	return p, err
}

func (r *ProductRepo) GetByBarcode(code string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+productJoins+` WHERE p.barcode = ?`, code)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, description, sku, barcode, purchase_price, selling_price,
	                       current_stock, min_stock_level, image, category_id, unit_id)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.SKU, p.Barcode, p.PurchasePrice, p.SellingPrice,
		p.CurrentStock, p.MinStockLevel, p.Image, p.CategoryID, p.UnitID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Update(p domain.Product) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, description = ?, sku = ?, barcode = ?, purchase_price = ?,
	      selling_price = ?, current_stock = ?, min_stock_level = ?, image = ?,
	      category_id = ?, unit_id = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Name, p.Description, p.SKU, p.Barcode, p.PurchasePrice, p.SellingPrice,
		p.CurrentStock, p.MinStockLevel, p.Image, p.CategoryID, p.UnitID, p.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Delete(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LowStock returns products at or below their minimum stock level (inclusive).
func (r *ProductRepo) LowStock() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+productJoins+`
	  WHERE p.current_stock <= p.min_stock_level
	  ORDER BY p.name
	`)
	return out, err
}

// DeductStockTx subtracts qty within a transaction, only if enough stock
// remains. A zero rows-affected result means the product is missing or the
// deduction would drive stock negative; the caller distinguishes the two.
func (r *ProductRepo) DeductStockTx(tx *sqlx.Tx, productID int64, qty float64) (bool, error) {
	res, err := tx.Exec(`
	  UPDATE products
	  SET current_stock = current_stock - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND current_stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RestoreStockTx adds qty back within a transaction (invoice deletion).
func (r *ProductRepo) RestoreStockTx(tx *sqlx.Tx, productID int64, qty float64) error {
	_, err := tx.Exec(`
	  UPDATE products
	  SET current_stock = current_stock + ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, qty, productID)
	return err
}

// ExistsTx reports whether the product row exists, inside a transaction.
func (r *ProductRepo) ExistsTx(tx *sqlx.Tx, productID int64) (bool, error) {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM products WHERE id = ?`, productID); err != nil {
		return false, err
	}
	return n > 0, nil
}
