package repos

import (
	"hardstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

// LookupRepo holds the category and unit reference data behind the product
// selection lists.
type LookupRepo struct{ db *sqlx.DB }

func NewLookupRepo(db *sqlx.DB) *LookupRepo { return &LookupRepo{db: db} }

func (r *LookupRepo) Categories() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(description,'') AS description
	  FROM product_categories
	  ORDER BY name
	`)
	return out, err
}

func (r *LookupRepo) CreateCategory(cat domain.Category) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO product_categories(name, description) VALUES(?, ?)
	`, cat.Name, cat.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *LookupRepo) UpdateCategory(cat domain.Category) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE product_categories
	  SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, cat.Name, cat.Description, cat.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LookupRepo) Units() ([]domain.Unit, error) {
	out := []domain.Unit{}
	err := r.db.Select(&out, `
	  SELECT id, name, abbreviation
	  FROM units_of_measurement
	  ORDER BY name
	`)
	return out, err
}

func (r *LookupRepo) CreateUnit(u domain.Unit) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO units_of_measurement(name, abbreviation) VALUES(?, ?)
	`, u.Name, u.Abbreviation)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *LookupRepo) UpdateUnit(u domain.Unit) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE units_of_measurement
	  SET name = ?, abbreviation = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, u.Name, u.Abbreviation, u.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
