package repos

import (
	"hardstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `
  id, name,
  COALESCE(phone,'')   AS phone,
  COALESCE(address,'') AS address,
  COALESCE(email,'')   AS email,
  COALESCE(notes,'')   AS notes,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	out := []domain.Customer{}
	err := r.db.Select(&out, `SELECT `+customerCols+` FROM customers ORDER BY name`)
	return out, err
}

func (r *CustomerRepo) Get(id int64) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	return c, err
}

func (r *CustomerRepo) Create(c domain.Customer) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO customers(name, phone, address, email, notes)
	  VALUES(?, ?, ?, ?, ?)
	`, c.Name, c.Phone, c.Address, c.Email, c.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CustomerRepo) Update(c domain.Customer) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE customers
	  SET name = ?, phone = ?, address = ?, email = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, c.Name, c.Phone, c.Address, c.Email, c.Notes, c.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CustomerRepo) Delete(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
