package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens (or creates) the store database, applies the schema, and seeds
// the default units and categories. The returned handle is the single owner
// of the connection; close it on shutdown.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single-user, single-writer model; one connection also keeps a
	// :memory: database shared across the pool.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Default lookup data (idempotent; safe to run every start)
	if err := seedDefaults(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	// REFERENCES clauses are documentation only; enforcement stays off so
	// products and customers can be deleted independently of past invoices.
	// Orphaned references render as 'Unknown' on the read side.
	schema := `
CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  email TEXT,
  notes TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(LOWER(name));

CREATE TABLE IF NOT EXISTS product_categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS units_of_measurement(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  abbreviation TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- current_stock and quantities are REAL: fractional units are sold
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  sku TEXT,
  barcode TEXT,
  purchase_price REAL NOT NULL,
  selling_price REAL NOT NULL,
  current_stock REAL DEFAULT 0,
  min_stock_level REAL DEFAULT 0,
  image TEXT,
  category_id INTEGER REFERENCES product_categories(id),
  unit_id INTEGER REFERENCES units_of_measurement(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name    ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_barcode ON products(barcode);

CREATE TABLE IF NOT EXISTS invoices(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  invoice_number TEXT NOT NULL UNIQUE,
  date TEXT DEFAULT CURRENT_TIMESTAMP,
  total_amount REAL NOT NULL,
  discount REAL DEFAULT 0,
  tax REAL DEFAULT 0,
  final_amount REAL NOT NULL,
  payment_method TEXT,
  payment_status TEXT CHECK(payment_status IN ('Paid','Partial','Unpaid')) DEFAULT 'Unpaid',
  notes TEXT,
  customer_id INTEGER REFERENCES customers(id),
  idempotency_key TEXT UNIQUE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invoices_date     ON invoices(date);
CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices(customer_id);

CREATE TABLE IF NOT EXISTS invoice_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  quantity REAL NOT NULL,
  unit_price REAL NOT NULL,
  discount REAL DEFAULT 0,
  total REAL NOT NULL,
  invoice_id INTEGER REFERENCES invoices(id),
  product_id INTEGER REFERENCES products(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id);
CREATE INDEX IF NOT EXISTS idx_invoice_items_product ON invoice_items(product_id);

-- Append-only audit trail of stock movements
CREATE TABLE IF NOT EXISTS stock_transactions(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  type TEXT CHECK(type IN ('Purchase','Sale','Adjustment','Return')) NOT NULL,
  quantity REAL NOT NULL,
  date TEXT DEFAULT CURRENT_TIMESTAMP,
  notes TEXT,
  product_id INTEGER REFERENCES products(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_stock_transactions_product ON stock_transactions(product_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedDefaults(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM units_of_measurement`); err != nil {
		return err
	}
	if n == 0 {
		log.Println("[seed] inserting default units of measurement")
		tx := db.MustBegin()
		tx.MustExec(`INSERT INTO units_of_measurement(name, abbreviation) VALUES
		  ('Piece','pc'),
		  ('Kilogram','kg'),
		  ('Gram','g'),
		  ('Liter','L'),
		  ('Milliliter','ml'),
		  ('Meter','m'),
		  ('Centimeter','cm'),
		  ('Inch','in'),
		  ('Foot','ft'),
		  ('Box','box'),
		  ('Packet','pkt')`)
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	if err := db.Get(&n, `SELECT COUNT(*) FROM product_categories`); err != nil {
		return err
	}
	if n == 0 {
		log.Println("[seed] inserting default product categories")
		tx := db.MustBegin()
		tx.MustExec(`INSERT INTO product_categories(name, description) VALUES
		  ('Paint','All types of paints and painting supplies'),
		  ('Tools','Hand tools and power tools'),
		  ('Fasteners','Nails, screws, bolts, etc.'),
		  ('Plumbing','Pipes, fittings, and plumbing supplies'),
		  ('Electrical','Wires, switches, and electrical supplies'),
		  ('Building Materials','Cement, sand, bricks, etc.'),
		  ('Hardware','Locks, hinges, handles, etc.')`)
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
