package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"storefront/internal/config"
	applog "storefront/internal/log"
)

// OpenDB connects, pings, and pins the pool to one connection. In sqlite mode
// it also bootstraps the schema and, when asked, the demo data; a Postgres
// schema is owned by whoever runs the database.
func OpenDB(ctx context.Context, cfg config.DBConfig) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}
	db, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}

	if cfg.Driver == config.DriverSQLite {
		if err := ensureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, &ConnectionError{Driver: cfg.Driver, Err: fmt.Errorf("schema: %w", err)}
		}
		if cfg.Seed {
			if err := seedIfEmpty(ctx, db); err != nil {
				_ = db.Close()
				return nil, &ConnectionError{Driver: cfg.Driver, Err: fmt.Errorf("seed: %w", err)}
			}
		}
	}
	return NewGateway(db), nil
}

// EnsureSessions creates the HTTP session table if the database lacks one.
func EnsureSessions(ctx context.Context, g *Gateway) error {
	return g.Exec(ctx, `
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  userid INTEGER,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  last_seen TIMESTAMP
)`)
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  userid INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  password TEXT NOT NULL,
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  type TEXT NOT NULL DEFAULT 'customer'
);
CREATE INDEX IF NOT EXISTS idx_users_name ON users(name);

CREATE TABLE IF NOT EXISTS store(
  storeid INTEGER PRIMARY KEY,
  name TEXT,
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  managerid INTEGER NOT NULL REFERENCES users(userid) ON UPDATE CASCADE,
  dateestablished TEXT
);
CREATE INDEX IF NOT EXISTS idx_store_manager ON store(managerid);

CREATE TABLE IF NOT EXISTS product(
  storeid INTEGER NOT NULL REFERENCES store(storeid),
  productname TEXT NOT NULL,
  numberofunits INTEGER NOT NULL CHECK (numberofunits >= 0),
  priceperunit NUMERIC NOT NULL CHECK (priceperunit >= 0),
  PRIMARY KEY(storeid, productname)
);

CREATE TABLE IF NOT EXISTS warehouse(
  warehouseid INTEGER PRIMARY KEY,
  area REAL,
  latitude REAL,
  longitude REAL
);

CREATE TABLE IF NOT EXISTS orders(
  ordernumber INTEGER PRIMARY KEY AUTOINCREMENT,
  customerid INTEGER NOT NULL REFERENCES users(userid) ON UPDATE CASCADE,
  storeid INTEGER NOT NULL REFERENCES store(storeid),
  productname TEXT NOT NULL,
  unitsordered INTEGER NOT NULL CHECK (unitsordered > 0),
  ordertime TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customerid);
CREATE INDEX IF NOT EXISTS idx_orders_store ON orders(storeid);

CREATE TABLE IF NOT EXISTS productupdates(
  updatenumber INTEGER PRIMARY KEY AUTOINCREMENT,
  managerid INTEGER NOT NULL REFERENCES users(userid) ON UPDATE CASCADE,
  storeid INTEGER NOT NULL REFERENCES store(storeid),
  productname TEXT NOT NULL,
  updatedon TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_productupdates_store ON productupdates(storeid);

CREATE TABLE IF NOT EXISTS productsupplyrequests(
  requestnumber INTEGER PRIMARY KEY AUTOINCREMENT,
  managerid INTEGER NOT NULL REFERENCES users(userid) ON UPDATE CASCADE,
  warehouseid INTEGER NOT NULL REFERENCES warehouse(warehouseid),
  storeid INTEGER NOT NULL REFERENCES store(storeid),
  productname TEXT NOT NULL,
  unitsrequested INTEGER NOT NULL CHECK (unitsrequested > 0)
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  userid INTEGER NULL REFERENCES users(userid) ON DELETE SET NULL ON UPDATE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(userid);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// seedIfEmpty loads a small demo world: one admin, two managers with three
// stores, one customer, and two warehouses. Every account uses "Passw0rd!".
func seedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "db.seed", map[string]any{"what": "demo users/stores/products"})

	h, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(h)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO users(userid,name,password,latitude,longitude,type) VALUES
		  (1,'Admin',?,50,50,'admin'),
		  (2,'Bob',?,25,25,'manager'),
		  (3,'Carol',?,70,70,'manager'),
		  (4,'Alice',?,20,20,'customer')`, []any{hash, hash, hash, hash}},
		{`INSERT INTO store(storeid,name,latitude,longitude,managerid,dateestablished) VALUES
		  (1,'Riverside',25,25,2,'2019-04-01'),
		  (2,'Eastgate',40,10,2,'2020-09-15'),
		  (3,'Hilltop',70,70,3,'2021-01-20')`, nil},
		{`INSERT INTO product(storeid,productname,numberofunits,priceperunit) VALUES
		  (1,'Widget',10,5),
		  (1,'Gadget',4,12.5),
		  (2,'Widget',20,5),
		  (2,'Sprocket',15,3),
		  (3,'Gizmo',8,40)`, nil},
		{`INSERT INTO warehouse(warehouseid,area,latitude,longitude) VALUES
		  (1,1200,30,30),
		  (2,800,80,60)`, nil},
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s.q, s.args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
