// Package repotest builds throwaway sqlite databases for tests.
package repotest

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/repos"
)

// Open returns a Gateway over a fresh in-memory database with the schema
// applied and no rows.
func Open(t *testing.T) *repos.Gateway {
	t.Helper()
	gw, err := repos.OpenDB(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		Name:   ":memory:",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = gw.Close() })
	return gw
}

// Hash bcrypts pw at the minimum cost.
func Hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

// User inserts a user with an explicit id.
func User(t *testing.T, gw *repos.Gateway, id int64, name, pw string, lat, lon float64, role string) {
	t.Helper()
	mustExec(t, gw, `INSERT INTO users(userid,name,password,latitude,longitude,type) VALUES(?,?,?,?,?,?)`,
		id, name, Hash(t, pw), lat, lon, role)
}

func Store(t *testing.T, gw *repos.Gateway, id int64, name string, managerID int64, lat, lon float64) {
	t.Helper()
	mustExec(t, gw, `INSERT INTO store(storeid,name,latitude,longitude,managerid) VALUES(?,?,?,?,?)`,
		id, name, lat, lon, managerID)
}

func Product(t *testing.T, gw *repos.Gateway, storeID int64, name string, units int, price string) {
	t.Helper()
	mustExec(t, gw, `INSERT INTO product(storeid,productname,numberofunits,priceperunit) VALUES(?,?,?,?)`,
		storeID, name, units, price)
}

func Warehouse(t *testing.T, gw *repos.Gateway, id int64) {
	t.Helper()
	mustExec(t, gw, `INSERT INTO warehouse(warehouseid,area,latitude,longitude) VALUES(?,100,0,0)`, id)
}

// Fixture loads the shared scenario: admin 1, managers Bob (2) and Carol (3),
// customer Alice (4), Bob's store 1 at (25,25) with 10 Widgets at 5, Carol's
// store 3 at (70,70) with 8 Gizmos, and warehouse 1. Every password is "pw1".
func Fixture(t *testing.T, gw *repos.Gateway) {
	t.Helper()
	User(t, gw, 1, "Admin", "pw1", 50, 50, "admin")
	User(t, gw, 2, "Bob", "pw1", 25, 25, "manager")
	User(t, gw, 3, "Carol", "pw1", 70, 70, "manager")
	User(t, gw, 4, "Alice", "pw1", 20, 20, "customer")
	Store(t, gw, 1, "Riverside", 2, 25, 25)
	Store(t, gw, 3, "Hilltop", 3, 70, 70)
	Product(t, gw, 1, "Widget", 10, "5")
	Product(t, gw, 3, "Gizmo", 8, "40")
	Warehouse(t, gw, 1)
}

func mustExec(t *testing.T, gw *repos.Gateway, q string, args ...any) {
	t.Helper()
	if err := gw.Exec(context.Background(), q, args...); err != nil {
		t.Fatal(err)
	}
}
