package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type OrderRepo struct{ db sqlx.ExtContext }

func NewOrderRepo(db sqlx.ExtContext) *OrderRepo { return &OrderRepo{db: db} }

// Create appends an order; the database assigns the order number.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (int64, error) {
	var n int64
	err := get(ctx, r.db, "order.create", &n, `
		INSERT INTO orders(customerid, storeid, productname, unitsordered, ordertime)
		VALUES(?, ?, ?, ?, ?)
		RETURNING ordernumber`, o.CustomerID, o.StoreID, o.ProductName, o.Units, o.Time)
	return n, err
}

const orderCols = `ordernumber, customerid, storeid, TRIM(productname) AS productname, unitsordered, ordertime`

// RecentByCustomer lists a customer's newest orders first.
func (r *OrderRepo) RecentByCustomer(ctx context.Context, customerID int64, limit int) (Table, error) {
	return queryTable(ctx, r.db, `SELECT `+orderCols+` FROM orders
		WHERE customerid = ? ORDER BY ordernumber DESC LIMIT ?`, customerID, limit)
}

// RecentByStore lists a store's newest orders first.
func (r *OrderRepo) RecentByStore(ctx context.Context, storeID int64, limit int) (Table, error) {
	return queryTable(ctx, r.db, `SELECT `+orderCols+` FROM orders
		WHERE storeid = ? ORDER BY ordernumber DESC LIMIT ?`, storeID, limit)
}

// PopularProducts ranks products by units ordered, fewest first.
func (r *OrderRepo) PopularProducts(ctx context.Context, storeID int64, limit int) (Table, error) {
	return queryTable(ctx, r.db, `
		SELECT TRIM(productname) AS productname, SUM(unitsordered) AS numunitspurchased
		FROM orders
		WHERE storeid = ?
		GROUP BY TRIM(productname)
		ORDER BY numunitspurchased ASC
		LIMIT ?`, storeID, limit)
}

// PopularCustomers lists who ordered from the store, earliest order first.
func (r *OrderRepo) PopularCustomers(ctx context.Context, storeID int64, limit int) (Table, error) {
	return queryTable(ctx, r.db, `
		SELECT TRIM(u.name) AS name, o.customerid
		FROM orders o
		JOIN users u ON u.userid = o.customerid
		WHERE o.storeid = ?
		ORDER BY o.ordernumber ASC
		LIMIT ?`, storeID, limit)
}
