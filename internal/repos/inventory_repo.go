package repos

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ErrNoStock is returned by Decrement when the guarded update matched nothing.
var ErrNoStock = errors.New("insufficient stock")

// InventoryRepo mutates product stock and price.
type InventoryRepo struct{ db sqlx.ExtContext }

func NewInventoryRepo(db sqlx.ExtContext) *InventoryRepo { return &InventoryRepo{db: db} }

// Decrement subtracts by units only while more than by units remain, so stock
// never reaches zero through an order.
func (r *InventoryRepo) Decrement(ctx context.Context, storeID int64, name string, by int) error {
	res, err := exec(ctx, r.db, "inventory.decrement", `
		UPDATE product
		SET numberofunits = numberofunits - ?
		WHERE storeid = ? AND TRIM(productname) = ? AND numberofunits > ?`, by, storeID, name, by)
	if err != nil {
		return err
	}
	if affected(res) == 0 {
		return ErrNoStock
	}
	return nil
}

func (r *InventoryRepo) Increment(ctx context.Context, storeID int64, name string, by int) (bool, error) {
	res, err := exec(ctx, r.db, "inventory.increment", `
		UPDATE product SET numberofunits = numberofunits + ?
		WHERE storeid = ? AND TRIM(productname) = ?`, by, storeID, name)
	if err != nil {
		return false, err
	}
	return affected(res) > 0, nil
}

func (r *InventoryRepo) SetUnits(ctx context.Context, storeID int64, name string, units int) (bool, error) {
	res, err := exec(ctx, r.db, "inventory.set_units", `
		UPDATE product SET numberofunits = ?
		WHERE storeid = ? AND TRIM(productname) = ?`, units, storeID, name)
	if err != nil {
		return false, err
	}
	return affected(res) > 0, nil
}

func (r *InventoryRepo) SetPrice(ctx context.Context, storeID int64, name string, price decimal.Decimal) (bool, error) {
	res, err := exec(ctx, r.db, "inventory.set_price", `
		UPDATE product SET priceperunit = ?
		WHERE storeid = ? AND TRIM(productname) = ?`, price, storeID, name)
	if err != nil {
		return false, err
	}
	return affected(res) > 0, nil
}
