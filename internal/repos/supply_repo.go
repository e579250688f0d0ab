package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type SupplyRepo struct{ db sqlx.ExtContext }

func NewSupplyRepo(db sqlx.ExtContext) *SupplyRepo { return &SupplyRepo{db: db} }

func (r *SupplyRepo) Create(ctx context.Context, s domain.SupplyRequest) (int64, error) {
	var n int64
	err := get(ctx, r.db, "supply.create", &n, `
		INSERT INTO productsupplyrequests(managerid, warehouseid, storeid, productname, unitsrequested)
		VALUES(?, ?, ?, ?, ?)
		RETURNING requestnumber`, s.ManagerID, s.WarehouseID, s.StoreID, s.ProductName, s.Units)
	return n, err
}

func (r *SupplyRepo) WarehouseExists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := get(ctx, r.db, "warehouse.exists", &n, `SELECT COUNT(*) FROM warehouse WHERE warehouseid = ?`, id)
	return n > 0, err
}
