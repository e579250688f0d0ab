package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

// UpdateRepo is the product audit log.
type UpdateRepo struct{ db sqlx.ExtContext }

func NewUpdateRepo(db sqlx.ExtContext) *UpdateRepo { return &UpdateRepo{db: db} }

func (r *UpdateRepo) Append(ctx context.Context, u domain.ProductUpdate) (int64, error) {
	var n int64
	err := get(ctx, r.db, "update.append", &n, `
		INSERT INTO productupdates(managerid, storeid, productname, updatedon)
		VALUES(?, ?, ?, ?)
		RETURNING updatenumber`, u.ManagerID, u.StoreID, u.ProductName, u.UpdatedOn)
	return n, err
}

func (r *UpdateRepo) RecentByStore(ctx context.Context, storeID int64, limit int) (Table, error) {
	return queryTable(ctx, r.db, `
		SELECT updatenumber, managerid, storeid, TRIM(productname) AS productname, updatedon
		FROM productupdates
		WHERE storeid = ?
		ORDER BY updatenumber DESC
		LIMIT ?`, storeID, limit)
}
