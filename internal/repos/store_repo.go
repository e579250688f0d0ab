package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type StoreRepo struct{ db sqlx.ExtContext }

func NewStoreRepo(db sqlx.ExtContext) *StoreRepo { return &StoreRepo{db: db} }

const storeCols = `storeid, COALESCE(TRIM(name), '') AS name, managerid, latitude, longitude`

func (r *StoreRepo) Get(ctx context.Context, id int64) (domain.Store, error) {
	var s domain.Store
	err := get(ctx, r.db, "store.get", &s, `SELECT `+storeCols+` FROM store WHERE storeid = ?`, id)
	return s, err
}

func (r *StoreRepo) List(ctx context.Context) ([]domain.Store, error) {
	var out []domain.Store
	err := sel(ctx, r.db, "store.list", &out, `SELECT DISTINCT `+storeCols+` FROM store ORDER BY storeid`)
	return out, err
}
