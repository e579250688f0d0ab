package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db sqlx.ExtContext }

func NewProductRepo(db sqlx.ExtContext) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `storeid, TRIM(productname) AS productname, numberofunits, priceperunit`

func (r *ProductRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := sel(ctx, r.db, "product.list", &out,
		`SELECT `+productCols+` FROM product WHERE storeid = ? ORDER BY productname`, storeID)
	return out, err
}

// Get matches the product name exactly (case-sensitive) once padding is trimmed.
func (r *ProductRepo) Get(ctx context.Context, storeID int64, name string) (domain.Product, error) {
	var p domain.Product
	err := get(ctx, r.db, "product.get", &p,
		`SELECT `+productCols+` FROM product WHERE storeid = ? AND TRIM(productname) = ?`, storeID, name)
	return p, err
}
