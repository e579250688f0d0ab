package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// Product fields a manager may change.
const (
	FieldAmount = "amount"
	FieldPrice  = "price"
)

// ProductService applies manager and admin edits to store stock.
type ProductService struct {
	gw     *repos.Gateway
	Stores *repos.StoreRepo
	Now    func() time.Time
}

func NewProductService(gw *repos.Gateway, stores *repos.StoreRepo) *ProductService {
	return &ProductService{gw: gw, Stores: stores, Now: time.Now}
}

// UpdateProduct sets a product's amount or price and records who did it. An
// admin acting on a store is recorded as that store's manager.
func (s *ProductService) UpdateProduct(ctx context.Context, sess domain.Session, storeID int64, productName, field, value string) (domain.ProductUpdate, error) {
	st, err := storeAccess(ctx, s.Stores, sess, storeID, "product.update", true)
	if err != nil {
		return domain.ProductUpdate{}, err
	}
	field, ok := validate.OneOf(field, FieldAmount, FieldPrice)
	if !ok {
		return domain.ProductUpdate{}, invalid("field must be amount or price")
	}
	name := strings.TrimSpace(productName)

	var apply func(inv *repos.InventoryRepo) (bool, error)
	switch field {
	case FieldAmount:
		n, ok := validate.Units(value)
		if !ok {
			return domain.ProductUpdate{}, invalid("amount must be a whole number of units")
		}
		apply = func(inv *repos.InventoryRepo) (bool, error) { return inv.SetUnits(ctx, storeID, name, n) }
	case FieldPrice:
		p, ok := validate.Price(value)
		if !ok {
			return domain.ProductUpdate{}, invalid("price must be a non-negative number")
		}
		apply = func(inv *repos.InventoryRepo) (bool, error) { return inv.SetPrice(ctx, storeID, name, p) }
	}

	actor := sess.UserID
	if sess.IsAdmin() {
		actor = st.ManagerID
	}
	u := domain.ProductUpdate{
		ManagerID:   actor,
		StoreID:     storeID,
		ProductName: name,
		UpdatedOn:   s.Now().Format(domain.TimeLayout),
	}
	err = s.gw.InTx(ctx, func(q sqlx.ExtContext) error {
		found, err := apply(repos.NewInventoryRepo(q))
		if err != nil {
			return err
		}
		if !found {
			return notFoundMsg("product")
		}
		u.Number, err = repos.NewUpdateRepo(q).Append(ctx, u)
		return err
	})
	if err != nil {
		return domain.ProductUpdate{}, err
	}
	applog.Audit(nil, "product.update", map[string]any{
		"update":  u.Number,
		"user":    sess.UserID,
		"actor":   actor,
		"store":   storeID,
		"product": name,
		"field":   field,
		"value":   value,
	})
	return u, nil
}
