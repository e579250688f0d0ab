package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/geo"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

type OrderService struct {
	gw     *repos.Gateway
	Stores *repos.StoreRepo
	Now    func() time.Time
}

func NewOrderService(gw *repos.Gateway, stores *repos.StoreRepo) *OrderService {
	return &OrderService{gw: gw, Stores: stores, Now: time.Now}
}

// PlaceOrder buys qty units of a product from a store within range. The stock
// decrement and the order row commit together.
func (s *OrderService) PlaceOrder(ctx context.Context, sess domain.Session, storeID int64, productName string, qty int) (domain.Order, error) {
	if !sess.Valid() {
		return domain.Order{}, ErrDenied
	}
	if qty < 1 {
		return domain.Order{}, invalid("quantity must be at least 1")
	}
	name := strings.TrimSpace(productName)

	st, err := s.Stores.Get(ctx, storeID)
	if err != nil {
		return domain.Order{}, notFound(err, "store")
	}
	if d := geo.Distance(sess.Lat, sess.Lon, st.Lat, st.Lon); !geo.Within(d) {
		return domain.Order{}, ErrTooFar
	}

	o := domain.Order{
		CustomerID:  sess.UserID,
		StoreID:     storeID,
		ProductName: name,
		Units:       qty,
		Time:        s.Now().Format(domain.TimeLayout),
	}
	err = s.gw.InTx(ctx, func(q sqlx.ExtContext) error {
		p, err := repos.NewProductRepo(q).Get(ctx, storeID, name)
		if err != nil {
			return notFound(err, "product")
		}
		if qty >= p.Units {
			return ErrInsufficientStock
		}
		if err := repos.NewInventoryRepo(q).Decrement(ctx, storeID, name, qty); err != nil {
			if errors.Is(err, repos.ErrNoStock) {
				return ErrInsufficientStock
			}
			return err
		}
		o.Number, err = repos.NewOrderRepo(q).Create(ctx, o)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}
	applog.Audit(nil, "order.place", map[string]any{
		"order":   o.Number,
		"user":    sess.UserID,
		"store":   storeID,
		"product": name,
		"units":   qty,
	})
	return o, nil
}
