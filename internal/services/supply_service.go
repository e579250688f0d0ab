package services

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

type SupplyService struct {
	gw     *repos.Gateway
	Stores *repos.StoreRepo
	Now    func() time.Time
}

func NewSupplyService(gw *repos.Gateway, stores *repos.StoreRepo) *SupplyService {
	return &SupplyService{gw: gw, Stores: stores, Now: time.Now}
}

// RequestSupply records a restock request from a warehouse and adds the units
// to the store right away. Only the store's own manager may ask.
func (s *SupplyService) RequestSupply(ctx context.Context, sess domain.Session, storeID int64, productName string, qty int, warehouseID int64) (domain.SupplyRequest, error) {
	if _, err := storeAccess(ctx, s.Stores, sess, storeID, "supply.request", false); err != nil {
		return domain.SupplyRequest{}, err
	}
	if qty < 1 {
		return domain.SupplyRequest{}, invalid("units must be at least 1")
	}
	name := strings.TrimSpace(productName)
	r := domain.SupplyRequest{
		ManagerID:   sess.UserID,
		WarehouseID: warehouseID,
		StoreID:     storeID,
		ProductName: name,
		Units:       qty,
	}
	err := s.gw.InTx(ctx, func(q sqlx.ExtContext) error {
		supply := repos.NewSupplyRepo(q)
		ok, err := supply.WarehouseExists(ctx, warehouseID)
		if err != nil {
			return err
		}
		if !ok {
			return notFoundMsg("warehouse")
		}
		found, err := repos.NewInventoryRepo(q).Increment(ctx, storeID, name, qty)
		if err != nil {
			return err
		}
		if !found {
			return notFoundMsg("product")
		}
		if r.Number, err = supply.Create(ctx, r); err != nil {
			return err
		}
		_, err = repos.NewUpdateRepo(q).Append(ctx, domain.ProductUpdate{
			ManagerID:   sess.UserID,
			StoreID:     storeID,
			ProductName: name,
			UpdatedOn:   s.Now().Format(domain.TimeLayout),
		})
		return err
	})
	if err != nil {
		return domain.SupplyRequest{}, err
	}
	applog.Audit(nil, "supply.request", map[string]any{
		"request":   r.Number,
		"user":      sess.UserID,
		"store":     storeID,
		"warehouse": warehouseID,
		"product":   name,
		"units":     qty,
	})
	return r, nil
}
