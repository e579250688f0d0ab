package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/geo"
	"storefront/internal/repos"
)

type CatalogService struct {
	Stores      *repos.StoreRepo
	ProductRepo *repos.ProductRepo
}

func NewCatalogService(stores *repos.StoreRepo, products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Stores: stores, ProductRepo: products}
}

// NearbyStores lists stores within geo.Range of the session, by store id.
func (s *CatalogService) NearbyStores(ctx context.Context, sess domain.Session) ([]domain.NearbyStore, error) {
	stores, err := s.Stores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.NearbyStore{}
	for _, st := range stores {
		d := geo.Distance(sess.Lat, sess.Lon, st.Lat, st.Lon)
		if geo.Within(d) {
			out = append(out, domain.NearbyStore{Store: st, Distance: d})
		}
	}
	return out, nil
}

// Products lists a store's products. An empty store is not an error.
func (s *CatalogService) Products(ctx context.Context, storeID int64) ([]domain.Product, error) {
	if _, err := s.Stores.Get(ctx, storeID); err != nil {
		return nil, notFound(err, "store")
	}
	return s.ProductRepo.ListByStore(ctx, storeID)
}
