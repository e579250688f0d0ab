package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const (
	defaultReportLimit = 5
	defaultStoreOrders = 10
)

// ReportService answers the read-only history and ranking queries.
type ReportService struct {
	Stores  *repos.StoreRepo
	Orders  *repos.OrderRepo
	Updates *repos.UpdateRepo
}

func NewReportService(stores *repos.StoreRepo, orders *repos.OrderRepo, updates *repos.UpdateRepo) *ReportService {
	return &ReportService{Stores: stores, Orders: orders, Updates: updates}
}

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

// RecentOrders lists a customer's newest orders. Customers only see their own.
func (s *ReportService) RecentOrders(ctx context.Context, sess domain.Session, customerID int64, limit int) (repos.Table, error) {
	if !sess.Valid() || (sess.Role == domain.RoleCustomer && customerID != sess.UserID) {
		deny(sess, 0, "orders.recent")
		return repos.Table{}, ErrDenied
	}
	return s.Orders.RecentByCustomer(ctx, customerID, limitOr(limit, defaultReportLimit))
}

func (s *ReportService) RecentUpdates(ctx context.Context, sess domain.Session, storeID int64, limit int) (repos.Table, error) {
	if _, err := storeAccess(ctx, s.Stores, sess, storeID, "report.updates", true); err != nil {
		return repos.Table{}, err
	}
	return s.Updates.RecentByStore(ctx, storeID, limitOr(limit, defaultReportLimit))
}

// PopularProducts ranks by total units ordered, fewest first.
func (s *ReportService) PopularProducts(ctx context.Context, sess domain.Session, storeID int64, limit int) (repos.Table, error) {
	if _, err := storeAccess(ctx, s.Stores, sess, storeID, "report.popular_products", true); err != nil {
		return repos.Table{}, err
	}
	return s.Orders.PopularProducts(ctx, storeID, limitOr(limit, defaultReportLimit))
}

// PopularCustomers lists customers by order number, oldest first.
func (s *ReportService) PopularCustomers(ctx context.Context, sess domain.Session, storeID int64, limit int) (repos.Table, error) {
	if _, err := storeAccess(ctx, s.Stores, sess, storeID, "report.popular_customers", true); err != nil {
		return repos.Table{}, err
	}
	return s.Orders.PopularCustomers(ctx, storeID, limitOr(limit, defaultReportLimit))
}

// RecentStoreOrders is for the store's own manager; admins are refused.
func (s *ReportService) RecentStoreOrders(ctx context.Context, sess domain.Session, storeID int64, limit int) (repos.Table, error) {
	if _, err := storeAccess(ctx, s.Stores, sess, storeID, "report.store_orders", false); err != nil {
		return repos.Table{}, err
	}
	return s.Orders.RecentByStore(ctx, storeID, limitOr(limit, defaultStoreOrders))
}
