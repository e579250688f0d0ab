package services

import "storefront/internal/repos"

// Services bundles every workflow over one gateway.
type Services struct {
	Auth     *AuthService
	Catalog  *CatalogService
	Orders   *OrderService
	Products *ProductService
	Reports  *ReportService
	Supply   *SupplyService
	Admin    *AdminService
}

func New(gw *repos.Gateway) *Services {
	users := repos.NewUserRepo(gw.DB)
	stores := repos.NewStoreRepo(gw.DB)
	auth := NewAuthService(users)
	return &Services{
		Auth:     auth,
		Catalog:  NewCatalogService(stores, repos.NewProductRepo(gw.DB)),
		Orders:   NewOrderService(gw, stores),
		Products: NewProductService(gw, stores),
		Reports:  NewReportService(stores, repos.NewOrderRepo(gw.DB), repos.NewUpdateRepo(gw.DB)),
		Supply:   NewSupplyService(gw, stores),
		Admin:    NewAdminService(auth, users),
	}
}
