package handlers

import "storefront/internal/services"

type Deps struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Orders  *OrderHandler
	Stock   *StockHandler
	Reports *ReportHandler
	Admin   *AdminHandler
}

func NewDeps(svc *services.Services) *Deps {
	return &Deps{
		Auth:    &AuthHandler{Auth: svc.Auth},
		Catalog: &CatalogHandler{Catalog: svc.Catalog},
		Orders:  &OrderHandler{Orders: svc.Orders, Reports: svc.Reports},
		Stock:   &StockHandler{Products: svc.Products, Supply: svc.Supply},
		Reports: &ReportHandler{Reports: svc.Reports},
		Admin:   &AdminHandler{Admin: svc.Admin},
	}
}
