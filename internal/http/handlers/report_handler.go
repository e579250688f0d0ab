package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

type reportFunc func(ctx context.Context, s domain.Session, storeID int64, limit int) (repos.Table, error)

func (h *ReportHandler) serve(action string, fn reportFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := storeID(c)
		if !ok {
			return badRequest(c, "store id must be a positive integer")
		}
		t, err := fn(c.UserContext(), session(c), id, c.QueryInt("limit"))
		if err != nil {
			return fail(c, action, err)
		}
		return c.JSON(t)
	}
}

// GET /api/v1/stores/:id/updates
func (h *ReportHandler) Updates() fiber.Handler {
	return h.serve("report.updates", h.Reports.RecentUpdates)
}

// GET /api/v1/stores/:id/popular-products
func (h *ReportHandler) PopularProducts() fiber.Handler {
	return h.serve("report.popular_products", h.Reports.PopularProducts)
}

// GET /api/v1/stores/:id/popular-customers
func (h *ReportHandler) PopularCustomers() fiber.Handler {
	return h.serve("report.popular_customers", h.Reports.PopularCustomers)
}

// GET /api/v1/stores/:id/orders
func (h *ReportHandler) StoreOrders() fiber.Handler {
	return h.serve("report.store_orders", h.Reports.RecentStoreOrders)
}

// Page renders the store dashboard: recent updates and both rankings.
// GET /stores/:id/report
func (h *ReportHandler) Page(c *fiber.Ctx) error {
	id, ok := storeID(c)
	if !ok {
		return renderError(c, "report.page", services.ErrInvalidInput)
	}
	ctx, s := c.UserContext(), session(c)
	updates, err := h.Reports.RecentUpdates(ctx, s, id, 0)
	if err != nil {
		return renderError(c, "report.page", err)
	}
	products, err := h.Reports.PopularProducts(ctx, s, id, 0)
	if err != nil {
		return renderError(c, "report.page", err)
	}
	customers, err := h.Reports.PopularCustomers(ctx, s, id, 0)
	if err != nil {
		return renderError(c, "report.page", err)
	}
	return render(c, "report", fiber.Map{
		"StoreID": id,
		"Sections": []fiber.Map{
			{"Title": "Recent product updates", "Table": updates},
			{"Title": "Popular products", "Table": products},
			{"Title": "Popular customers", "Table": customers},
		},
	})
}
