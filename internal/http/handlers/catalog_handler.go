package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/stores/nearby
func (h *CatalogHandler) Nearby(c *fiber.Ctx) error {
	stores, err := h.Catalog.NearbyStores(c.UserContext(), session(c))
	if err != nil {
		return fail(c, "stores.nearby", err)
	}
	return c.JSON(stores)
}

// GET /api/v1/stores/:id/products
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	id, ok := storeID(c)
	if !ok {
		return badRequest(c, "store id must be a positive integer")
	}
	products, err := h.Catalog.Products(c.UserContext(), id)
	if err != nil {
		return fail(c, "stores.products", err)
	}
	return c.JSON(products)
}
