package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// StockHandler serves the manager-side inventory endpoints.
type StockHandler struct {
	Products *services.ProductService
	Supply   *services.SupplyService
}

type updateReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type supplyReq struct {
	Product     string `json:"product"`
	Units       int    `json:"units"`
	WarehouseID int64  `json:"warehouse_id"`
}

// PUT /api/v1/stores/:id/products/:name
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, ok := storeID(c)
	if !ok {
		return badRequest(c, "store id must be a positive integer")
	}
	var req updateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	u, err := h.Products.UpdateProduct(c.UserContext(), session(c), id, c.Params("name"), req.Field, req.Value)
	if err != nil {
		return fail(c, "product.update", err)
	}
	return c.JSON(u)
}

// POST /api/v1/stores/:id/supply-requests
func (h *StockHandler) RequestSupply(c *fiber.Ctx) error {
	id, ok := storeID(c)
	if !ok {
		return badRequest(c, "store id must be a positive integer")
	}
	var req supplyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	r, err := h.Supply.RequestSupply(c.UserContext(), session(c), id, req.Product, req.Units, req.WarehouseID)
	if err != nil {
		return fail(c, "supply.request", err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}
