package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Orders  *services.OrderService
	Reports *services.ReportService
}

type orderReq struct {
	StoreID int64  `json:"store_id"`
	Product string `json:"product"`
	Units   int    `json:"units"`
}

// POST /api/v1/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req orderReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	o, err := h.Orders.PlaceOrder(c.UserContext(), session(c), req.StoreID, req.Product, req.Units)
	if err != nil {
		return fail(c, "order.place", err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/v1/orders/recent?customer=
func (h *OrderHandler) Recent(c *fiber.Ctx) error {
	s := session(c)
	customer := s.UserID
	if q := c.Query("customer"); q != "" {
		id, ok := validate.ID(q)
		if !ok {
			return badRequest(c, "customer must be a positive integer")
		}
		customer = id
	}
	t, err := h.Reports.RecentOrders(c.UserContext(), s, customer, c.QueryInt("limit"))
	if err != nil {
		return fail(c, "orders.recent", err)
	}
	return c.JSON(t)
}
