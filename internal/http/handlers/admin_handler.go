package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
	"storefront/internal/validate"
)

type AdminHandler struct {
	Admin *services.AdminService
}

type editUserReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// PATCH /api/v1/admin/users/:id
func (h *AdminHandler) EditUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "user id must be a positive integer")
	}
	var req editUserReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	if err := h.Admin.EditUser(c.UserContext(), session(c), id, req.Field, req.Value); err != nil {
		return fail(c, "admin.user.edit", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
