package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	Name      string  `json:"name"`
	Password  string  `json:"password"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type loginReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// issueSID sets a fresh session cookie; a login never reuses the old id.
func issueSID(c *fiber.Ctx) string {
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
	})
	return sid
}

// POST /api/v1/users
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	id, err := h.Auth.Register(c.UserContext(), req.Name, req.Password, req.Latitude, req.Longitude)
	if err != nil {
		return fail(c, "auth.register", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_id": id})
}

// POST /api/v1/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	s, err := h.Auth.Login(c.UserContext(), req.Name, req.Password)
	if err != nil {
		return fail(c, "auth.login", err)
	}
	sid := issueSID(c)
	if err := h.Auth.BindSession(c.UserContext(), sid, s.UserID); err != nil {
		return fail(c, "auth.session.bind", err)
	}
	return c.JSON(s)
}

// POST /api/v1/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			applog.Error(c, "auth.logout.fail", err, nil)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.SendStatus(fiber.StatusNoContent)
}
