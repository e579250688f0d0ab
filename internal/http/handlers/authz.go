package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

const sessionKey = "session"

// RequireUser resolves the sid cookie to a session or answers 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		s, err := auth.CurrentSession(c.UserContext(), sid)
		if err != nil || !s.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		c.Locals(sessionKey, s)
		return c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session(c)
		if !s.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user": s.UserID, "role": string(s.Role)})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return c.Next()
	}
}

func session(c *fiber.Ctx) domain.Session {
	s, _ := c.Locals(sessionKey).(domain.Session)
	return s
}
