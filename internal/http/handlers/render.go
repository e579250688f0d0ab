package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

// status maps a workflow error to an HTTP status and a client-safe message.
func status(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrBadCreds):
		return fiber.StatusUnauthorized, "invalid name or password"
	case errors.Is(err, services.ErrDenied):
		return fiber.StatusForbidden, "access denied"
	case errors.Is(err, services.ErrTooFar), errors.Is(err, services.ErrInsufficientStock):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrNotFound):
		code := fiber.StatusBadRequest
		if errors.Is(err, services.ErrNotFound) {
			code = fiber.StatusNotFound
		}
		return code, err.Error()
	default:
		return fiber.StatusInternalServerError, "something went wrong, please try again"
	}
}

// fail writes err as JSON. Server-side failures are logged with the action.
func fail(c *fiber.Ctx, action string, err error) error {
	code, msg := status(err)
	if code == fiber.StatusInternalServerError {
		applog.Error(c, action+".fail", err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func storeID(c *fiber.Ctx) (int64, bool) {
	return validate.ID(c.Params("id"))
}

// render fills a view; errors become a plain status page.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	s := session(c)
	if s.Valid() {
		data["Session"] = s
	}
	return c.Render(tmpl, data)
}

func renderError(c *fiber.Ctx, action string, err error) error {
	code, msg := status(err)
	if code == fiber.StatusInternalServerError {
		applog.Error(c, action+".fail", err, nil)
	}
	return c.Status(code).Render("error", fiber.Map{"Code": code, "Message": capitalize(msg)})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
