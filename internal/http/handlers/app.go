package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options tunes the app; zero values pick the production defaults.
type Options struct {
	LoginMax    int
	LoginWindow time.Duration
}

// NewApp wires middleware and every route over the given services.
func NewApp(svc *services.Services, opts Options) *fiber.App {
	if opts.LoginMax <= 0 {
		opts.LoginMax = 5
	}
	if opts.LoginWindow <= 0 {
		opts.LoginWindow = 10 * time.Minute
	}

	views, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		UnescapePath: true,
		BodyLimit:    1 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please try again"})
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(accessLog)

	deps := NewDeps(svc)
	auth := RequireUser(svc.Auth)

	api := app.Group("/api/v1")
	api.Post("/users", deps.Auth.Register)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        opts.LoginMax,
		Expiration: opts.LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), deps.Auth.Login)
	api.Post("/logout", deps.Auth.Logout)

	api.Get("/stores/nearby", auth, deps.Catalog.Nearby)
	api.Get("/stores/:id/products", auth, deps.Catalog.Products)
	api.Put("/stores/:id/products/:name", auth, deps.Stock.Update)
	api.Post("/stores/:id/supply-requests", auth, deps.Stock.RequestSupply)
	api.Get("/stores/:id/updates", auth, deps.Reports.Updates())
	api.Get("/stores/:id/popular-products", auth, deps.Reports.PopularProducts())
	api.Get("/stores/:id/popular-customers", auth, deps.Reports.PopularCustomers())
	api.Get("/stores/:id/orders", auth, deps.Reports.StoreOrders())

	api.Post("/orders", auth, deps.Orders.Place)
	api.Get("/orders/recent", auth, deps.Orders.Recent)

	admin := api.Group("/admin", auth, RequireAdmin())
	admin.Patch("/users/:id", deps.Admin.EditUser)

	app.Get("/stores/:id/report", auth, deps.Reports.Page)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}

func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	applog.Info(c, "http.request", map[string]any{"took_ms": time.Since(start).Milliseconds()})
	return err
}
