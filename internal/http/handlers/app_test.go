package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/repos/repotest"
	"storefront/internal/services"
)

func newApp(t *testing.T, opts handlers.Options) (*fiber.App, *repos.Gateway) {
	t.Helper()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	svc := services.New(gw)
	svc.Auth.HashCost = bcrypt.MinCost
	return handlers.NewApp(svc, opts), gw
}

func do(t *testing.T, app *fiber.App, method, path, body, sid string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func loginAs(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp := do(t, app, "POST", "/api/v1/login", `{"name":"`+name+`","password":"pw1"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", name, resp.StatusCode)
	}
	sid := cookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing")
	}
	return sid
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
