package services_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/repos/repotest"
	"storefront/internal/services"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*services.Services, *repos.Gateway) {
	t.Helper()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	svc := services.New(gw)
	svc.Auth.HashCost = bcrypt.MinCost
	clock := func() time.Time { return fixedNow }
	svc.Orders.Now = clock
	svc.Products.Now = clock
	svc.Supply.Now = clock
	svc.Auth.Now = clock
	return svc, gw
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := applog.L()
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(prev) })
	return logs
}

func login(t *testing.T, svc *services.Services, name string) domain.Session {
	t.Helper()
	s, err := svc.Auth.Login(context.Background(), name, "pw1")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func units(t *testing.T, gw *repos.Gateway, storeID int64, name string) int {
	t.Helper()
	p, err := repos.NewProductRepo(gw.DB).Get(context.Background(), storeID, name)
	if err != nil {
		t.Fatal(err)
	}
	return p.Units
}

func count(t *testing.T, gw *repos.Gateway, q string, args ...any) int {
	t.Helper()
	n, err := gw.Count(context.Background(), q, args...)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
