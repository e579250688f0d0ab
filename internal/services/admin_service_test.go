package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/services"
)

func TestAdminEditUser(t *testing.T) {
	ctx := context.Background()
	logs := observe(t)
	svc, _ := setup(t)
	admin := login(t, svc, "Admin")

	require.NoError(t, svc.Admin.EditUser(ctx, admin, 4, "type", "Manager"))
	require.NoError(t, svc.Admin.EditUser(ctx, admin, 4, "latitude", "33.5"))
	require.NoError(t, svc.Admin.EditUser(ctx, admin, 4, "password", "newpw"))

	s, err := svc.Auth.Login(ctx, "Alice", "newpw")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, s.Role)
	assert.Equal(t, 33.5, s.Lat)

	entries := logs.FilterMessage("admin.user.edit").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "***", entries[2].ContextMap()["value"])
}

func TestAdminEditUserID(t *testing.T) {
	ctx := context.Background()
	svc, gw := setup(t)
	admin := login(t, svc, "Admin")
	alice := login(t, svc, "Alice")
	_, err := svc.Orders.PlaceOrder(ctx, alice, 1, "Widget", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Admin.EditUser(ctx, admin, 4, "id", "40"))
	s, err := svc.Auth.Login(ctx, "Alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), s.UserID)
	assert.Equal(t, 1, count(t, gw, `SELECT * FROM orders WHERE customerid = 40`))
}

func TestAdminEditUserRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	admin := login(t, svc, "Admin")
	bob := login(t, svc, "Bob")

	assert.ErrorIs(t, svc.Admin.EditUser(ctx, bob, 4, "name", "Mallory"), services.ErrDenied)
	assert.ErrorIs(t, svc.Admin.EditUser(ctx, admin, 4, "email", "x"), services.ErrInvalidInput)
	assert.ErrorIs(t, svc.Admin.EditUser(ctx, admin, 4, "latitude", "north"), services.ErrInvalidInput)
	assert.ErrorIs(t, svc.Admin.EditUser(ctx, admin, 4, "type", "root"), services.ErrInvalidInput)
	assert.ErrorIs(t, svc.Admin.EditUser(ctx, admin, 4, "id", "0"), services.ErrInvalidInput)
	assert.ErrorIs(t, svc.Admin.EditUser(ctx, admin, 404, "name", "Ghost"), services.ErrNotFound)
}

func TestAdminMovesUserIntoRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	admin := login(t, svc, "Admin")

	alice := login(t, svc, "Alice")
	near, err := svc.Catalog.NearbyStores(ctx, alice)
	require.NoError(t, err)
	require.Len(t, near, 1)

	require.NoError(t, svc.Admin.EditUser(ctx, admin, 4, "latitude", "65"))
	require.NoError(t, svc.Admin.EditUser(ctx, admin, 4, "longitude", "65"))
	alice = login(t, svc, "Alice")
	near, err = svc.Catalog.NearbyStores(ctx, alice)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, int64(3), near[0].ID)
}
