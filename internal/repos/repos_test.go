package repos_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/repos/repotest"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	users := repos.NewUserRepo(gw.DB)

	id, err := users.Create(ctx, "Alice", "hash", 1, 2, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	same, err := users.ByName(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, same, 2)
	assert.Equal(t, int64(4), same[0].ID)

	ok, err := users.SetField(ctx, id, "latitude", 9.5)
	require.NoError(t, err)
	assert.True(t, ok)
	u, err := users.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 9.5, u.Lat)

	ok, err = users.SetField(ctx, 999, "name", "x")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = users.SetField(ctx, id, "userid; DROP TABLE users", "x")
	assert.Error(t, err)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	users := repos.NewUserRepo(gw.DB)
	const seen, before = "2024-03-01 12:00:00", "2024-03-01 00:00:00"

	require.NoError(t, users.BindSession(ctx, "sid-1", 4, seen))
	u, err := users.SessionUser(ctx, "sid-1", before)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	require.NoError(t, users.BindSession(ctx, "sid-1", 2, seen))
	u, err = users.SessionUser(ctx, "sid-1", before)
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)

	require.NoError(t, users.UnbindSession(ctx, "sid-1"))
	_, err = users.SessionUser(ctx, "sid-1", before)
	assert.Error(t, err)
}

func TestSessionIdleCutoff(t *testing.T) {
	ctx := context.Background()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	users := repos.NewUserRepo(gw.DB)

	require.NoError(t, users.BindSession(ctx, "sid-2", 4, "2024-03-01 12:00:00"))
	_, err := users.SessionUser(ctx, "sid-2", "2024-03-01 12:00:01")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, users.TouchSession(ctx, "sid-2", "2024-03-02 09:00:00"))
	_, err = users.SessionUser(ctx, "sid-2", "2024-03-01 12:00:01")
	assert.NoError(t, err)
}

func TestInventoryRepo(t *testing.T) {
	ctx := context.Background()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	inv := repos.NewInventoryRepo(gw.DB)
	products := repos.NewProductRepo(gw.DB)

	require.NoError(t, inv.Decrement(ctx, 1, "Widget", 3))
	assert.ErrorIs(t, inv.Decrement(ctx, 1, "Widget", 7), repos.ErrNoStock)
	assert.ErrorIs(t, inv.Decrement(ctx, 1, "widget", 1), repos.ErrNoStock)

	ok, err := inv.Increment(ctx, 1, "Widget", 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inv.SetPrice(ctx, 1, "Widget", decimal.RequireFromString("7.25"))
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := products.Get(ctx, 1, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 12, p.Units)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("7.25")), p.Price.String())

	ok, err = inv.SetUnits(ctx, 1, "Nothing", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := products.ListByStore(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	ctx := context.Background()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	orders := repos.NewOrderRepo(gw.DB)

	seen := map[int64]bool{}
	for i := 1; i <= 3; i++ {
		n, err := orders.Create(ctx, domain.Order{CustomerID: 4, StoreID: 1, ProductName: "Widget", Units: i, Time: "2024-01-01 10:00:00"})
		require.NoError(t, err)
		assert.False(t, seen[n], "duplicate order number %d", n)
		seen[n] = true
	}

	tab, err := orders.RecentByCustomer(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "3", tab.Get(0, "unitsordered"))

	tab, err = orders.PopularProducts(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "6", tab.Get(0, "numunitspurchased"))

	tab, err = orders.PopularCustomers(ctx, 1, 5)
	require.NoError(t, err)
	assert.Len(t, tab.Rows, 3)
	assert.Equal(t, "Alice", tab.Get(0, "name"))
}

func TestAuditAndSupplyNumbers(t *testing.T) {
	ctx := context.Background()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	updates := repos.NewUpdateRepo(gw.DB)
	supply := repos.NewSupplyRepo(gw.DB)

	a, err := updates.Append(ctx, domain.ProductUpdate{ManagerID: 2, StoreID: 1, ProductName: "Widget", UpdatedOn: "2024-01-01 10:00:00"})
	require.NoError(t, err)
	b, err := updates.Append(ctx, domain.ProductUpdate{ManagerID: 2, StoreID: 1, ProductName: "Widget", UpdatedOn: "2024-01-01 11:00:00"})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	tab, err := updates.RecentByStore(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 11:00:00", tab.Get(0, "updatedon"))

	r, err := supply.Create(ctx, domain.SupplyRequest{ManagerID: 2, WarehouseID: 1, StoreID: 1, ProductName: "Widget", Units: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), r)
}
