package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/cli"
	"storefront/internal/repos"
	"storefront/internal/repos/repotest"
	"storefront/internal/services"
)

func run(t *testing.T, lines ...string) (string, *repos.Gateway) {
	t.Helper()
	return runContext(t, context.Background(), lines...)
}

func runContext(t *testing.T, ctx context.Context, lines ...string) (string, *repos.Gateway) {
	t.Helper()
	gw := repotest.Open(t)
	repotest.Fixture(t, gw)
	svc := services.New(gw)
	svc.Auth.HashCost = bcrypt.MinCost

	var out bytes.Buffer
	c := cli.New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, c.Run(ctx))
	return out.String(), gw
}

func TestMainMenuInputHandling(t *testing.T) {
	out, _ := run(t, "abc", "7", "9")
	assert.Contains(t, out, "Your input is invalid!")
	assert.Contains(t, out, "Unrecognized choice!")
	assert.Contains(t, out, "Bye !")
}

func TestEndOfInputExitsCleanly(t *testing.T) {
	out, _ := run(t, "2", "Alice", "pw1")
	assert.Contains(t, out, "Welcome, Alice (customer).")
	assert.Contains(t, out, "Bye !")
}

func TestCancelledContextExitsCleanly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, gw := runContext(t, ctx,
		"2", "Alice", "pw1",
		"2", "Alice", "pw1",
		"1", "Dana", "pw", "1", "1",
		"9")
	assert.NotContains(t, out, "Something didn't work")
	assert.NotContains(t, out, "Welcome")
	assert.NotContains(t, out, "MAIN MENU")
	assert.Contains(t, out, "Bye !")

	n, err := gw.Count(context.Background(), `SELECT * FROM users WHERE name = 'Dana'`)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateUserAndLogin(t *testing.T) {
	out, gw := run(t,
		"1", "Dana", "pw9", "12", "north",
		"1", "Dana", "pw9", "12", "13",
		"2", "Dana", "wrong",
		"2", "Dana", "pw9",
		"20", "9")
	assert.Contains(t, out, "Longitude must be a number within [0, 100].")
	assert.Contains(t, out, "User successfully created! Your user id is 5.")
	assert.Contains(t, out, "No user with that name and password.")
	assert.Contains(t, out, "Welcome, Dana (customer).")

	n, err := gw.Count(context.Background(), `SELECT * FROM users WHERE name = 'Dana'`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCustomerShopping(t *testing.T) {
	out, gw := run(t,
		"2", "Alice", "pw1",
		"1",
		"2", "1",
		"3", "1", "Widget", "3",
		"3", "1", "Widget", "7",
		"3", "3", "Gizmo", "1",
		"4",
		"5", "1", "Widget", "amount", "1",
		"20", "9")

	assert.Contains(t, out, "Riverside")
	assert.NotContains(t, out, "Hilltop")
	assert.Regexp(t, `Widget\s+10\s+5\.00`, out)
	assert.Contains(t, out, "Order 1 placed: 3 x Widget from store 1.")
	assert.Contains(t, out, "We do not have enough of that product in stock.")
	assert.Contains(t, out, "Store too far.")
	assert.Contains(t, out, "ordernumber")
	assert.Contains(t, out, "You are not allowed to do that.")

	p, err := repos.NewProductRepo(gw.DB).Get(context.Background(), 1, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Units)
}

func TestManagerWorkflows(t *testing.T) {
	out, gw := run(t,
		"2", "Bob", "pw1",
		"5", "1", "Widget", "price", "6.5",
		"6", "1",
		"9", "1", "Widget", "5", "1",
		"7", "3",
		"10", "1",
		"10", "x",
		"20", "9")

	assert.Contains(t, out, "Product updated (update 1).")
	assert.Contains(t, out, "updatenumber")
	assert.Contains(t, out, "Supply request 1 placed; 5 x Widget added to store 1.")
	assert.Contains(t, out, "You are not allowed to do that.")
	assert.Contains(t, out, "No order history.")
	assert.Contains(t, out, "Store ID must be a positive integer.")

	p, err := repos.NewProductRepo(gw.DB).Get(context.Background(), 1, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 15, p.Units)
	assert.Equal(t, "6.5", p.Price.String())
}

func TestStaffRecentOrdersDefaultsToSelf(t *testing.T) {
	out, _ := run(t,
		"2", "Bob", "pw1",
		"3", "1", "Widget", "2",
		"4", "",
		"4", "4",
		"4", "x",
		"20", "9")

	assert.Contains(t, out, "Order 1 placed: 2 x Widget from store 1.")
	assert.Regexp(t, `1\s+2\s+1\s+Widget\s+2`, out)
	assert.Contains(t, out, "No order history.")
	assert.Contains(t, out, "Customer ID must be a positive integer.")
}

func TestAdminSelfEditRefreshesSession(t *testing.T) {
	out, _ := run(t,
		"2", "Admin", "pw1",
		"1",
		"25", "user", "1", "latitude", "25",
		"25", "user", "1", "longitude", "25",
		"1",
		"25", "user", "1", "type", "customer",
		"25",
		"20", "9")

	before, after, ok := strings.Cut(out, "User 1 updated.")
	require.True(t, ok)
	assert.Contains(t, before, "No stores within 30 miles.")
	assert.NotContains(t, before, "Riverside")
	assert.Contains(t, after, "Riverside")
	assert.NotContains(t, after, "Hilltop")
	assert.Contains(t, after, "You are not allowed to do that.")
}

func TestAdminMenu(t *testing.T) {
	out, gw := run(t,
		"2", "Admin", "pw1",
		"25", "user", "4", "type", "manager",
		"25", "product", "3", "Gizmo", "amount", "20",
		"25", "store",
		"20",
		"2", "Alice", "pw1",
		"25",
		"20", "9")

	assert.Contains(t, out, "User 4 updated.")
	assert.Contains(t, out, "Welcome, Alice (manager).")
	assert.Contains(t, out, "Unknown choice")
	assert.Contains(t, out, "You are not allowed to do that.")

	tab, err := gw.All(context.Background(), `SELECT managerid FROM productupdates`)
	require.NoError(t, err)
	assert.Equal(t, "3", tab.Get(0, "managerid"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Something didn't work, please try again.",
		cli.Message(&repos.StatementError{Op: "order.create", Err: errors.New("constraint failed")}))
	assert.Equal(t, "Not found: store.", cli.Message(fmt.Errorf("%w: store", services.ErrNotFound)))
	assert.Equal(t, "Units must be a positive integer.",
		cli.Message(fmt.Errorf("%w: units must be a positive integer", services.ErrInvalidInput)))
}
