// Package cli is the interactive text menu over the store services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/validate"
)

// Console drives one interactive session. It holds the logged-in identity
// and hands it to every service call.
type Console struct {
	svc  *services.Services
	in   *bufio.Reader
	out  io.Writer
	sess domain.Session

	// ReadPassword reads a secret without echo. Nil reads a plain line.
	ReadPassword func(prompt string) (string, error)
}

func New(svc *services.Services, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, in: bufio.NewReader(in), out: out}
}

// Run shows the main menu until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.greeting()
	for {
		if err := ctx.Err(); err != nil {
			return c.finish(err)
		}
		c.printf("MAIN MENU\n---------\n1. Create user\n2. Log in\n9. < EXIT\n")
		ch, err := c.readChoice()
		if err != nil {
			return c.finish(err)
		}
		switch ch {
		case 1:
			err = c.handle(c.createUser(ctx))
		case 2:
			if err = c.handle(c.logIn(ctx)); err == nil && c.sess.Valid() {
				err = c.userMenu(ctx)
			}
		case 9:
			c.printf("Done\n\nBye !\n")
			return nil
		default:
			c.printf("Unrecognized choice!\n")
		}
		if err != nil {
			return c.finish(err)
		}
	}
}

func (c *Console) userMenu(ctx context.Context) error {
	for c.sess.Valid() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("MAIN MENU\n---------\n" +
			"1. View Stores within 30 miles\n" +
			"2. View Product List\n" +
			"3. Place a Order\n" +
			"4. View 5 recent orders\n" +
			"5. Update Product\n" +
			"6. View 5 recent Product Updates Info\n" +
			"7. View 5 Popular Items\n" +
			"8. View 5 Popular Customers\n" +
			"9. Place Product Supply Request to Warehouse\n" +
			"10. View 10 most recent orders for store(Manager)\n" +
			"25. Admin\n" +
			".........................\n" +
			"20. Log out\n")
		ch, err := c.readChoice()
		if err != nil {
			return err
		}
		var actionErr error
		switch ch {
		case 1:
			actionErr = c.viewStores(ctx)
		case 2:
			actionErr = c.viewProducts(ctx)
		case 3:
			actionErr = c.placeOrder(ctx)
		case 4:
			actionErr = c.viewRecentOrders(ctx)
		case 5:
			actionErr = c.updateProduct(ctx)
		case 6:
			actionErr = c.viewRecentUpdates(ctx)
		case 7:
			actionErr = c.viewPopularProducts(ctx)
		case 8:
			actionErr = c.viewPopularCustomers(ctx)
		case 9:
			actionErr = c.requestSupply(ctx)
		case 10:
			actionErr = c.recentStoreOrders(ctx)
		case 25:
			actionErr = c.admin(ctx)
		case 20:
			applog.Audit(nil, "auth.logout", map[string]any{"user": c.sess.UserID})
			c.sess = domain.Session{}
		default:
			c.printf("Unrecognized choice!\n")
		}
		if err := c.handle(actionErr); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) greeting() {
	c.printf("\n\n*******************************************************\n" +
		"              User Interface                           \n" +
		"*******************************************************\n\n")
}

// finish turns end of input or an interrupt into a clean exit.
func (c *Console) finish(err error) error {
	if stopped(err) {
		c.printf("\nBye !\n")
		return nil
	}
	return err
}

// handle prints a workflow failure and keeps the loop alive. End of input
// and cancellation are passed back up.
func (c *Console) handle(err error) error {
	if err == nil {
		return nil
	}
	if stopped(err) {
		return err
	}
	c.printf("%s\n", Message(err))
	return nil
}

func stopped(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Message renders a workflow error for the terminal.
func Message(err error) string {
	var se *repos.StatementError
	switch {
	case errors.Is(err, services.ErrBadCreds):
		return "No user with that name and password."
	case errors.Is(err, services.ErrDenied):
		return "You are not allowed to do that."
	case errors.Is(err, services.ErrTooFar):
		return "Store too far."
	case errors.Is(err, services.ErrInsufficientStock):
		return "We do not have enough of that product in stock."
	case errors.Is(err, services.ErrInvalidInput):
		return capitalize(strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")) + "."
	case errors.Is(err, services.ErrNotFound):
		return capitalize(err.Error()) + "."
	case errors.As(err, &se):
		applog.Error(nil, "db."+se.Op, se.Err, nil)
		return "Something didn't work, please try again."
	default:
		applog.Error(nil, "cli.action", err, nil)
		return "Something didn't work, please try again."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine(prompt string) (string, error) {
	if prompt != "" {
		c.printf("%s", prompt)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) readSecret(prompt string) (string, error) {
	if c.ReadPassword != nil {
		return c.ReadPassword(prompt)
	}
	return c.readLine(prompt)
}

// readChoice re-prompts until it gets an integer.
func (c *Console) readChoice() (int, error) {
	for {
		line, err := c.readLine("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		c.printf("Your input is invalid!\n")
	}
}

func (c *Console) readID(prompt, what string) (int64, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	id, ok := validate.ID(line)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a positive integer", services.ErrInvalidInput, what)
	}
	return id, nil
}

func (c *Console) readQty(prompt string) (int, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, ok := validate.Qty(line)
	if !ok {
		return 0, fmt.Errorf("%w: units must be a positive integer", services.ErrInvalidInput)
	}
	return n, nil
}

func (c *Console) readCoord(prompt, what string) (float64, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	f, ok := validate.Coordinate(line)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number within [0, 100]", services.ErrInvalidInput, what)
	}
	return f, nil
}

// printTable writes rows in aligned columns, or empty when there are none.
func (c *Console) printTable(t repos.Table, empty string) {
	if len(t.Rows) == 0 {
		c.printf("%s\n", empty)
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Columns, "\t"))
	for _, r := range t.Rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	_ = w.Flush()
}
