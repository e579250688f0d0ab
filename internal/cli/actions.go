package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"storefront/internal/domain"
	"storefront/internal/services"
	"storefront/internal/validate"
)

func (c *Console) createUser(ctx context.Context) error {
	name, err := c.readLine("\tEnter name: ")
	if err != nil {
		return err
	}
	pw, err := c.readSecret("\tEnter password: ")
	if err != nil {
		return err
	}
	lat, err := c.readCoord("\tEnter latitude: ", "latitude")
	if err != nil {
		return err
	}
	lon, err := c.readCoord("\tEnter longitude: ", "longitude")
	if err != nil {
		return err
	}
	id, err := c.svc.Auth.Register(ctx, name, pw, lat, lon)
	if err != nil {
		return err
	}
	c.printf("User successfully created! Your user id is %d.\n", id)
	return nil
}

func (c *Console) logIn(ctx context.Context) error {
	name, err := c.readLine("\tEnter name: ")
	if err != nil {
		return err
	}
	pw, err := c.readSecret("\tEnter password: ")
	if err != nil {
		return err
	}
	s, err := c.svc.Auth.Login(ctx, name, pw)
	if err != nil {
		return err
	}
	c.sess = s
	c.printf("Welcome, %s (%s).\n", s.Name, s.Role)
	return nil
}

func (c *Console) viewStores(ctx context.Context) error {
	stores, err := c.svc.Catalog.NearbyStores(ctx, c.sess)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		c.printf("No stores within 30 miles.\n")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "storeid\tname\tlatitude\tlongitude\tdistance")
	for _, s := range stores {
		fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%.2f\n", s.ID, s.Name, s.Lat, s.Lon, s.Distance)
	}
	return w.Flush()
}

func (c *Console) viewProducts(ctx context.Context) error {
	storeID, err := c.readID("\tEnter store ID: ", "store ID")
	if err != nil {
		return err
	}
	products, err := c.svc.Catalog.Products(ctx, storeID)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		c.printf("This store has no current products.\n")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "productname\tnumberofunits\tpriceperunit")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, p.Units, p.Price.StringFixed(2))
	}
	return w.Flush()
}

func (c *Console) placeOrder(ctx context.Context) error {
	storeID, err := c.readID("\tEnter store ID: ", "store ID")
	if err != nil {
		return err
	}
	name, err := c.readLine("\tEnter product name: ")
	if err != nil {
		return err
	}
	qty, err := c.readQty("\tEnter number of units: ")
	if err != nil {
		return err
	}
	o, err := c.svc.Orders.PlaceOrder(ctx, c.sess, storeID, name, qty)
	if err != nil {
		return err
	}
	c.printf("Order %d placed: %d x %s from store %d.\n", o.Number, o.Units, o.ProductName, o.StoreID)
	return nil
}

func (c *Console) viewRecentOrders(ctx context.Context) error {
	customerID := c.sess.UserID
	if c.sess.Role != domain.RoleCustomer {
		line, err := c.readLine("\tEnter customer ID (blank for your own): ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			id, ok := validate.ID(line)
			if !ok {
				return fmt.Errorf("%w: customer ID must be a positive integer", services.ErrInvalidInput)
			}
			customerID = id
		}
	}
	t, err := c.svc.Reports.RecentOrders(ctx, c.sess, customerID, 0)
	if err != nil {
		return err
	}
	c.printTable(t, "No order history.")
	return nil
}

func (c *Console) updateProduct(ctx context.Context) error {
	storeID, err := c.readID("Which store's products would you like to update? (Enter StoreID) ", "store ID")
	if err != nil {
		return err
	}
	name, err := c.readLine("Which product would you like to update? ")
	if err != nil {
		return err
	}
	field, err := c.readLine("Update amount or price? (amount/price) ")
	if err != nil {
		return err
	}
	value, err := c.readLine(fmt.Sprintf("Enter the new %s: ", strings.ToLower(strings.TrimSpace(field))))
	if err != nil {
		return err
	}
	u, err := c.svc.Products.UpdateProduct(ctx, c.sess, storeID, name, field, value)
	if err != nil {
		return err
	}
	c.printf("Product updated (update %d).\n", u.Number)
	return nil
}

func (c *Console) readStore(prompt string) (int64, error) {
	return c.readID(prompt+" (Enter StoreID) ", "store ID")
}

func (c *Console) viewRecentUpdates(ctx context.Context) error {
	storeID, err := c.readStore("Which store's updates would you like to see?")
	if err != nil {
		return err
	}
	t, err := c.svc.Reports.RecentUpdates(ctx, c.sess, storeID, 0)
	if err != nil {
		return err
	}
	c.printTable(t, "No update history.")
	return nil
}

func (c *Console) viewPopularProducts(ctx context.Context) error {
	storeID, err := c.readStore("Which store's 5 most popular products would you like to see?")
	if err != nil {
		return err
	}
	t, err := c.svc.Reports.PopularProducts(ctx, c.sess, storeID, 0)
	if err != nil {
		return err
	}
	c.printTable(t, "No orders for this store yet.")
	return nil
}

func (c *Console) viewPopularCustomers(ctx context.Context) error {
	storeID, err := c.readStore("Which store's 5 most popular customers would you like to see?")
	if err != nil {
		return err
	}
	t, err := c.svc.Reports.PopularCustomers(ctx, c.sess, storeID, 0)
	if err != nil {
		return err
	}
	c.printTable(t, "No customers for this store yet.")
	return nil
}

func (c *Console) requestSupply(ctx context.Context) error {
	storeID, err := c.readStore("Which store would you like to request products for?")
	if err != nil {
		return err
	}
	name, err := c.readLine("Input Product Name: ")
	if err != nil {
		return err
	}
	qty, err := c.readQty("Enter number of units needed: ")
	if err != nil {
		return err
	}
	warehouseID, err := c.readID("Enter warehouse ID: ", "warehouse ID")
	if err != nil {
		return err
	}
	r, err := c.svc.Supply.RequestSupply(ctx, c.sess, storeID, name, qty, warehouseID)
	if err != nil {
		return err
	}
	c.printf("Supply request %d placed; %d x %s added to store %d.\n", r.Number, r.Units, r.ProductName, r.StoreID)
	return nil
}

func (c *Console) recentStoreOrders(ctx context.Context) error {
	storeID, err := c.readStore("Which store's 10 most recent orders would you like to see?")
	if err != nil {
		return err
	}
	t, err := c.svc.Reports.RecentStoreOrders(ctx, c.sess, storeID, 0)
	if err != nil {
		return err
	}
	c.printTable(t, "No order history.")
	return nil
}

func (c *Console) admin(ctx context.Context) error {
	if !c.sess.IsAdmin() {
		return services.ErrDenied
	}
	what, err := c.readLine("Which would you like to update(user/product)? ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(what)) {
	case "user":
		return c.editUser(ctx)
	case "product":
		return c.updateProduct(ctx)
	default:
		c.printf("Unknown choice\n")
		return nil
	}
}

func (c *Console) editUser(ctx context.Context) error {
	userID, err := c.readID("Which user would you like to edit? (Enter UserID) ", "user ID")
	if err != nil {
		return err
	}
	field, err := c.readLine("What would you like to edit about them?(" + strings.Join(services.UserFields, "/") + ") ")
	if err != nil {
		return err
	}
	field = strings.ToLower(strings.TrimSpace(field))
	prompt := fmt.Sprintf("What would you like their new %s to be? ", field)
	var value string
	if field == "password" {
		value, err = c.readSecret(prompt)
	} else {
		value, err = c.readLine(prompt)
	}
	if err != nil {
		return err
	}
	if err := c.svc.Admin.EditUser(ctx, c.sess, userID, field, value); err != nil {
		return err
	}
	c.printf("User %d updated.\n", userID)
	if userID != c.sess.UserID {
		return nil
	}
	if field == "id" {
		userID, _ = validate.ID(value)
	}
	sess, err := c.svc.Auth.Refresh(ctx, userID)
	if err != nil {
		c.sess = domain.Session{}
		return err
	}
	c.sess = sess
	return nil
}
