package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ramadhanarif/storefront-client/internal/auth"
	"github.com/ramadhanarif/storefront-client/internal/cart"
	"github.com/ramadhanarif/storefront-client/internal/catalog"
	"github.com/ramadhanarif/storefront-client/internal/checkout"
	"github.com/ramadhanarif/storefront-client/internal/orders"
	"github.com/ramadhanarif/storefront-client/internal/rest"
	"github.com/ramadhanarif/storefront-client/internal/session"
	"github.com/ramadhanarif/storefront-client/pkg/config"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/shopspring/decimal"
)

const usage = `usage: storefront <command> [args]

  login <email> <password>       sign in and store the session
  register <username> <email> <password>
  logout                         drop the stored session
  products                       list the catalog
  categories                     list categories
  cart                           show the cart
  add <variant-id> <qty>         add a variant to the cart
  inc <line-id>                  increase a cart line
  dec <line-id>                  decrease a cart line (removes at qty 1)
  toggle <line-id>               toggle a line's checkout selection
  remove <line-id>               remove a cart line
  checkout <address> <method>    place an order (method: bank_transfer|cod)
  orders                         list your orders
  order <order-id>               show one order

admin commands (admin account required):
  admin-orders                   list every order
  set-status <order-id> <status> move an order (pending|paid|shipped|completed|cancelled)
  dashboard                      show store totals
  add-category <name>
  rename-category <id> <name>
  del-category <id>
  add-product <name> <category-id> <price> <stock>
  del-product <id>
`

// terminalPrompts answers the cart engine's interaction points on stdin
// and stderr.
type terminalPrompts struct{}

func (terminalPrompts) ConfirmRemoval(_ context.Context, line cart.Line) bool {
	fmt.Fprintf(os.Stderr, "remove line %s (qty %d)? [y/N] ", line.ID, line.Quantity)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func (terminalPrompts) NotifyError(_ context.Context, message string) {
	fmt.Fprintln(os.Stderr, "! "+message)
}

type app struct {
	sessions *session.Manager
	auth     *auth.Service
	catalog  *catalog.Service
	cart     *cart.Engine
	checkout *checkout.Service
	orders   *orders.Service
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	application, err := buildApp(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := application.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

func buildApp(cfg *config.Config, logg *logger.Logger) (*app, error) {
	sessionPath := cfg.API.SessionFile
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}
	store, err := session.NewFileStore(sessionPath)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewManager(store, logg)
	if err != nil {
		return nil, err
	}
	sessions.SubscribeUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "! session expired, please log in again")
	})

	client, err := rest.NewClient(cfg.API, logg, sessions, sessions)
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewService(client, sessions, logg)
	if err != nil {
		return nil, err
	}
	catalogService, err := catalog.NewService(client, logg)
	if err != nil {
		return nil, err
	}
	cartAPI, err := cart.NewAPI(client)
	if err != nil {
		return nil, err
	}
	engine, err := cart.NewEngine(cartAPI, terminalPrompts{}, terminalPrompts{}, logg)
	if err != nil {
		return nil, err
	}
	checkoutService, err := checkout.NewService(cartAPI, client, logg)
	if err != nil {
		return nil, err
	}
	ordersService, err := orders.NewService(client, logg)
	if err != nil {
		return nil, err
	}

	return &app{
		sessions: sessions,
		auth:     authService,
		catalog:  catalogService,
		cart:     engine,
		checkout: checkoutService,
		orders:   ordersService,
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		user, err := a.auth.Login(ctx, auth.Credentials{Email: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (%s)\n", user.Username, user.Role)
		return nil

	case "register":
		if len(args) != 3 {
			return fmt.Errorf("usage: register <username> <email> <password>")
		}
		user, err := a.auth.Register(ctx, auth.Registration{Username: args[0], Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s\n", user.Username)
		return nil

	case "logout":
		return a.auth.Logout(ctx)

	case "products":
		products, err := a.catalog.Products(ctx)
		if err != nil {
			return err
		}
		for _, product := range products {
			fmt.Printf("%s  %-24s Rp%s  (stock %d)\n", product.ID, product.Name, product.EffectivePrice().StringFixed(0), product.EffectiveStock())
			for _, variant := range product.Variants {
				fmt.Printf("    %s  %-20s Rp%s  (stock %d)\n", variant.ID, variant.Attributes.DisplayString(), variant.Price.StringFixed(0), variant.Stock)
			}
		}
		return nil

	case "categories":
		categories, err := a.catalog.Categories(ctx)
		if err != nil {
			return err
		}
		for _, category := range categories {
			fmt.Printf("%s  %s\n", category.ID, category.Name)
		}
		return nil

	case "cart":
		if err := a.cart.Refresh(ctx); err != nil {
			return err
		}
		lines := a.cart.Lines()
		if len(lines) == 0 {
			fmt.Println("cart is empty")
			return nil
		}
		for _, line := range lines {
			mark := " "
			if line.Checked {
				mark = "x"
			}
			fmt.Printf("[%s] %s  qty %d  Rp%s\n", mark, line.ID, line.Quantity, line.Subtotal().StringFixed(0))
		}
		fmt.Printf("checked total: Rp%s (%d items)\n", a.cart.CheckedTotal().StringFixed(0), a.cart.CheckedCount())
		return nil

	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: add <variant-id> <qty>")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		variant, _, err := a.catalog.FindVariant(ctx, args[0])
		if err != nil {
			return err
		}
		return a.cart.Add(ctx, variant.ID, qty, variant.Stock)

	case "inc", "dec", "toggle", "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <line-id>", command)
		}
		if err := a.cart.Refresh(ctx); err != nil {
			return err
		}
		switch command {
		case "inc":
			return a.cart.Increase(ctx, args[0])
		case "dec":
			return a.cart.Decrease(ctx, args[0])
		case "toggle":
			return a.cart.ToggleChecked(ctx, args[0])
		default:
			return a.cart.Remove(ctx, args[0])
		}

	case "checkout":
		if len(args) != 2 {
			return fmt.Errorf("usage: checkout <address> <method>")
		}
		summary, err := a.checkout.BuildSummary(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("checking out %d items, subtotal Rp%s, total Rp%s\n",
			summary.ItemCount, summary.Subtotal.StringFixed(0), summary.Total().StringFixed(0))
		placed, err := a.checkout.PlaceOrder(ctx, summary, checkout.Input{
			ShippingAddress: args[0],
			PaymentMethod:   enums.PaymentMethod(args[1]),
		})
		if err != nil {
			return err
		}
		fmt.Printf("order %s placed (%s)\n", placed.OrderNumber, placed.Status)
		return nil

	case "orders":
		list, err := a.orders.List(ctx)
		if err != nil {
			return err
		}
		for _, order := range list {
			fmt.Printf("%s  %s  %-10s  Rp%s\n", order.ID, order.OrderNumber, order.Status, order.Total.StringFixed(0))
		}
		return nil

	case "order":
		if len(args) != 1 {
			return fmt.Errorf("usage: order <order-id>")
		}
		detail, err := a.orders.Detail(ctx, args[0])
		if err != nil {
			return err
		}
		order := detail.Order
		fmt.Printf("%s  %s [%s]\n", order.OrderNumber, order.Status, order.Status.Tone())
		fmt.Printf("ship to: %s (%s, Rp%s)\n", order.ShippingAddress, order.ShippingMethod, order.ShippingCost.StringFixed(0))
		for _, item := range detail.Items {
			fmt.Printf("  %dx %-24s Rp%s\n", item.Quantity, item.ProductName, item.Price.StringFixed(0))
		}
		fmt.Printf("total: Rp%s\n", order.Total.StringFixed(0))
		return nil

	case "admin-orders":
		list, err := a.orders.AdminList(ctx)
		if err != nil {
			return err
		}
		for _, order := range list {
			fmt.Printf("%s  %s  %-10s  Rp%s\n", order.ID, order.OrderNumber, order.Status, order.Total.StringFixed(0))
		}
		return nil

	case "set-status":
		if len(args) != 2 {
			return fmt.Errorf("usage: set-status <order-id> <status>")
		}
		updated, err := a.orders.AdminUpdateStatus(ctx, args[0], enums.OrderStatus(args[1]))
		if err != nil {
			return err
		}
		fmt.Printf("order %s is now %s\n", updated.OrderNumber, updated.Status)
		return nil

	case "dashboard":
		stats, err := a.catalog.Dashboard(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("products: %d  orders: %d  users: %d  revenue: Rp%s\n",
			stats.TotalProducts, stats.TotalOrders, stats.TotalUsers, stats.TotalRevenue.StringFixed(0))
		return nil

	case "add-category":
		if len(args) != 1 {
			return fmt.Errorf("usage: add-category <name>")
		}
		category, err := a.catalog.CreateCategory(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("category %s created\n", category.ID)
		return nil

	case "rename-category":
		if len(args) != 2 {
			return fmt.Errorf("usage: rename-category <id> <name>")
		}
		_, err := a.catalog.UpdateCategory(ctx, args[0], args[1])
		return err

	case "del-category":
		if len(args) != 1 {
			return fmt.Errorf("usage: del-category <id>")
		}
		return a.catalog.DeleteCategory(ctx, args[0])

	case "add-product":
		if len(args) != 4 {
			return fmt.Errorf("usage: add-product <name> <category-id> <price> <stock>")
		}
		price, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid price %q", args[2])
		}
		stock, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid stock %q", args[3])
		}
		product, err := a.catalog.CreateProduct(ctx, catalog.ProductInput{
			Name:       args[0],
			CategoryID: args[1],
			Variants:   []catalog.VariantInput{{Price: price, Stock: stock}},
		})
		if err != nil {
			return err
		}
		fmt.Printf("product %s created\n", product.ID)
		return nil

	case "del-product":
		if len(args) != 1 {
			return fmt.Errorf("usage: del-product <id>")
		}
		return a.catalog.DeleteProduct(ctx, args[0])

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
