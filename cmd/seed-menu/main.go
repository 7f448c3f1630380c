// Command seed-menu runs the migrations and loads the sample menu, or a
// caller-supplied menu JSON file, into the catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/resto-billing/internal/repository"
)

type menuItemJSON struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}

// defaultMenu is the sample catalog used when no file is given.
var defaultMenu = []menuItemJSON{
	{Name: "Margherita Pizza", Category: "Pizza", UnitPrice: decimal.RequireFromString("299.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Pepperoni Pizza", Category: "Pizza", UnitPrice: decimal.RequireFromString("349.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Chicken Burger", Category: "Burger", UnitPrice: decimal.RequireFromString("199.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Veg Burger", Category: "Burger", UnitPrice: decimal.RequireFromString("149.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Pasta Carbonara", Category: "Pasta", UnitPrice: decimal.RequireFromString("249.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Caesar Salad", Category: "Salad", UnitPrice: decimal.RequireFromString("179.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Chicken Wings", Category: "Appetizer", UnitPrice: decimal.RequireFromString("299.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "French Fries", Category: "Appetizer", UnitPrice: decimal.RequireFromString("99.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Coca Cola", Category: "Beverage", UnitPrice: decimal.RequireFromString("49.0"), TaxRate: decimal.RequireFromString("5.0")},
	{Name: "Coffee", Category: "Beverage", UnitPrice: decimal.RequireFromString("79.0"), TaxRate: decimal.RequireFromString("5.0")},
}

func main() {
	var (
		databaseURL string
		menuFile    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&menuFile, "menu-file", "", "path to a menu JSON file (default: built-in sample menu)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, menuFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, menuFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	items := defaultMenu
	if menuFile != "" {
		items, err = readMenuFile(menuFile)
		if err != nil {
			return errors.Wrap(err, "read menu file")
		}
	}

	return seedMenu(ctx, pool, items)
}

func readMenuFile(path string) ([]menuItemJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	var items []menuItemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "parse menu JSON")
	}
	return items, nil
}

const upsertMenuSQL = `INSERT INTO menu (name, category, price, tax_rate)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE
	SET category = EXCLUDED.category, price = EXCLUDED.price, tax_rate = EXCLUDED.tax_rate`

func seedMenu(ctx context.Context, pool *pgxpool.Pool, items []menuItemJSON) error {
	slog.Info("upserting menu items", slog.Int("count", len(items)))

	for _, it := range items {
		if _, err := pool.Exec(ctx, upsertMenuSQL,
			it.Name, it.Category, it.UnitPrice, it.TaxRate,
		); err != nil {
			return errors.Wrapf(err, "upsert menu item %s", it.Name)
		}

		slog.Info("upserted menu item", slog.String("name", it.Name), slog.String("category", it.Category))
	}

	return nil
}
