// Package seed loads a starting catalogue and customer book from YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/customer"
	"github.com/jcmexdev/threewheels-sales/internal/shop"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

type File struct {
	Stock     string     `yaml:"stock"`
	Directory string     `yaml:"directory"`
	Articles  []Article  `yaml:"articles"`
	Customers []Customer `yaml:"customers"`
}

type Article struct {
	Category    string                   `yaml:"category"`
	Designation string                   `yaml:"designation"`
	UnitPrice   decimal.Decimal          `yaml:"unit_price"`
	Stock       int                      `yaml:"stock"`
	Shipping    *catalog.ShippingProfile `yaml:"shipping,omitempty"`
	Features    catalog.Features         `yaml:"features,omitempty"`
}

type Customer struct {
	Kind          customer.Kind   `yaml:"kind"`
	Name          string          `yaml:"name"`
	Address       string          `yaml:"address"`
	LoyaltyPoints int             `yaml:"loyalty_points"`
	FirstName     string          `yaml:"first_name,omitempty"`
	Gender        customer.Gender `yaml:"gender,omitempty"`
	Contact       string          `yaml:"contact,omitempty"`
}

// Default returns the embedded ThreeWheels seed.
func Default() (*File, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file. An empty path selects the embedded seed.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	return &f, nil
}

// Target receives seeded articles and customers.
type Target interface {
	CreateArticle(ctx context.Context, in shop.NewArticle) (shop.ArticleView, error)
	RegisterCustomer(ctx context.Context, in shop.NewCustomer) (shop.CustomerView, error)
}

// Apply creates every article and customer of f in file order and stops at
// the first rejected entry.
func Apply(ctx context.Context, t Target, f *File) error {
	for i, a := range f.Articles {
		_, err := t.CreateArticle(ctx, shop.NewArticle{
			Category:    a.Category,
			Designation: a.Designation,
			UnitPrice:   a.UnitPrice,
			Stock:       a.Stock,
			Shipping:    a.Shipping,
			Features:    a.Features,
		})
		if err != nil {
			return fmt.Errorf("seed: article #%d %q: %w", i, a.Designation, err)
		}
	}
	for i, c := range f.Customers {
		_, err := t.RegisterCustomer(ctx, shop.NewCustomer{
			Kind:          c.Kind,
			Name:          c.Name,
			Address:       c.Address,
			LoyaltyPoints: c.LoyaltyPoints,
			FirstName:     c.FirstName,
			Gender:        c.Gender,
			Contact:       c.Contact,
		})
		if err != nil {
			return fmt.Errorf("seed: customer #%d %q: %w", i, c.Name, err)
		}
	}
	slog.InfoContext(ctx, "seed applied", "articles", len(f.Articles), "customers", len(f.Customers))
	return nil
}
