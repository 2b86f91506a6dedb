// Package catalog holds the sellable articles of the shop and the bounded
// Stock that contains them.
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to articles created without a category.
const DefaultCategory = "None"

// Features are descriptive attributes carried by some article kinds.
// They take no part in pricing or identity.
type Features struct {
	WheelSize   int    `json:"wheel_size,omitempty" yaml:"wheel_size,omitempty"`
	Materials   string `json:"materials,omitempty" yaml:"materials,omitempty"`
	Lighting    bool   `json:"lighting,omitempty" yaml:"lighting,omitempty"`
	BatterySize int    `json:"battery_size,omitempty" yaml:"battery_size,omitempty"`
	Fuel        string `json:"fuel,omitempty" yaml:"fuel,omitempty"`
}

// IsZero reports whether no feature is set.
func (f Features) IsZero() bool {
	return f == Features{}
}

// Article is one product sold by the unit. Its reference is assigned once by
// a Factory and never changes. Articles are shared by pointer between the
// Stock and every order line that reserves units of them.
type Article struct {
	reference     int
	category      string
	designation   string
	unitPrice     decimal.Decimal
	stockQuantity int
	shipping      *ShippingProfile
	features      Features
}

// Option customises an article at creation time.
type Option func(*Article)

// WithShipping gives the article a package profile, making it shippable.
func WithShipping(p ShippingProfile) Option {
	return func(a *Article) {
		profile := p.normalized()
		a.shipping = &profile
	}
}

// WithFeatures attaches descriptive features to the article.
func WithFeatures(f Features) Option {
	return func(a *Article) {
		a.features = f
	}
}

func newArticle(reference int, category, designation string, unitPrice decimal.Decimal, stock int, opts ...Option) *Article {
	if category == "" {
		category = DefaultCategory
	}
	a := &Article{
		reference:   reference,
		category:    category,
		designation: designation,
	}
	a.SetUnitPrice(unitPrice)
	a.SetStockQuantity(stock)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Article) Reference() int             { return a.reference }
func (a *Article) Category() string           { return a.category }
func (a *Article) Designation() string        { return a.designation }
func (a *Article) UnitPrice() decimal.Decimal { return a.unitPrice }
func (a *Article) StockQuantity() int         { return a.stockQuantity }
func (a *Article) Features() Features         { return a.features }

// SetUnitPrice sets the price, clamping negative values to zero.
func (a *Article) SetUnitPrice(price decimal.Decimal) {
	if price.IsNegative() {
		price = decimal.Zero
	}
	a.unitPrice = price
}

// SetStockQuantity sets the stock, clamping negative values to zero.
func (a *Article) SetStockQuantity(quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	a.stockQuantity = quantity
}

// AddStock increments the stock. Negative quantities are ignored.
func (a *Article) AddStock(quantity int) {
	if quantity < 0 {
		return
	}
	a.stockQuantity += quantity
}

// RemoveStock decrements the stock by at most what is available.
// Negative quantities are ignored; removing more than the stock leaves 0.
func (a *Article) RemoveStock(quantity int) {
	if quantity < 0 {
		return
	}
	a.stockQuantity -= min(quantity, a.stockQuantity)
}

// IsAvailable reports whether at least one unit is in stock.
func (a *Article) IsAvailable() bool {
	return a.stockQuantity > 0
}

// Shippable returns the delivery capability of the article, if it has one.
func (a *Article) Shippable() (Shippable, bool) {
	if a.shipping == nil {
		return nil, false
	}
	return *a.shipping, true
}

// SameArticle reports whether a and b identify the same article. The
// reference is the only identity key.
func SameArticle(a, b *Article) bool {
	if a == nil || b == nil {
		return false
	}
	return a.reference == b.reference
}

// String renders a multi-line summary for diagnostics.
func (a *Article) String() string {
	var sb strings.Builder
	sb.WriteString("Article\n")
	fmt.Fprintf(&sb, "Reference:      %d\n", a.reference)
	fmt.Fprintf(&sb, "Category:       %s\n", a.category)
	fmt.Fprintf(&sb, "Designation:    %s\n", a.designation)
	fmt.Fprintf(&sb, "Unit price:     %s\n", a.unitPrice.StringFixed(2))
	fmt.Fprintf(&sb, "Stock quantity: %d", a.stockQuantity)
	if a.shipping != nil {
		sb.WriteString("\n")
		sb.WriteString(a.shipping.String())
	}
	return sb.String()
}
