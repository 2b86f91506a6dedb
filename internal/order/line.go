package order

import (
	"fmt"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line binds one article to the quantity reserved for it. The article is
// shared with the stock, so reserving units mutates its stock directly.
type Line struct {
	article  *catalog.Article
	quantity int
}

// NewLine reserves up to quantity units of article. Requests above the
// available stock are truncated to what is available.
func NewLine(article *catalog.Article, quantity int) *Line {
	l := &Line{article: article}
	l.AddQuantity(quantity)
	return l
}

// AddQuantity reserves up to delta more units, with the same truncation
// rule as NewLine.
func (l *Line) AddQuantity(delta int) {
	reserved := min(delta, l.article.StockQuantity())
	if reserved <= 0 {
		return
	}
	l.quantity += reserved
	l.article.RemoveStock(reserved)
}

func (l *Line) Article() *catalog.Article { return l.article }
func (l *Line) Quantity() int             { return l.quantity }

// Subtotal is quantity times unit price.
func (l *Line) Subtotal() decimal.Decimal {
	return l.article.UnitPrice().Mul(decimal.NewFromInt(int64(l.quantity)))
}

// SubtotalWithDelivery adds the delivery cost when the article ships.
func (l *Line) SubtotalWithDelivery() decimal.Decimal {
	total := l.Subtotal()
	if s, ok := l.article.Shippable(); ok {
		total = total.Add(s.DeliveryCost(l.quantity))
	}
	return total
}

func (l *Line) String() string {
	return fmt.Sprintf("Ref. %d (%s) | Qty: %d | Unit price: %s | Amount: %s | With delivery: %s",
		l.article.Reference(), l.article.Designation(), l.quantity,
		l.article.UnitPrice().StringFixed(2), l.Subtotal().StringFixed(2), l.SubtotalWithDelivery().StringFixed(2))
}
