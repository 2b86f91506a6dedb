// Package order implements purchase orders: bounded sets of order lines
// that reserve stock while open and credit the customer's loyalty balance
// once closed.
package order

import (
	"fmt"
	"strings"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/shopspring/decimal"
)

// LineCapacity is the maximum number of lines in an order.
const LineCapacity = 10

// PointsDivisor is the amount spent per loyalty point earned.
var PointsDivisor = decimal.NewFromInt(10)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Customer is the loyalty account an order credits on closure.
type Customer interface {
	Reference() int
	LoyaltyPoints() int
	SetLoyaltyPoints(points int)
}

// Order is a customer's purchase. It starts open; Close moves it to the
// closed state for good, after which its lines can no longer change.
type Order struct {
	reference int
	customer  Customer
	lines     []*Line
	status    Status
}

// New returns an open, empty order. Callers normally go through Book.Open,
// which owns the order reference sequence.
func New(reference int, customer Customer) *Order {
	return &Order{
		reference: reference,
		customer:  customer,
		lines:     make([]*Line, 0, LineCapacity),
		status:    StatusOpen,
	}
}

func (o *Order) Reference() int     { return o.reference }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Status() Status     { return o.status }
func (o *Order) IsClosed() bool     { return o.status == StatusClosed }
func (o *Order) IsFull() bool       { return len(o.lines) >= LineCapacity }
func (o *Order) IsEmpty() bool      { return len(o.lines) == 0 }
func (o *Order) LineCount() int     { return len(o.lines) }

func (o *Order) findLine(articleRef int) (int, *Line) {
	for i, l := range o.lines {
		if l.article.Reference() == articleRef {
			return i, l
		}
	}
	return -1, nil
}

// Order adds quantity units of article to the order, merging with the
// existing line for that article. It reports false and changes nothing when
// the order is closed or full, the quantity is not positive, or the stock
// cannot cover the whole quantity.
func (o *Order) Order(article *catalog.Article, quantity int) bool {
	if o.IsClosed() || o.IsFull() || article == nil || quantity <= 0 {
		return false
	}
	if article.StockQuantity() < quantity {
		return false
	}
	if _, l := o.findLine(article.Reference()); l != nil {
		l.AddQuantity(quantity)
	} else {
		o.lines = append(o.lines, NewLine(article, quantity))
	}
	return true
}

// RemoveLine drops the line for articleRef and gives its units back to the
// article's stock. It reports false when the order is closed or has no such
// line.
func (o *Order) RemoveLine(articleRef int) bool {
	if o.IsClosed() {
		return false
	}
	i, l := o.findLine(articleRef)
	if l == nil {
		return false
	}
	l.article.AddStock(l.quantity)
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
	return true
}

// Amount is the sum of line subtotals.
func (o *Order) Amount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// AmountWithDelivery is the sum of line subtotals including delivery.
func (o *Order) AmountWithDelivery() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.SubtotalWithDelivery())
	}
	return total
}

// Close closes the order and credits floor(total/10) loyalty points to the
// customer, total including delivery when withDelivery is set. Closing an
// already closed order does nothing. It returns the points credited.
func (o *Order) Close(withDelivery bool) int {
	if o.IsClosed() {
		return 0
	}
	o.status = StatusClosed

	total := o.Amount()
	if withDelivery {
		total = o.AmountWithDelivery()
	}
	points := int(total.Div(PointsDivisor).Floor().IntPart())
	if o.customer != nil {
		o.customer.SetLoyaltyPoints(o.customer.LoyaltyPoints() + points)
	}
	return points
}

// Article returns the article of line i, or nil when i is out of range.
func (o *Order) Article(i int) *catalog.Article {
	if i < 0 || i >= len(o.lines) {
		return nil
	}
	return o.lines[i].article
}

// Quantity returns the quantity of line i, or 0 when i is out of range.
func (o *Order) Quantity(i int) int {
	if i < 0 || i >= len(o.lines) {
		return 0
	}
	return o.lines[i].quantity
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) String() string {
	var sb strings.Builder
	state := "open"
	if o.IsClosed() {
		state = "closed"
	}
	fmt.Fprintf(&sb, "Order %d (%s)\n", o.reference, state)
	if s, ok := o.customer.(fmt.Stringer); ok {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	sb.WriteString("Ordered articles\n")
	for _, l := range o.lines {
		sb.WriteString(l.String())
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Amount without delivery: %s\n", o.Amount().StringFixed(2))
	fmt.Fprintf(&sb, "Amount with delivery:    %s", o.AmountWithDelivery().StringFixed(2))
	return sb.String()
}
