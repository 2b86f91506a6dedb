package order

import (
	"slices"

	"github.com/jcmexdev/threewheels-sales/internal/pkg/sequence"
)

// Book keeps every order of the shop and hands out order references from
// its own sequence, independent from article references.
type Book struct {
	refs   *sequence.Generator
	orders []*Order
}

func NewBook() *Book {
	return &Book{refs: sequence.New(0)}
}

// Open creates and records a new open order for customer.
func (b *Book) Open(customer Customer) *Order {
	o := New(b.refs.Next(), customer)
	b.orders = append(b.orders, o)
	return o
}

// Find returns the order with that reference, or nil.
func (b *Book) Find(ref int) *Order {
	for _, o := range b.orders {
		if o.reference == ref {
			return o
		}
	}
	return nil
}

// List returns all orders in creation order.
func (b *Book) List() []*Order {
	return slices.Clone(b.orders)
}

// ForCustomer returns the orders placed by the customer with that reference.
func (b *Book) ForCustomer(customerRef int) []*Order {
	out := make([]*Order, 0)
	for _, o := range b.orders {
		if o.customer != nil && o.customer.Reference() == customerRef {
			out = append(out, o)
		}
	}
	return out
}

// Discard forgets an open order that has no lines, as left behind by an
// aborted checkout. Closed or non-empty orders are kept.
func (b *Book) Discard(ref int) bool {
	i := slices.IndexFunc(b.orders, func(o *Order) bool { return o.reference == ref })
	if i == -1 {
		return false
	}
	if o := b.orders[i]; o.IsClosed() || !o.IsEmpty() {
		return false
	}
	b.orders = slices.Delete(b.orders, i, i+1)
	return true
}
