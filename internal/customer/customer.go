// Package customer is the shop's customer directory. Customers carry the
// loyalty balance credited when their orders are closed.
package customer

import (
	"fmt"
	"strings"

	"github.com/jcmexdev/threewheels-sales/internal/pkg/sequence"
)

// Kind distinguishes private customers from companies.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindCompany    Kind = "company"
)

// Gender of an individual customer.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// Customer is a directory entry. Only the loyalty balance is mutated by
// the order core.
type Customer struct {
	reference     int
	name          string
	address       string
	loyaltyPoints int
	kind          Kind

	// individual
	firstName string
	gender    Gender

	// company
	contact string
}

func (c *Customer) Reference() int     { return c.reference }
func (c *Customer) Name() string       { return c.name }
func (c *Customer) Address() string    { return c.address }
func (c *Customer) Kind() Kind         { return c.kind }
func (c *Customer) FirstName() string  { return c.firstName }
func (c *Customer) Gender() Gender     { return c.gender }
func (c *Customer) Contact() string    { return c.contact }
func (c *Customer) LoyaltyPoints() int { return c.loyaltyPoints }

// SetLoyaltyPoints replaces the balance; negative values become 0.
func (c *Customer) SetLoyaltyPoints(points int) {
	c.loyaltyPoints = max(points, 0)
}

// Discount returns the loyalty discount rate in percent.
func (c *Customer) Discount() int {
	switch {
	case c.loyaltyPoints >= 1000:
		return 15
	case c.loyaltyPoints >= 500:
		return 10
	case c.loyaltyPoints >= 100:
		return 5
	default:
		return 0
	}
}

// SameCustomer compares customers by reference.
func SameCustomer(a, b *Customer) bool {
	if a == nil || b == nil {
		return false
	}
	return a.reference == b.reference
}

func (c *Customer) String() string {
	var sb strings.Builder
	sb.WriteString("Customer\n")
	fmt.Fprintf(&sb, "Reference:      %d\n", c.reference)
	fmt.Fprintf(&sb, "Loyalty points: %d\n", c.loyaltyPoints)
	fmt.Fprintf(&sb, "Name:           %s\n", c.name)
	fmt.Fprintf(&sb, "Address:        %s", c.address)
	switch c.kind {
	case KindIndividual:
		fmt.Fprintf(&sb, "\nFirst name:     %s\nGender:         %s", c.firstName, c.gender)
	case KindCompany:
		fmt.Fprintf(&sb, "\nContact:        %s", c.contact)
	}
	return sb.String()
}

// Factory creates customers with sequential references.
type Factory struct {
	refs *sequence.Generator
}

func NewFactory() *Factory {
	return &Factory{refs: sequence.New(0)}
}

// NewIndividual creates a private customer.
func (f *Factory) NewIndividual(name, address string, points int, firstName string, gender Gender) *Customer {
	c := f.newCustomer(KindIndividual, name, address, points)
	c.firstName = firstName
	c.gender = gender
	return c
}

// NewCompany creates a business customer reached through contact.
func (f *Factory) NewCompany(name, address string, points int, contact string) *Customer {
	c := f.newCustomer(KindCompany, name, address, points)
	c.contact = contact
	return c
}

func (f *Factory) newCustomer(kind Kind, name, address string, points int) *Customer {
	c := &Customer{
		reference: f.refs.Next(),
		name:      name,
		address:   address,
		kind:      kind,
	}
	c.SetLoyaltyPoints(points)
	return c
}
