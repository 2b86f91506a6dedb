package customer

import "slices"

// DirectoryCapacity is the maximum number of customers in a Directory.
const DirectoryCapacity = 25

// Directory is a bounded, ordered set of customers.
type Directory struct {
	name      string
	customers []*Customer
}

func NewDirectory(name string) *Directory {
	return &Directory{
		name:      name,
		customers: make([]*Customer, 0, DirectoryCapacity),
	}
}

func (d *Directory) Name() string  { return d.name }
func (d *Directory) Count() int    { return len(d.customers) }
func (d *Directory) IsEmpty() bool { return len(d.customers) == 0 }
func (d *Directory) IsFull() bool  { return len(d.customers) >= DirectoryCapacity }

func (d *Directory) indexOf(c *Customer) int {
	return slices.IndexFunc(d.customers, func(x *Customer) bool { return SameCustomer(x, c) })
}

// Add appends the customer unless the directory is full or already holds it.
func (d *Directory) Add(c *Customer) {
	if c == nil || d.IsFull() || d.indexOf(c) != -1 {
		return
	}
	d.customers = append(d.customers, c)
}

// Remove drops the customer, keeping the order of the others.
func (d *Directory) Remove(c *Customer) {
	if i := d.indexOf(c); i != -1 {
		d.customers = slices.Delete(d.customers, i, i+1)
	}
}

// FindByReference returns the customer with that reference, or nil.
func (d *Directory) FindByReference(ref int) *Customer {
	for _, c := range d.customers {
		if c.reference == ref {
			return c
		}
	}
	return nil
}

// List returns a copy of all customers.
func (d *Directory) List() []*Customer {
	return slices.Clone(d.customers)
}

// ListByKind returns the customers of one kind. The result is never nil.
func (d *Directory) ListByKind(kind Kind) []*Customer {
	out := make([]*Customer, 0)
	for _, c := range d.customers {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}
