// Package sequence hands out the sequential references used to identify
// articles, customers and orders. Each entity kind owns its own Generator so
// references are unique per kind and start at 0.
package sequence

// Generator returns consecutive integers starting at its initial value.
// It is not safe for concurrent use; owners serialise access.
type Generator struct {
	next int
}

// New returns a generator whose first reference is start.
func New(start int) *Generator {
	if start < 0 {
		start = 0
	}
	return &Generator{next: start}
}

// Next returns the next reference and advances the generator.
func (g *Generator) Next() int {
	ref := g.next
	g.next++
	return ref
}
