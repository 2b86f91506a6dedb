package catalog

import (
	"github.com/jcmexdev/threewheels-sales/internal/pkg/sequence"
	"github.com/shopspring/decimal"
)

// Factory creates articles with sequential references.
type Factory struct {
	refs *sequence.Generator
}

// NewFactory returns a factory whose first article gets reference 0.
func NewFactory() *Factory {
	return &Factory{refs: sequence.New(0)}
}

// NewArticle creates an article. An empty category becomes DefaultCategory;
// negative price or stock are clamped to zero.
func (f *Factory) NewArticle(category, designation string, unitPrice decimal.Decimal, stock int, opts ...Option) *Article {
	return newArticle(f.refs.Next(), category, designation, unitPrice, stock, opts...)
}

// NewShippableArticle creates an article carrying a shipping profile.
func (f *Factory) NewShippableArticle(category, designation string, unitPrice decimal.Decimal, stock int, profile ShippingProfile, opts ...Option) *Article {
	return f.NewArticle(category, designation, unitPrice, stock, append([]Option{WithShipping(profile)}, opts...)...)
}
