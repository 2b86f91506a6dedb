package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFactory_SequentialReferences(t *testing.T) {
	f := NewFactory()
	a := f.NewArticle("Normal", "Super Tricycle", price("15"), 500)
	b := f.NewArticle("Normal", "Tricycle Sympa", price("50"), 123)
	c := NewFactory().NewArticle("", "Other shop", price("1"), 1)

	assert.Equal(t, 0, a.Reference())
	assert.Equal(t, 1, b.Reference())
	assert.Equal(t, 0, c.Reference(), "each factory owns its sequence")
}

func TestNewArticle_Defaults(t *testing.T) {
	tests := []struct {
		name         string
		category     string
		unitPrice    decimal.Decimal
		stock        int
		wantCategory string
		wantPrice    decimal.Decimal
		wantStock    int
	}{
		{"plain values", "Electric", price("70"), 150, "Electric", price("70"), 150},
		{"missing category", "", price("40"), 100, DefaultCategory, price("40"), 100},
		{"negative price", "Normal", price("-3.5"), 10, "Normal", decimal.Zero, 10},
		{"negative stock", "Normal", price("1"), -7, "Normal", price("1"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewFactory().NewArticle(tt.category, "Tricycle", tt.unitPrice, tt.stock)
			assert.Equal(t, tt.wantCategory, a.Category())
			assert.True(t, tt.wantPrice.Equal(a.UnitPrice()), "price = %s", a.UnitPrice())
			assert.Equal(t, tt.wantStock, a.StockQuantity())
		})
	}
}

func TestArticle_Setters(t *testing.T) {
	a := NewFactory().NewArticle("Normal", "Tricycle", price("10"), 5)

	a.SetUnitPrice(price("12.5"))
	assert.True(t, price("12.5").Equal(a.UnitPrice()))
	a.SetUnitPrice(price("-1"))
	assert.True(t, a.UnitPrice().IsZero())

	a.SetStockQuantity(42)
	assert.Equal(t, 42, a.StockQuantity())
	a.SetStockQuantity(-1)
	assert.Equal(t, 0, a.StockQuantity())
}

func TestArticle_StockAdjustments(t *testing.T) {
	tests := []struct {
		name  string
		start int
		apply func(a *Article)
		want  int
	}{
		{"add", 10, func(a *Article) { a.AddStock(5) }, 15},
		{"add negative ignored", 10, func(a *Article) { a.AddStock(-5) }, 10},
		{"remove", 10, func(a *Article) { a.RemoveStock(4) }, 6},
		{"remove negative ignored", 10, func(a *Article) { a.RemoveStock(-4) }, 10},
		{"remove everything", 10, func(a *Article) { a.RemoveStock(10) }, 0},
		{"remove saturates at zero", 10, func(a *Article) { a.RemoveStock(25) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewFactory().NewArticle("Normal", "Tricycle", price("1"), tt.start)
			tt.apply(a)
			assert.Equal(t, tt.want, a.StockQuantity())
		})
	}
}

func TestArticle_StockNeverNegative(t *testing.T) {
	a := NewFactory().NewArticle("Normal", "Tricycle", price("1"), 3)
	ops := []int{5, -2, 1, -10, 7, 0, -3, 20}
	for _, q := range ops {
		if q >= 0 {
			a.RemoveStock(q)
		} else {
			a.AddStock(-q)
		}
		require.GreaterOrEqual(t, a.StockQuantity(), 0)
	}
}

func TestArticle_IsAvailable(t *testing.T) {
	a := NewFactory().NewArticle("Normal", "Tricycle", price("1"), 1)
	assert.True(t, a.IsAvailable())
	a.RemoveStock(1)
	assert.False(t, a.IsAvailable())
}

func TestSameArticle(t *testing.T) {
	f := NewFactory()
	a := f.NewArticle("Normal", "Tricycle", price("1"), 1)
	b := f.NewArticle("Normal", "Tricycle", price("1"), 1)
	twin := newArticle(a.Reference(), "Other", "Different name", price("99"), 0)

	assert.True(t, SameArticle(a, a))
	assert.True(t, SameArticle(a, twin), "identity is the reference only")
	assert.False(t, SameArticle(a, b))
	assert.False(t, SameArticle(a, nil))
	assert.False(t, SameArticle(nil, nil))
}

func TestArticle_Shippable(t *testing.T) {
	f := NewFactory()
	plain := f.NewArticle("Normal", "Tricycle", price("1"), 1)
	_, ok := plain.Shippable()
	assert.False(t, ok)

	electric := f.NewShippableArticle("Electric", "E-Tricycle", price("400"), 10,
		ShippingProfile{HeightCm: 90, WidthCm: 170, DepthCm: 40, WeightKg: price("16")})
	s, ok := electric.Shippable()
	require.True(t, ok)
	assert.Equal(t, 90, s.PackageHeight())
	assert.Equal(t, 170, s.PackageWidth())
	assert.Equal(t, 40, s.PackageDepth())
	assert.True(t, price("16").Equal(s.PackageWeightKg()))
}

func TestArticle_String(t *testing.T) {
	a := NewFactory().NewArticle("Electric", "Tricycle Doré", price("400"), 10,
		WithShipping(ShippingProfile{HeightCm: 1, WidthCm: 2, DepthCm: 3, WeightKg: price("7")}),
		WithFeatures(Features{WheelSize: 6, Materials: "Carbon"}))

	out := a.String()
	for _, want := range []string{"Reference:      0", "Electric", "Tricycle Doré", "400.00", "10", "1x2x3 cm"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 6, a.Features().WheelSize)
}
