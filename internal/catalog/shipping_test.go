package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingProfile_BillableWeight(t *testing.T) {
	tests := []struct {
		name    string
		profile ShippingProfile
		want    string
	}{
		{"real weight wins", ShippingProfile{HeightCm: 10, WidthCm: 10, DepthCm: 10, WeightKg: price("20")}, "20"},
		{"volumetric weight wins", ShippingProfile{HeightCm: 90, WidthCm: 170, DepthCm: 40, WeightKg: price("16")}, "122.4"},
		{"empty parcel", ShippingProfile{}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.BillableWeightKg()
			assert.True(t, price(tt.want).Equal(got), "BillableWeightKg() = %s, want %s", got, tt.want)
		})
	}
}

func TestShippingProfile_DeliveryCost(t *testing.T) {
	p := ShippingProfile{HeightCm: 10, WidthCm: 10, DepthCm: 10, WeightKg: price("20")}

	// 4.90 + 0.50 * 20
	assert.True(t, price("14.90").Equal(p.ParcelCost()))
	assert.True(t, price("44.70").Equal(p.DeliveryCost(3)))
	assert.True(t, p.DeliveryCost(0).IsZero())
	assert.True(t, p.DeliveryCost(-2).IsZero())
}

func TestWithShipping_NormalizesNegatives(t *testing.T) {
	a := NewFactory().NewArticle("Electric", "E", price("1"), 1,
		WithShipping(ShippingProfile{HeightCm: -1, WidthCm: 2, DepthCm: -3, WeightKg: price("-4")}))
	s, _ := a.Shippable()
	assert.Equal(t, 0, s.PackageHeight())
	assert.Equal(t, 2, s.PackageWidth())
	assert.Equal(t, 0, s.PackageDepth())
	assert.True(t, s.PackageWeightKg().Equal(decimal.Zero))
}
