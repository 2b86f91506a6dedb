package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Shippable is the delivery capability of an article: its package
// dimensions and the cost of shipping a number of units.
type Shippable interface {
	PackageHeight() int
	PackageWidth() int
	PackageDepth() int
	PackageWeightKg() decimal.Decimal
	DeliveryCost(quantity int) decimal.Decimal
}

var (
	// ParcelBaseFee is charged for every parcel shipped.
	ParcelBaseFee = decimal.RequireFromString("4.90")
	// ParcelRatePerKg is charged per billable kilogram.
	ParcelRatePerKg = decimal.RequireFromString("0.50")
	// VolumetricDivisor converts a volume in cm³ into a weight in kg.
	VolumetricDivisor = decimal.NewFromInt(5000)
)

// ShippingProfile describes the parcel one unit of an article ships in.
// Dimensions are in centimetres.
type ShippingProfile struct {
	HeightCm int             `json:"height_cm" yaml:"height_cm"`
	WidthCm  int             `json:"width_cm" yaml:"width_cm"`
	DepthCm  int             `json:"depth_cm" yaml:"depth_cm"`
	WeightKg decimal.Decimal `json:"weight_kg" yaml:"weight_kg"`
}

var _ Shippable = ShippingProfile{}

func (p ShippingProfile) PackageHeight() int               { return p.HeightCm }
func (p ShippingProfile) PackageWidth() int                { return p.WidthCm }
func (p ShippingProfile) PackageDepth() int                { return p.DepthCm }
func (p ShippingProfile) PackageWeightKg() decimal.Decimal { return p.WeightKg }

// BillableWeightKg is the larger of the real and the volumetric weight.
func (p ShippingProfile) BillableWeightKg() decimal.Decimal {
	volume := decimal.NewFromInt(int64(p.HeightCm) * int64(p.WidthCm) * int64(p.DepthCm))
	volumetric := volume.Div(VolumetricDivisor)
	return decimal.Max(p.WeightKg, volumetric)
}

// ParcelCost is the cost of shipping a single parcel.
func (p ShippingProfile) ParcelCost() decimal.Decimal {
	return ParcelBaseFee.Add(ParcelRatePerKg.Mul(p.BillableWeightKg())).Round(2)
}

// DeliveryCost ships one parcel per unit.
func (p ShippingProfile) DeliveryCost(quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return p.ParcelCost().Mul(decimal.NewFromInt(int64(quantity)))
}

func (p ShippingProfile) normalized() ShippingProfile {
	p.HeightCm = max(p.HeightCm, 0)
	p.WidthCm = max(p.WidthCm, 0)
	p.DepthCm = max(p.DepthCm, 0)
	if p.WeightKg.IsNegative() {
		p.WeightKg = decimal.Zero
	}
	return p
}

func (p ShippingProfile) String() string {
	return fmt.Sprintf("Package:        %dx%dx%d cm, %s kg\nParcel cost:    %s",
		p.HeightCm, p.WidthCm, p.DepthCm, p.WeightKg.String(), p.ParcelCost().StringFixed(2))
}
