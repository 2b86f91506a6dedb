package shop

import (
	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/customer"
	"github.com/jcmexdev/threewheels-sales/internal/order"
	"github.com/shopspring/decimal"
)

// Views are copies taken under the service lock. They never alias the
// articles, customers or orders held by the service.

type ArticleView struct {
	Reference     int
	Category      string
	Designation   string
	UnitPrice     decimal.Decimal
	StockQuantity int
	Available     bool
	Shipping      *catalog.ShippingProfile
	ParcelCost    decimal.Decimal
	Features      catalog.Features
}

type CustomerView struct {
	Reference     int
	Kind          customer.Kind
	Name          string
	Address       string
	LoyaltyPoints int
	Discount      int
	FirstName     string
	Gender        customer.Gender
	Contact       string
}

type LineView struct {
	ArticleReference     int
	Designation          string
	Quantity             int
	UnitPrice            decimal.Decimal
	Subtotal             decimal.Decimal
	SubtotalWithDelivery decimal.Decimal
}

type OrderView struct {
	Reference          int
	CustomerReference  int
	Status             order.Status
	Lines              []LineView
	Amount             decimal.Decimal
	AmountWithDelivery decimal.Decimal
	Summary            string
}

func articleView(a *catalog.Article) ArticleView {
	v := ArticleView{
		Reference:     a.Reference(),
		Category:      a.Category(),
		Designation:   a.Designation(),
		UnitPrice:     a.UnitPrice(),
		StockQuantity: a.StockQuantity(),
		Available:     a.IsAvailable(),
		Features:      a.Features(),
	}
	if s, ok := a.Shippable(); ok {
		profile := catalog.ShippingProfile{
			HeightCm: s.PackageHeight(),
			WidthCm:  s.PackageWidth(),
			DepthCm:  s.PackageDepth(),
			WeightKg: s.PackageWeightKg(),
		}
		v.Shipping = &profile
		v.ParcelCost = s.DeliveryCost(1)
	}
	return v
}

func customerView(c *customer.Customer) CustomerView {
	return CustomerView{
		Reference:     c.Reference(),
		Kind:          c.Kind(),
		Name:          c.Name(),
		Address:       c.Address(),
		LoyaltyPoints: c.LoyaltyPoints(),
		Discount:      c.Discount(),
		FirstName:     c.FirstName(),
		Gender:        c.Gender(),
		Contact:       c.Contact(),
	}
}

func orderView(o *order.Order) OrderView {
	v := OrderView{
		Reference:          o.Reference(),
		CustomerReference:  -1,
		Status:             o.Status(),
		Amount:             o.Amount(),
		AmountWithDelivery: o.AmountWithDelivery(),
		Summary:            o.String(),
	}
	if c := o.Customer(); c != nil {
		v.CustomerReference = c.Reference()
	}
	lines := o.Lines()
	v.Lines = make([]LineView, 0, len(lines))
	for _, l := range lines {
		v.Lines = append(v.Lines, LineView{
			ArticleReference:     l.Article().Reference(),
			Designation:          l.Article().Designation(),
			Quantity:             l.Quantity(),
			UnitPrice:            l.Article().UnitPrice(),
			Subtotal:             l.Subtotal(),
			SubtotalWithDelivery: l.SubtotalWithDelivery(),
		})
	}
	return v
}

func articleViews(articles []*catalog.Article) []ArticleView {
	out := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleView(a))
	}
	return out
}

func customerViews(customers []*customer.Customer) []CustomerView {
	out := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerView(c))
	}
	return out
}
