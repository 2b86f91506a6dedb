package httpx

import (
	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/shop"
	"github.com/shopspring/decimal"
)

// Money is encoded as a JSON string ("49.90") by decimal.Decimal.

type CreateArticleRequest struct {
	Category    string                   `json:"category"`
	Designation string                   `json:"designation"`
	UnitPrice   decimal.Decimal          `json:"unit_price"`
	Stock       int                      `json:"stock"`
	Shipping    *catalog.ShippingProfile `json:"shipping,omitempty"`
	Features    catalog.Features         `json:"features"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type ArticleResponse struct {
	Reference     int                      `json:"reference"`
	Category      string                   `json:"category"`
	Designation   string                   `json:"designation"`
	UnitPrice     decimal.Decimal          `json:"unit_price"`
	StockQuantity int                      `json:"stock_quantity"`
	Available     bool                     `json:"available"`
	Shipping      *catalog.ShippingProfile `json:"shipping,omitempty"`
	ParcelCost    *decimal.Decimal         `json:"parcel_cost,omitempty"`
	Features      *catalog.Features        `json:"features,omitempty"`
}

type CreateCustomerRequest struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	LoyaltyPoints int    `json:"loyalty_points"`
	FirstName     string `json:"first_name,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Contact       string `json:"contact,omitempty"`
}

type CustomerResponse struct {
	Reference     int    `json:"reference"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Discount      int    `json:"discount_percent"`
	FirstName     string `json:"first_name,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Contact       string `json:"contact,omitempty"`
}

type OpenOrderRequest struct {
	CustomerReference int `json:"customer_reference"`
}

type OrderLineRequest struct {
	ArticleReference int `json:"article_reference"`
	Quantity         int `json:"quantity"`
}

type CloseOrderRequest struct {
	WithDelivery bool `json:"with_delivery"`
}

type OrderLineResponse struct {
	ArticleReference     int             `json:"article_reference"`
	Designation          string          `json:"designation"`
	Quantity             int             `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	SubtotalWithDelivery decimal.Decimal `json:"subtotal_with_delivery"`
}

type OrderResponse struct {
	Reference          int                 `json:"reference"`
	CustomerReference  int                 `json:"customer_reference"`
	Status             string              `json:"status"`
	Lines              []OrderLineResponse `json:"lines"`
	Amount             decimal.Decimal     `json:"amount"`
	AmountWithDelivery decimal.Decimal     `json:"amount_with_delivery"`
}

type CloseOrderResponse struct {
	Order          OrderResponse `json:"order"`
	PointsCredited int           `json:"points_credited"`
	AlreadyClosed  bool          `json:"already_closed,omitempty"`
}

type CheckoutRequest struct {
	CustomerReference int                `json:"customer_reference"`
	Items             []OrderLineRequest `json:"items"`
	WithDelivery      bool               `json:"with_delivery"`
}

type CheckoutResponse struct {
	CheckoutID     string        `json:"checkout_id,omitempty"`
	Order          OrderResponse `json:"order"`
	PointsCredited int           `json:"points_credited"`
	Replayed       bool          `json:"replayed,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapArticle(a shop.ArticleView) ArticleResponse {
	out := ArticleResponse{
		Reference:     a.Reference,
		Category:      a.Category,
		Designation:   a.Designation,
		UnitPrice:     a.UnitPrice.Round(2),
		StockQuantity: a.StockQuantity,
		Available:     a.Available,
		Shipping:      a.Shipping,
	}
	if a.Shipping != nil {
		cost := a.ParcelCost
		out.ParcelCost = &cost
	}
	if !a.Features.IsZero() {
		features := a.Features
		out.Features = &features
	}
	return out
}

func mapArticles(in []shop.ArticleView) []ArticleResponse {
	out := make([]ArticleResponse, len(in))
	for i, a := range in {
		out[i] = mapArticle(a)
	}
	return out
}

func mapCustomer(c shop.CustomerView) CustomerResponse {
	return CustomerResponse{
		Reference:     c.Reference,
		Kind:          string(c.Kind),
		Name:          c.Name,
		Address:       c.Address,
		LoyaltyPoints: c.LoyaltyPoints,
		Discount:      c.Discount,
		FirstName:     c.FirstName,
		Gender:        string(c.Gender),
		Contact:       c.Contact,
	}
}

func mapCustomers(in []shop.CustomerView) []CustomerResponse {
	out := make([]CustomerResponse, len(in))
	for i, c := range in {
		out[i] = mapCustomer(c)
	}
	return out
}

func mapOrder(o shop.OrderView) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ArticleReference:     l.ArticleReference,
			Designation:          l.Designation,
			Quantity:             l.Quantity,
			UnitPrice:            l.UnitPrice,
			Subtotal:             l.Subtotal,
			SubtotalWithDelivery: l.SubtotalWithDelivery,
		}
	}
	return OrderResponse{
		Reference:          o.Reference,
		CustomerReference:  o.CustomerReference,
		Status:             string(o.Status),
		Lines:              lines,
		Amount:             o.Amount,
		AmountWithDelivery: o.AmountWithDelivery,
	}
}
