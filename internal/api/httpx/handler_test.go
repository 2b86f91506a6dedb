package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jcmexdev/threewheels-sales/internal/customer"
	"github.com/jcmexdev/threewheels-sales/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router  http.Handler
	shop    *shop.Service
	article shop.ArticleView
	buyer   shop.CustomerView
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	svc := shop.New("Stock de tricycle 2022", "Carnet Clients 2022")

	a, err := svc.CreateArticle(ctx, shop.NewArticle{
		Category:    "Normal",
		Designation: "Tricycle Sympa",
		UnitPrice:   decimal.NewFromInt(50),
		Stock:       123,
	})
	require.NoError(t, err)
	c, err := svc.RegisterCustomer(ctx, shop.NewCustomer{
		Kind:    customer.KindCompany,
		Name:    "Apex and Co.",
		Contact: "Joseph Mie",
	})
	require.NoError(t, err)

	return &fixture{router: NewRouter(NewHandler(svc)), shop: svc, article: a, buyer: c}
}

func (f *fixture) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestArticles(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/articles", `{
		"category": "Electrique",
		"designation": "Tricycle Doré",
		"unit_price": "400",
		"stock": 10,
		"shipping": {"height_cm": 7, "width_cm": 7, "depth_cm": 7, "weight_kg": "70"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[ArticleResponse](t, rec)
	assert.Equal(t, 1, created.Reference)
	require.NotNil(t, created.ParcelCost)
	assert.True(t, created.ParcelCost.IsPositive())

	rec = f.do(t, http.MethodGet, "/articles?category=Electrique", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]ArticleResponse](t, rec), 1)

	rec = f.do(t, http.MethodPost, "/articles/1/stock", `{"delta": -4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, decodeBody[ArticleResponse](t, rec).StockQuantity)

	rec = f.do(t, http.MethodDelete, "/articles/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/articles/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "article_not_found", decodeBody[ErrorResponse](t, rec).Error)
}

func TestArticles_BadInput(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/articles/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_reference", decodeBody[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodPost, "/articles", `{"designation":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodPost, "/articles", `{"unit_price": "3"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomers(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/customers", `{
		"kind": "individual", "name": "Fontainer", "first_name": "Nathan",
		"gender": "male", "loyalty_points": 600
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeBody[CustomerResponse](t, rec)
	assert.Equal(t, 10, c.Discount)

	rec = f.do(t, http.MethodGet, "/customers?kind=individual", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]CustomerResponse](t, rec), 1)

	rec = f.do(t, http.MethodGet, "/customers/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/customers", `{"kind": "robot", "name": "R2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/orders", `{"customer_reference": 0}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	o := decodeBody[OrderResponse](t, rec)
	assert.Equal(t, "OPEN", o.Status)

	rec = f.do(t, http.MethodPost, "/orders/0/lines", `{"article_reference": 0, "quantity": 10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	o = decodeBody[OrderResponse](t, rec)
	require.Len(t, o.Lines, 1)
	assert.True(t, o.Amount.Equal(decimal.NewFromInt(500)))

	rec = f.do(t, http.MethodPost, "/orders/0/lines", `{"article_reference": 0, "quantity": 1000}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "order_rejected", decodeBody[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodGet, "/orders/0/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Tricycle Sympa")

	rec = f.do(t, http.MethodPost, "/orders/0/close", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	closed := decodeBody[CloseOrderResponse](t, rec)
	assert.Equal(t, 50, closed.PointsCredited)
	assert.Equal(t, "CLOSED", closed.Order.Status)

	rec = f.do(t, http.MethodPost, "/orders/0/close", `{"with_delivery": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[CloseOrderResponse](t, rec).AlreadyClosed)

	rec = f.do(t, http.MethodDelete, "/orders/0/lines/0", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/customers/0", "")
	assert.Equal(t, 50, decodeBody[CustomerResponse](t, rec).LoyaltyPoints)

	rec = f.do(t, http.MethodGet, "/orders?customer=0", "")
	assert.Len(t, decodeBody[[]OrderResponse](t, rec), 1)
}

func TestRemoveLine(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/orders", `{"customer_reference": 0}`)
	f.do(t, http.MethodPost, "/orders/0/lines", `{"article_reference": 0, "quantity": 7}`)

	rec := f.do(t, http.MethodDelete, "/orders/0/lines/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "line_not_found", decodeBody[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodDelete, "/orders/0/lines/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[OrderResponse](t, rec).Lines)

	a, err := f.shop.GetArticle(context.Background(), f.article.Reference)
	require.NoError(t, err)
	assert.Equal(t, 123, a.StockQuantity)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	body := `{"customer_reference": 0, "items": [{"article_reference": 0, "quantity": 2}]}`

	rec := f.do(t, http.MethodPost, "/checkout", body, "X-Idempotency-Key", "basket-42")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decodeBody[CheckoutResponse](t, rec)
	assert.NotEmpty(t, first.CheckoutID)
	assert.Equal(t, first.CheckoutID, rec.Header().Get("X-Checkout-ID"))
	assert.Equal(t, 10, first.PointsCredited)

	rec = f.do(t, http.MethodPost, "/checkout", body, "X-Idempotency-Key", "basket-42")
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeBody[CheckoutResponse](t, rec)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.CheckoutID, second.CheckoutID)
	assert.Equal(t, first.CheckoutID, rec.Header().Get("X-Checkout-ID"))
	assert.Equal(t, first.PointsCredited, second.PointsCredited)
	assert.Equal(t, first.Order.Reference, second.Order.Reference)

	other := `{"customer_reference": 0, "items": [{"article_reference": 0, "quantity": 3}]}`
	rec = f.do(t, http.MethodPost, "/checkout", other, "X-Idempotency-Key", "basket-42")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "idempotency_conflict", decodeBody[ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodGet, "/checkouts/"+first.CheckoutID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]map[string]any](t, rec)
	assert.Equal(t, "COMPLETED", entries[len(entries)-1]["status"])

	rec = f.do(t, http.MethodGet, "/checkouts/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckout_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"no items", `{"customer_reference": 0, "items": []}`, http.StatusBadRequest, "invalid_request"},
		{"zero quantity", `{"customer_reference": 0, "items": [{"article_reference": 0, "quantity": 0}]}`, http.StatusBadRequest, "invalid_item"},
		{"unknown customer", `{"customer_reference": 9, "items": [{"article_reference": 0, "quantity": 1}]}`, http.StatusNotFound, "customer_not_found"},
		{"unknown article", `{"customer_reference": 0, "items": [{"article_reference": 9, "quantity": 1}]}`, http.StatusNotFound, "article_not_found"},
		{"not enough stock", `{"customer_reference": 0, "items": [{"article_reference": 0, "quantity": 500}]}`, http.StatusConflict, "order_rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/checkout", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeBody[ErrorResponse](t, rec).Error)
		})
	}

	a, err := f.shop.GetArticle(context.Background(), f.article.Reference)
	require.NoError(t, err)
	assert.Equal(t, 123, a.StockQuantity)
}
