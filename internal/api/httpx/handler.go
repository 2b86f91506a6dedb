package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jcmexdev/threewheels-sales/internal/coordinator/journal"
	"github.com/jcmexdev/threewheels-sales/internal/customer"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/constants"
	"github.com/jcmexdev/threewheels-sales/internal/shop"
)

// Shop is the sales core as seen by the HTTP layer.
type Shop interface {
	CreateArticle(ctx context.Context, in shop.NewArticle) (shop.ArticleView, error)
	GetArticle(ctx context.Context, ref int) (shop.ArticleView, error)
	ListArticles(ctx context.Context, category string) []shop.ArticleView
	AdjustStock(ctx context.Context, ref, delta int) (shop.ArticleView, error)
	WithdrawArticle(ctx context.Context, ref int) error

	RegisterCustomer(ctx context.Context, in shop.NewCustomer) (shop.CustomerView, error)
	GetCustomer(ctx context.Context, ref int) (shop.CustomerView, error)
	ListCustomers(ctx context.Context, kind customer.Kind) []shop.CustomerView

	OpenOrder(ctx context.Context, customerRef int) (shop.OrderView, error)
	GetOrder(ctx context.Context, ref int) (shop.OrderView, error)
	ListOrders(ctx context.Context, customerRef int) []shop.OrderView
	OrderArticle(ctx context.Context, orderRef, articleRef, quantity int) (shop.OrderView, error)
	RemoveLine(ctx context.Context, orderRef, articleRef int) (shop.OrderView, error)
	CloseOrder(ctx context.Context, orderRef int, withDelivery bool) (shop.CloseResult, error)

	Checkout(ctx context.Context, req shop.CheckoutRequest) (shop.CheckoutResult, error)
	CheckoutHistory(ctx context.Context, checkoutID string) ([]journal.Entry, error)
}

// Handler handles incoming HTTP requests for the sales core.
type Handler struct {
	shop Shop
}

func NewHandler(s Shop) *Handler {
	return &Handler{shop: s}
}

// --- Articles ---

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := h.shop.ListArticles(r.Context(), r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, mapArticles(articles))
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if !decode(w, r, &req) {
		return
	}

	a, err := h.shop.CreateArticle(r.Context(), shop.NewArticle{
		Category:    req.Category,
		Designation: req.Designation,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		Shipping:    req.Shipping,
		Features:    req.Features,
	})
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapArticle(a))
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	a, err := h.shop.GetArticle(r.Context(), ref)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapArticle(a))
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	var req AdjustStockRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.shop.AdjustStock(r.Context(), ref, req.Delta)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapArticle(a))
}

func (h *Handler) WithdrawArticle(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	if err := h.shop.WithdrawArticle(r.Context(), ref); err != nil {
		writeShopError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Customers ---

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	kind := customer.Kind(r.URL.Query().Get("kind"))
	writeJSON(w, http.StatusOK, mapCustomers(h.shop.ListCustomers(r.Context(), kind)))
}

func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.shop.RegisterCustomer(r.Context(), shop.NewCustomer{
		Kind:          customer.Kind(req.Kind),
		Name:          req.Name,
		Address:       req.Address,
		LoyaltyPoints: req.LoyaltyPoints,
		FirstName:     req.FirstName,
		Gender:        customer.Gender(req.Gender),
		Contact:       req.Contact,
	})
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCustomer(c))
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	c, err := h.shop.GetCustomer(r.Context(), ref)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomer(c))
}

// --- Orders ---

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerRef := -1
	if raw := r.URL.Query().Get("customer"); raw != "" {
		ref, err := strconv.Atoi(raw)
		if err != nil || ref < 0 {
			writeError(w, http.StatusBadRequest, "invalid_reference", fmt.Sprintf("customer %q is not a reference", raw))
			return
		}
		customerRef = ref
	}
	orders := h.shop.ListOrders(r.Context(), customerRef)
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrder(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	var req OpenOrderRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.shop.OpenOrder(r.Context(), req.CustomerReference)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrder(o))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	o, err := h.shop.GetOrder(r.Context(), ref)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

// GetOrderSummary renders the order as plain text.
func (h *Handler) GetOrderSummary(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	o, err := h.shop.GetOrder(r.Context(), ref)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, o.Summary)
}

func (h *Handler) OrderArticle(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	var req OrderLineRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.shop.OrderArticle(r.Context(), ref, req.ArticleReference, req.Quantity)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	articleRef, ok := pathRef(w, r, "articleRef")
	if !ok {
		return
	}
	o, err := h.shop.RemoveLine(r.Context(), ref, articleRef)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (h *Handler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	ref, ok := pathRef(w, r, "ref")
	if !ok {
		return
	}
	// The body is optional; an empty one closes without delivery.
	var req CloseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	res, err := h.shop.CloseOrder(r.Context(), ref, req.WithDelivery)
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CloseOrderResponse{
		Order:          mapOrder(res.Order),
		PointsCredited: res.PointsCredited,
		AlreadyClosed:  res.AlreadyClosed,
	})
}

// --- Checkout ---

// Checkout reserves all items on a new order and closes it. The
// X-Idempotency-Key header makes a retried request return the first result.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}

	items := make([]shop.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_item", "quantity must be positive")
			return
		}
		items = append(items, shop.CheckoutItem{ArticleReference: it.ArticleReference, Quantity: it.Quantity})
	}

	idempKey := constants.IdempotencyKey(r.Context())
	slog.InfoContext(r.Context(), "checkout requested",
		"customer_reference", req.CustomerReference, "items", len(items), "idempotent", idempKey != "")

	res, err := h.shop.Checkout(r.Context(), shop.CheckoutRequest{
		CustomerReference: req.CustomerReference,
		Items:             items,
		WithDelivery:      req.WithDelivery,
		IdempotencyKey:    idempKey,
	})
	if err != nil {
		writeShopError(w, r, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	if res.CheckoutID != "" {
		w.Header().Set("X-Checkout-ID", res.CheckoutID)
	}
	writeJSON(w, status, CheckoutResponse{
		CheckoutID:     res.CheckoutID,
		Order:          mapOrder(res.Order),
		PointsCredited: res.PointsCredited,
		Replayed:       res.Replayed,
	})
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	entries, err := h.shop.CheckoutHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeShopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- helpers ---

func pathRef(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	ref, err := strconv.Atoi(raw)
	if err != nil || ref < 0 {
		writeError(w, http.StatusBadRequest, "invalid_reference", fmt.Sprintf("%s %q is not a reference", name, raw))
		return 0, false
	}
	return ref, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// writeShopError maps service errors to HTTP statuses: unknown references
// are 404, refused business operations 409, bad input 400.
func writeShopError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shop.ErrArticleNotFound):
		writeError(w, http.StatusNotFound, "article_not_found", err.Error())
	case errors.Is(err, shop.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, shop.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, shop.ErrLineNotFound):
		writeError(w, http.StatusNotFound, "line_not_found", err.Error())
	case errors.Is(err, shop.ErrCheckoutNotFound):
		writeError(w, http.StatusNotFound, "checkout_not_found", err.Error())
	case errors.Is(err, shop.ErrOrderRejected):
		writeError(w, http.StatusConflict, "order_rejected", err.Error())
	case errors.Is(err, shop.ErrStockFull):
		writeError(w, http.StatusConflict, "stock_full", err.Error())
	case errors.Is(err, shop.ErrDirectoryFull):
		writeError(w, http.StatusConflict, "directory_full", err.Error())
	case errors.Is(err, shop.ErrIdempotencyConflict):
		writeError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, shop.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		slog.ErrorContext(r.Context(), "unexpected shop error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
