package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcmexdev/threewheels-sales/internal/coordinator"
	"github.com/jcmexdev/threewheels-sales/internal/coordinator/journal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// IdempotencyTTL is how long a checkout idempotency key is remembered.
const IdempotencyTTL = 24 * time.Hour

// DefaultCacheTimeout bounds each idempotency cache round trip.
const DefaultCacheTimeout = 500 * time.Millisecond

type CheckoutItem struct {
	ArticleReference int `json:"article_reference"`
	Quantity         int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerReference int            `json:"customer_reference"`
	Items             []CheckoutItem `json:"items"`
	WithDelivery      bool           `json:"with_delivery"`
	// IdempotencyKey, when set, makes a repeated checkout return the result
	// of the first one. Reusing a key for another customer or basket fails
	// with ErrIdempotencyConflict.
	IdempotencyKey string `json:"-"`
}

// checkoutRecord is what an idempotency key remembers about a checkout.
type checkoutRecord struct {
	CheckoutID        string `json:"checkout_id"`
	OrderReference    int    `json:"order_ref"`
	CustomerReference int    `json:"customer_ref"`
	Basket            string `json:"basket"`
	PointsCredited    int    `json:"points"`
}

type CheckoutResult struct {
	CheckoutID     string
	Order          OrderView
	PointsCredited int
	// Replayed is set when the result comes from an earlier checkout with
	// the same idempotency key.
	Replayed bool
}

// Checkout opens an order, reserves every item and closes the order, all or
// nothing. When an item cannot be reserved the lines already reserved are
// removed, their units return to stock, and the empty order is discarded.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	checkoutID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "shop.Checkout", trace.WithAttributes(
		attribute.String("checkout.id", checkoutID),
		attribute.Int("customer.reference", req.CustomerReference),
		attribute.Int("checkout.items", len(req.Items)),
	))
	defer span.End()

	if len(req.Items) == 0 {
		return CheckoutResult{}, fail(span, fmt.Errorf("%w: checkout needs at least one item", ErrInvalidInput))
	}

	s.mu.Lock()

	items := mergeItems(req.Items)
	basket := basketFingerprint(items, req.WithDelivery)

	cacheKey := ""
	if req.IdempotencyKey != "" {
		cacheKey = s.cache.GenerateKey("checkout", req.IdempotencyKey)
		res, ok, err := s.replay(ctx, cacheKey, req.CustomerReference, basket)
		if err != nil {
			s.mu.Unlock()
			return CheckoutResult{}, fail(span, err)
		}
		if ok {
			s.mu.Unlock()
			span.SetAttributes(attribute.Bool("checkout.replayed", true))
			return res, nil
		}
	}

	c := s.directory.FindByReference(req.CustomerReference)
	if c == nil {
		s.mu.Unlock()
		return CheckoutResult{}, fail(span, fmt.Errorf("%w: %d", ErrCustomerNotFound, req.CustomerReference))
	}

	o := s.book.Open(c)
	steps := make([]coordinator.Step, 0, len(req.Items)+1)
	for _, it := range items {
		a := s.stock.FindByReference(it.ArticleReference)
		if a == nil {
			s.book.Discard(o.Reference())
			s.mu.Unlock()
			return CheckoutResult{}, fail(span, fmt.Errorf("%w: %d", ErrArticleNotFound, it.ArticleReference))
		}
		steps = append(steps, coordinator.NewReserveLineStep(o, a, it.Quantity))
	}
	closing := coordinator.NewCloseOrderStep(o, req.WithDelivery)
	steps = append(steps, closing)

	payload, _ := json.Marshal(req)
	run := coordinator.NewOrchestrator(checkoutID, string(payload), steps, s.journal)
	if err := run.Start(ctx); err != nil {
		s.book.Discard(o.Reference())
		s.mu.Unlock()
		return CheckoutResult{}, fail(span, fmt.Errorf("checkout %s: %w: %w", checkoutID, ErrOrderRejected, err))
	}

	res := CheckoutResult{
		CheckoutID:     checkoutID,
		Order:          orderView(o),
		PointsCredited: closing.Credited(),
	}
	event := s.closedEvent(res.Order, req.WithDelivery, res.PointsCredited)
	if cacheKey != "" {
		s.remember(ctx, cacheKey, checkoutRecord{
			CheckoutID:        checkoutID,
			OrderReference:    o.Reference(),
			CustomerReference: req.CustomerReference,
			Basket:            basket,
			PointsCredited:    res.PointsCredited,
		})
	}
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("order.reference", o.Reference()))
	slog.InfoContext(ctx, "checkout completed",
		"checkout_id", checkoutID, "order", o.Reference(), "points_credited", res.PointsCredited)
	s.publish(ctx, event)
	return res, nil
}

// mergeItems sums the quantities of repeated articles so that each article
// gets a single reserve step, keeping first-seen order.
func mergeItems(items []CheckoutItem) []CheckoutItem {
	out := make([]CheckoutItem, 0, len(items))
	index := make(map[int]int, len(items))
	for _, it := range items {
		if i, ok := index[it.ArticleReference]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ArticleReference] = len(out)
		out = append(out, it)
	}
	return out
}

// basketFingerprint identifies a merged basket independently of item order.
func basketFingerprint(items []CheckoutItem, withDelivery bool) string {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b CheckoutItem) int { return a.ArticleReference - b.ArticleReference })

	var b strings.Builder
	b.WriteString(strconv.FormatBool(withDelivery))
	for _, it := range sorted {
		fmt.Fprintf(&b, ";%d:%d", it.ArticleReference, it.Quantity)
	}
	return b.String()
}

// replay looks up an earlier checkout under key. A record left by another
// customer or basket is a conflict. Cache failures count as a miss. Must be
// called with s.mu held.
func (s *Service) replay(ctx context.Context, key string, customerRef int, basket string) (CheckoutResult, bool, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	cached, err := s.cache.Get(cctx, key)
	cancel()
	if err != nil {
		slog.ErrorContext(ctx, "failed to read checkout idempotency key", "key", key, "error", err)
		return CheckoutResult{}, false, nil
	}
	if cached == "" {
		return CheckoutResult{}, false, nil
	}

	var rec checkoutRecord
	if err := json.Unmarshal([]byte(cached), &rec); err != nil || rec.CheckoutID == "" {
		slog.WarnContext(ctx, "ignoring malformed idempotency entry", "key", key, "value", cached)
		return CheckoutResult{}, false, nil
	}
	if rec.CustomerReference != customerRef || rec.Basket != basket {
		return CheckoutResult{}, false, fmt.Errorf("%w: %w: key already used by checkout %s",
			ErrIdempotencyConflict, ErrInvalidInput, rec.CheckoutID)
	}

	o := s.book.Find(rec.OrderReference)
	if o == nil {
		return CheckoutResult{}, false, nil
	}
	slog.InfoContext(ctx, "replaying checkout",
		"key", key, "checkout_id", rec.CheckoutID, "order", rec.OrderReference)
	return CheckoutResult{
		CheckoutID:     rec.CheckoutID,
		Order:          orderView(o),
		PointsCredited: rec.PointsCredited,
		Replayed:       true,
	}, true, nil
}

// remember stores rec under key. Must be called with s.mu held.
func (s *Service) remember(ctx context.Context, key string, rec checkoutRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode checkout idempotency record", "error", err)
		return
	}
	cctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()
	if err := s.cache.Set(cctx, key, string(payload), IdempotencyTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store checkout idempotency key",
			"checkout_id", rec.CheckoutID, "error", err)
	}
}

// CheckoutHistory returns the journal entries of one checkout run.
func (s *Service) CheckoutHistory(ctx context.Context, checkoutID string) ([]journal.Entry, error) {
	entries := s.journal.History(checkoutID)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutNotFound, checkoutID)
	}
	return entries, nil
}
