package shop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/order"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/messaging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OpenOrder starts an empty order for a registered customer.
func (s *Service) OpenOrder(ctx context.Context, customerRef int) (OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "shop.OpenOrder",
		trace.WithAttributes(attribute.Int("customer.reference", customerRef)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.directory.FindByReference(customerRef)
	if c == nil {
		return OrderView{}, fail(span, fmt.Errorf("%w: %d", ErrCustomerNotFound, customerRef))
	}
	o := s.book.Open(c)

	span.SetAttributes(attribute.Int("order.reference", o.Reference()))
	slog.InfoContext(ctx, "order opened", "order", o.Reference(), "customer", customerRef)
	return orderView(o), nil
}

func (s *Service) GetOrder(ctx context.Context, ref int) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.book.Find(ref)
	if o == nil {
		return OrderView{}, fmt.Errorf("%w: %d", ErrOrderNotFound, ref)
	}
	return orderView(o), nil
}

// ListOrders returns every order, or those of one customer when customerRef
// is not negative.
func (s *Service) ListOrders(ctx context.Context, customerRef int) []OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.book.List()
	if customerRef >= 0 {
		orders = s.book.ForCustomer(customerRef)
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView(o))
	}
	return out
}

// OrderArticle adds quantity units of an article in stock to an open order.
func (s *Service) OrderArticle(ctx context.Context, orderRef, articleRef, quantity int) (OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "shop.OrderArticle", trace.WithAttributes(
		attribute.Int("order.reference", orderRef),
		attribute.Int("article.reference", articleRef),
		attribute.Int("quantity", quantity),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.book.Find(orderRef)
	if o == nil {
		return OrderView{}, fail(span, fmt.Errorf("%w: %d", ErrOrderNotFound, orderRef))
	}
	a := s.stock.FindByReference(articleRef)
	if a == nil {
		return OrderView{}, fail(span, fmt.Errorf("%w: %d", ErrArticleNotFound, articleRef))
	}
	if !o.Order(a, quantity) {
		return OrderView{}, fail(span, fmt.Errorf("%w: %s", ErrOrderRejected, rejectReason(o, a, quantity)))
	}

	slog.InfoContext(ctx, "article ordered",
		"order", orderRef, "article", articleRef, "quantity", quantity, "stock_left", a.StockQuantity())
	return orderView(o), nil
}

// RemoveLine drops the line of an article from an open order and returns its
// units to stock.
func (s *Service) RemoveLine(ctx context.Context, orderRef, articleRef int) (OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "shop.RemoveLine", trace.WithAttributes(
		attribute.Int("order.reference", orderRef),
		attribute.Int("article.reference", articleRef),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.book.Find(orderRef)
	if o == nil {
		return OrderView{}, fail(span, fmt.Errorf("%w: %d", ErrOrderNotFound, orderRef))
	}
	if o.IsClosed() {
		return OrderView{}, fail(span, fmt.Errorf("%w: order %d is closed", ErrOrderRejected, orderRef))
	}
	if !o.RemoveLine(articleRef) {
		return OrderView{}, fail(span, fmt.Errorf("%w: article %d on order %d", ErrLineNotFound, articleRef, orderRef))
	}

	slog.InfoContext(ctx, "order line removed", "order", orderRef, "article", articleRef)
	return orderView(o), nil
}

type CloseResult struct {
	Order          OrderView
	PointsCredited int
	// AlreadyClosed is set when the order was closed before this call.
	AlreadyClosed bool
}

// CloseOrder closes an order and credits its customer. Closing a closed
// order changes nothing and credits nothing.
func (s *Service) CloseOrder(ctx context.Context, orderRef int, withDelivery bool) (CloseResult, error) {
	ctx, span := s.tracer.Start(ctx, "shop.CloseOrder", trace.WithAttributes(
		attribute.Int("order.reference", orderRef),
		attribute.Bool("order.with_delivery", withDelivery),
	))
	defer span.End()

	s.mu.Lock()
	o := s.book.Find(orderRef)
	if o == nil {
		s.mu.Unlock()
		return CloseResult{}, fail(span, fmt.Errorf("%w: %d", ErrOrderNotFound, orderRef))
	}
	if o.IsClosed() {
		res := CloseResult{Order: orderView(o), AlreadyClosed: true}
		s.mu.Unlock()
		return res, nil
	}
	points := o.Close(withDelivery)
	res := CloseResult{Order: orderView(o), PointsCredited: points}
	event := s.closedEvent(res.Order, withDelivery, points)
	s.mu.Unlock()

	slog.InfoContext(ctx, "order closed", "order", orderRef, "points_credited", points)
	s.publish(ctx, event)
	return res, nil
}

func (s *Service) closedEvent(v OrderView, withDelivery bool, points int) messaging.OrderClosed {
	amount := v.Amount
	if withDelivery {
		amount = v.AmountWithDelivery
	}
	return messaging.OrderClosed{
		OrderReference:    v.Reference,
		CustomerReference: v.CustomerReference,
		Amount:            amount,
		WithDelivery:      withDelivery,
		PointsCredited:    points,
		ClosedAt:          s.now().UTC(),
	}
}

// publish sends the event best-effort: a broker failure never reopens the order.
func (s *Service) publish(ctx context.Context, event messaging.OrderClosed) {
	if err := s.publisher.PublishOrderClosed(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish order closed event",
			"order", event.OrderReference, "error", err)
	}
}

func rejectReason(o *order.Order, a *catalog.Article, quantity int) string {
	switch {
	case o.IsClosed():
		return fmt.Sprintf("order %d is closed", o.Reference())
	case o.IsFull():
		return fmt.Sprintf("order %d already has %d lines", o.Reference(), order.LineCapacity)
	case quantity <= 0:
		return fmt.Sprintf("quantity must be positive, got %d", quantity)
	case a.StockQuantity() < quantity:
		return fmt.Sprintf("only %d of article %d in stock, %d requested", a.StockQuantity(), a.Reference(), quantity)
	default:
		return fmt.Sprintf("article %d refused", a.Reference())
	}
}
