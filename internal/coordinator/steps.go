package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/order"
)

var (
	// ErrLineRejected is returned when the order refuses a line.
	ErrLineRejected = errors.New("order line rejected")
	// ErrAlreadyClosed is returned when the order was closed before the step ran.
	ErrAlreadyClosed = errors.New("order already closed")
)

// --- ReserveLineStep ---

// ReserveLineStep orders quantity units of an article. Its compensation
// removes the line again, returning the units to stock.
type ReserveLineStep struct {
	order    *order.Order
	article  *catalog.Article
	quantity int
}

func NewReserveLineStep(o *order.Order, article *catalog.Article, quantity int) *ReserveLineStep {
	return &ReserveLineStep{
		order:    o,
		article:  article,
		quantity: quantity,
	}
}

func (s *ReserveLineStep) Name() string { return "Reserve_Line_Step" }

func (s *ReserveLineStep) Execute(ctx context.Context) error {
	if !s.order.Order(s.article, s.quantity) {
		return fmt.Errorf("%w: %d x article %d on order %d",
			ErrLineRejected, s.quantity, s.article.Reference(), s.order.Reference())
	}
	return nil
}

func (s *ReserveLineStep) Compensate(ctx context.Context) error {
	if !s.order.RemoveLine(s.article.Reference()) {
		return fmt.Errorf("line of article %d not found on order %d", s.article.Reference(), s.order.Reference())
	}
	return nil
}

// --- CloseOrderStep ---

// CloseOrderStep closes the order and credits the customer. Closing is
// terminal, so it is always the last step.
type CloseOrderStep struct {
	order        *order.Order
	withDelivery bool
	credited     int
}

func NewCloseOrderStep(o *order.Order, withDelivery bool) *CloseOrderStep {
	return &CloseOrderStep{
		order:        o,
		withDelivery: withDelivery,
	}
}

func (s *CloseOrderStep) Name() string { return "Close_Order_Step" }

func (s *CloseOrderStep) Execute(ctx context.Context) error {
	if s.order.IsClosed() {
		return fmt.Errorf("%w: order %d", ErrAlreadyClosed, s.order.Reference())
	}
	s.credited = s.order.Close(s.withDelivery)
	return nil
}

// Compensate does nothing: a closed order never reopens.
func (s *CloseOrderStep) Compensate(ctx context.Context) error {
	return nil
}

// Credited returns the loyalty points credited by Execute.
func (s *CloseOrderStep) Credited() int { return s.credited }
