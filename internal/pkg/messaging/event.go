// Package messaging publishes shop events to a broker.
package messaging

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderClosed is emitted once per order, when it is closed.
type OrderClosed struct {
	OrderReference    int             `json:"order_reference"`
	CustomerReference int             `json:"customer_reference"`
	Amount            decimal.Decimal `json:"amount"`
	WithDelivery      bool            `json:"with_delivery"`
	PointsCredited    int             `json:"points_credited"`
	ClosedAt          time.Time       `json:"closed_at"`
}

type Publisher interface {
	PublishOrderClosed(ctx context.Context, event OrderClosed) error
	Close() error
}
