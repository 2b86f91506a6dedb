package messaging

import (
	"context"
	"log/slog"
)

// LogPublisher logs events instead of sending them. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishOrderClosed(ctx context.Context, event OrderClosed) error {
	p.logger.InfoContext(ctx, "order closed",
		"order_reference", event.OrderReference,
		"customer_reference", event.CustomerReference,
		"amount", event.Amount.StringFixed(2),
		"with_delivery", event.WithDelivery,
		"points_credited", event.PointsCredited,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
