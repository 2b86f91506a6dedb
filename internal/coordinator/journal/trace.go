package journal

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Both ids are empty when
// the context carries no valid span, as in unit tests.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an entry stamped with the trace info found in ctx.
//
//	entry := journal.NewEntry(ctx, checkoutID, journal.StatusStepDone, "Reserve_Line_Step", "", nil)
func NewEntry(ctx context.Context, checkoutID string, status Status, currentStep, payload string, errs []string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		CheckoutID:  checkoutID,
		Status:      status,
		CurrentStep: currentStep,
		Payload:     payload,
		Errors:      slices.Clone(errs),
		TraceID:     ti.TraceID,
		SpanID:      ti.SpanID,
		RecordedAt:  time.Now().UTC(),
	}
}
