// Package journal records every state transition of a checkout run.
//
// The journal is an append-only audit trail kept in memory. Each entry
// carries the OpenTelemetry trace and span ids active when it was written,
// so a checkout can be correlated with its trace.
package journal

import "time"

// Status represents the lifecycle state of a checkout run.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is a point-in-time snapshot of a checkout run.
type Entry struct {
	// CheckoutID identifies the run; one run writes several entries.
	CheckoutID string `json:"checkout_id"`

	Status Status `json:"status"`

	// CurrentStep is the step that was just executed or failed.
	CurrentStep string `json:"current_step,omitempty"`

	// Payload is the JSON input of the run, written on STARTED only.
	Payload string `json:"payload,omitempty"`

	// Errors accumulates failure details, one per failed step or compensation.
	Errors []string `json:"errors,omitempty"`

	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}
