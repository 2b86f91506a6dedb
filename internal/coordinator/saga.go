// Package coordinator runs a checkout as a sequence of compensable steps:
// if one step fails, the steps that already succeeded are undone in reverse
// order so the shop is left as it was before the checkout.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/threewheels-sales/internal/coordinator/journal"
)

// Step represents a single unit of work in a checkout.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps.
type Orchestrator struct {
	checkoutID string
	payload    string
	steps      []Step
	journal    journal.Repository // nil-safe: journaling skipped if nil
}

// NewOrchestrator prepares a run. payload is the JSON input of the run,
// recorded once in the journal.
func NewOrchestrator(checkoutID, payload string, steps []Step, repo journal.Repository) *Orchestrator {
	return &Orchestrator{
		checkoutID: checkoutID,
		payload:    payload,
		steps:      steps,
		journal:    repo,
	}
}

// Start runs the steps sequentially.
// If a step fails, it triggers the compensation of all previously successful steps.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, journal.StatusStarted, "", o.payload, nil)

	var done []Step
	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing checkout step", "checkout_id", o.checkoutID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "checkout step failed, rolling back",
				"checkout_id", o.checkoutID, "step", step.Name(), "error", err)
			errs := []string{fmt.Sprintf("step %s failed: %v", step.Name(), err)}
			o.record(ctx, journal.StatusCompensating, step.Name(), "", errs)
			errs = append(errs, o.rollback(ctx, done)...)
			o.record(ctx, journal.StatusFailed, step.Name(), "", errs)
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
		// Track successful step for potential compensation (LIFO)
		done = append(done, step)
		o.record(ctx, journal.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, journal.StatusCompleted, "", "", nil)
	slog.InfoContext(ctx, "checkout completed", "checkout_id", o.checkoutID, "steps", len(done))
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	var errs []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate checkout step",
				"checkout_id", o.checkoutID, "step", step.Name(), "error", err)
			errs = append(errs, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
		}
	}
	return errs
}

func (o *Orchestrator) record(ctx context.Context, status journal.Status, step, payload string, errs []string) {
	if o.journal == nil {
		return
	}
	entry := journal.NewEntry(ctx, o.checkoutID, status, step, payload, errs)
	if err := o.journal.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to save checkout journal entry",
			"checkout_id", o.checkoutID, "status", status, "error", err)
	}
}
