package core

import (
	"context"

	"github.com/hupe1980/cogmesh/logging"
)

// TickContext carries the per-tick execution scope handed to each Process
// step. It aggregates:
//   - The ambient cancellation Context (honored by recorders, not by the
//     pure step functions themselves)
//   - Identifiers (RunID, Tick)
//   - Logging via the embedded adapter (nil-safe)
//
// A TickContext is valid only for the duration of the tick it was created
// for; processes must not retain it across steps.
type TickContext struct {
	Context context.Context
	RunID   string
	Tick    uint64

	*loggerAdapter
}

// NewTickContext constructs a TickContext for one tick of one run.
func NewTickContext(ctx context.Context, runID string, tick uint64, logger logging.Logger) *TickContext {
	return &TickContext{
		Context:       ctx,
		RunID:         runID,
		Tick:          tick,
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (tc *TickContext) Done() <-chan struct{} { return tc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (tc *TickContext) Err() error { return tc.Context.Err() }
