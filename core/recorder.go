package core

import (
	"context"
	"time"

	"github.com/hupe1980/cogmesh/numdict"
)

// TickRecord is the durable view of one tick: every signal present on the
// bus after the processes ran, in export form, keyed by "process#port" (or
// the bare external input name).
type TickRecord struct {
	RunID      string                    `json:"run_id"`
	Tick       uint64                    `json:"tick"`
	RecordedAt time.Time                 `json:"recorded_at"`
	Signals    map[string]numdict.Export `json:"signals"`
}

// Recorder persists the tick stream of a run. Implementations live in the
// trace package (compressed JSONL, sqlite index, no-op, fan-out); the engine
// depends only on this interface and treats a recording failure as fatal to
// the tick.
type Recorder interface {
	// RecordTick persists one tick record.
	RecordTick(ctx context.Context, rec TickRecord) error

	// Close flushes and releases underlying resources.
	Close() error
}
