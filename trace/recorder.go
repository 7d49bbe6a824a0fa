package trace

import (
	"context"

	"github.com/hupe1980/cogmesh/core"
)

// Nop discards every tick record. Useful when a mesh is constructed with
// recording disabled but code still expects a non-nil recorder.
type Nop struct{}

var _ core.Recorder = Nop{}

// RecordTick discards the record.
func (Nop) RecordTick(context.Context, core.TickRecord) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }

// Multi fans every record out to several recorders in order. The first
// recording error aborts the fan-out; Close always reaches every recorder.
type Multi struct {
	recorders []core.Recorder
}

var _ core.Recorder = (*Multi)(nil)

// NewMulti combines recorders into one. Nil entries are skipped.
func NewMulti(recorders ...core.Recorder) *Multi {
	rs := make([]core.Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return &Multi{recorders: rs}
}

// RecordTick hands the record to each recorder in order.
func (m *Multi) RecordTick(ctx context.Context, rec core.TickRecord) error {
	for _, r := range m.recorders {
		if err := r.RecordTick(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every recorder and returns the first error.
func (m *Multi) Close() error {
	var first error
	for _, r := range m.recorders {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
