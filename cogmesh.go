// Package cogmesh provides a high-level façade over the tick engine and the
// working-memory registers, enabling rapid construction of clocked
// symbolic-connectionist meshes. Most applications interact with this
// package by:
//  1. Creating a Mesh via New() (or FromConfig for a YAML declaration)
//  2. Registering register processes (flag stores, slot banks, custom)
//  3. Wiring ports and driving the mesh tick by tick (Tick or Run)
//
// The façade delegates scheduling to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; longer experiments typically enable trace recording and a
// structured logger.
package cogmesh

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/cogmesh/config"
	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/engine"
	"github.com/hupe1980/cogmesh/logging"
	"github.com/hupe1980/cogmesh/trace"
	"github.com/hupe1980/cogmesh/wm"
)

// Options configures the Mesh instance.
type Options struct {
	// RunID identifies the run in traces and logs. Empty generates one.
	RunID string

	// Recorder persists the tick stream (defaults to trace.Nop).
	Recorder core.Recorder

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Mesh is the high-level façade aggregating the engine and its recorder.
type Mesh struct {
	opts   Options
	engine *engine.Engine
	rec    core.Recorder
}

// New creates a new Mesh instance with optional overrides.
func New(optFns ...func(o *Options)) *Mesh {
	opts := Options{
		Recorder: trace.Nop{},
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(func(o *engine.Options) {
		o.Logger = opts.Logger
		o.Recorder = opts.Recorder
		o.RunID = opts.RunID
	})

	return &Mesh{opts: opts, engine: eng, rec: opts.Recorder}
}

// FromConfig materializes a mesh from a declaration: register processes,
// wires, recorder, and logger. The config is validated first.
func FromConfig(cfg config.Config) (*Mesh, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var recorder core.Recorder = trace.Nop{}
	if cfg.Run.RecordDir != "" {
		recorders := []core.Recorder{trace.NewWriter(cfg.Run.RecordDir)}
		if cfg.Run.RecordIndex {
			ix, err := trace.OpenIndex(filepath.Join(cfg.Run.RecordDir, "index.sqlite"))
			if err != nil {
				return nil, fmt.Errorf("open trace index: %w", err)
			}
			recorders = append(recorders, ix)
		}
		recorder = trace.NewMulti(recorders...)
	}

	m := New(func(o *Options) {
		o.Recorder = recorder
		o.Logger = logging.NewSlogLogger(cfg.Run.Level(), "json", false)
	})

	for _, spec := range cfg.Processes {
		proc, err := buildProcess(spec)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		if err := m.Register(proc); err != nil {
			_ = m.Close()
			return nil, err
		}
	}
	for _, w := range cfg.Wires {
		if err := m.Wire(w.From, w.To); err != nil {
			_ = m.Close()
			return nil, err
		}
	}

	return m, nil
}

func buildProcess(spec config.ProcessSpec) (core.Process, error) {
	switch spec.Kind {
	case config.KindFlags:
		flags, err := wm.NewFlags(spec.Flags, func(o *wm.FlagsOptions) {
			o.Prefix = spec.Prefix
			if len(spec.Values) > 0 {
				o.Values = spec.Values
			}
		})
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", spec.Name, err)
		}
		return wm.NewFlagsProcess(spec.Name, flags), nil

	case config.KindSlots:
		slots, err := wm.NewSlots(spec.Slots, func(o *wm.SlotsOptions) {
			o.Prefix = spec.Prefix
		})
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", spec.Name, err)
		}
		return wm.NewSlotsProcess(spec.Name, slots), nil

	default:
		return nil, fmt.Errorf("process %s: unknown kind %q", spec.Name, spec.Kind)
	}
}

// Register adds a process to the mesh.
func (m *Mesh) Register(p core.Process) error { return m.engine.Register(p) }

// Wire connects a source ("process#port", or a bare external input name) to
// a process input port ("process#port").
func (m *Mesh) Wire(from, to string) error { return m.engine.Wire(from, to) }

// Tick advances the mesh one step with the given external inputs.
func (m *Mesh) Tick(ctx context.Context, external map[string]core.Signal) (map[string]core.Signal, error) {
	return m.engine.Tick(ctx, external)
}

// Run drives n ticks, asking feed (optional) for the external inputs of each
// upcoming tick. It returns the outputs of the last tick.
func (m *Mesh) Run(ctx context.Context, n int, feed func(tick uint64) map[string]core.Signal) (map[string]core.Signal, error) {
	var out map[string]core.Signal
	for i := 0; i < n; i++ {
		var external map[string]core.Signal
		if feed != nil {
			external = feed(m.engine.Ticks() + 1)
		}

		var err error
		out, err = m.engine.Tick(ctx, external)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// RunID returns the identifier recorded with each tick of the current run.
func (m *Mesh) RunID() string { return m.engine.RunID() }

// Ticks returns the number of ticks consumed in the current run.
func (m *Mesh) Ticks() uint64 { return m.engine.Ticks() }

// Reset clears the bus and starts a fresh run.
func (m *Mesh) Reset() { m.engine.Reset() }

// Close flushes and closes the recorder.
func (m *Mesh) Close() error { return m.rec.Close() }
