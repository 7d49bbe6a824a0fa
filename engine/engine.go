package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/logging"
	"github.com/hupe1980/cogmesh/numdict"
)

// Options configures an Engine instance using the functional options
// pattern.
type Options struct {
	// Logger receives engine and process log output. Defaults to a no-op
	// logger so the engine carries no logging dependencies by default.
	Logger logging.Logger

	// Recorder persists the per-tick signal stream. Nil disables
	// recording.
	Recorder core.Recorder

	// RunID identifies the run in logs and tick records. Defaults to a
	// fresh UUID.
	RunID string
}

// Engine schedules a mesh of registered processes over discrete,
// synchronous ticks.
//
// Core responsibilities:
//   - Process registry: named registration with stable stepping order
//   - Wiring: input ports bound to process outputs or external inputs
//   - Signal bus: previous-tick outputs, the source wires read from
//   - Recording: handing each tick's signals to the configured Recorder
//
// The registry and wiring maps are guarded for setup-time concurrency;
// Tick itself must be driven from a single goroutine.
type Engine struct {
	logger   logging.Logger
	recorder core.Recorder

	mu    sync.RWMutex
	runID string
	order []core.Process
	procs map[string]core.Process
	wires map[string]string
	bus   map[string]core.Signal
	ticks uint64
}

// New creates an Engine, ready to register processes. Apply functional
// options to attach a logger, a recorder, or a fixed run ID:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Logger = logger
//	    o.Recorder = recorder
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	return &Engine{
		logger:   opts.Logger,
		recorder: opts.Recorder,
		runID:    opts.RunID,
		procs:    make(map[string]core.Process),
		wires:    make(map[string]string),
		bus:      make(map[string]core.Signal),
	}
}

// Register adds a process to the mesh. Processes step in registration
// order; names must be unique, non-empty and free of the "#" port
// separator.
func (e *Engine) Register(p core.Process) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := p.Name()
	if name == "" || strings.Contains(name, "#") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	if _, taken := e.procs[name]; taken {
		return fmt.Errorf("%q: %w", name, ErrDuplicateProcess)
	}

	e.procs[name] = p
	e.order = append(e.order, p)

	e.logger.Debug("process registered", "run_id", e.runID, "process", name)

	return nil
}

// Wire binds an input port to a signal source. The target is always
// "proc#port" naming a registered process's input. The source is either
// another registered process's "proc#port" output, read with one tick of
// delay, or a bare external name resolved against the input map of each
// Tick call. Every input port takes at most one wire.
func (e *Engine) Wire(from, to string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	proc, port, ok := splitPort(to)
	if !ok {
		return fmt.Errorf("target %q: %w", to, ErrUnknownTarget)
	}

	p, found := e.procs[proc]
	if !found {
		return fmt.Errorf("target process %q: %w", proc, ErrUnknownTarget)
	}

	if !slices.Contains(p.Inputs(), port) {
		return fmt.Errorf("process %q has no input port %q: %w", proc, port, ErrUnknownTarget)
	}

	if _, taken := e.wires[to]; taken {
		return fmt.Errorf("target %q: %w", to, ErrDuplicateWire)
	}

	if sname, sport, isPort := splitPort(from); isPort {
		sp, found := e.procs[sname]
		if !found {
			return fmt.Errorf("source process %q: %w", sname, ErrUnknownSource)
		}

		if !slices.Contains(sp.Outputs(), sport) {
			return fmt.Errorf("process %q has no output port %q: %w", sname, sport, ErrUnknownSource)
		}
	} else if from == "" || strings.Contains(from, "#") {
		return fmt.Errorf("source %q: %w", from, ErrUnknownSource)
	}

	e.wires[to] = from

	e.logger.Debug("wired", "run_id", e.runID, "from", from, "to", to)

	return nil
}

// Tick advances every registered process once, in registration order, and
// returns the resulting bus keyed by "proc#port". Process-output wires read
// the previous tick's bus; bare-named wires read the external map passed
// here. A process or recording error fails the tick.
func (e *Engine) Tick(ctx context.Context, external map[string]core.Signal) (map[string]core.Signal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ticks++
	tc := core.NewTickContext(ctx, e.runID, e.ticks, e.logger)

	e.logger.Debug("tick", "run_id", e.runID, "tick", e.ticks, "processes", len(e.order))

	next := make(map[string]core.Signal)

	for _, p := range e.order {
		in := make(map[string]core.Signal, len(p.Inputs()))

		for _, port := range p.Inputs() {
			src, wired := e.wires[p.Name()+"#"+port]
			if !wired {
				continue
			}

			var sig core.Signal
			if strings.Contains(src, "#") {
				sig = e.bus[src]
			} else {
				sig = external[src]
			}

			if sig != nil {
				in[port] = sig
			}
		}

		out, err := p.Step(tc, in)
		if err != nil {
			return nil, fmt.Errorf("process %q tick %d: %w", p.Name(), e.ticks, err)
		}

		for port, sig := range out {
			next[p.Name()+"#"+port] = sig
		}
	}

	e.bus = next

	if e.recorder != nil {
		rec := core.TickRecord{
			RunID:      e.runID,
			Tick:       e.ticks,
			RecordedAt: time.Now().UTC(),
			Signals:    make(map[string]numdict.Export, len(next)+len(external)),
		}

		for name, sig := range external {
			if sig != nil {
				rec.Signals[name] = sig.Export()
			}
		}

		for name, sig := range next {
			if sig != nil {
				rec.Signals[name] = sig.Export()
			}
		}

		if err := e.recorder.RecordTick(ctx, rec); err != nil {
			return nil, fmt.Errorf("record tick %d: %w", e.ticks, err)
		}
	}

	out := make(map[string]core.Signal, len(next))
	for k, v := range next {
		out[k] = v
	}

	return out, nil
}

// Reset clears the bus and tick counter and assigns a fresh run ID,
// leaving processes and wires in place. Register state is owned by the
// registers themselves; resetting it is the caller's concern.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.bus = make(map[string]core.Signal)
	e.ticks = 0
	e.runID = uuid.NewString()

	e.logger.Info("engine reset", "run_id", e.runID)
}

// RunID returns the identifier of the current run.
func (e *Engine) RunID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.runID
}

// Ticks returns the number of ticks consumed in the current run. Failed
// ticks count; their number is not reused.
func (e *Engine) Ticks() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.ticks
}

// splitPort parses "proc#port" endpoints.
func splitPort(s string) (string, string, bool) {
	name, port, ok := strings.Cut(s, "#")
	if !ok || name == "" || port == "" {
		return "", "", false
	}

	return name, port, true
}
