package wm

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/internal/testutil"
)

func testTickContext() *core.TickContext {
	return core.NewTickContext(context.Background(), "run-test", 1, nil)
}

func TestFlagsProcess_Step(t *testing.T) {
	p := NewFlagsProcess("goal", mustFlags(t, []string{"focus"}))

	if p.Name() != "goal" {
		t.Fatalf("name = %q", p.Name())
	}
	if got := p.Inputs(); len(got) != 1 || got[0] != PortCommands {
		t.Fatalf("inputs = %v", got)
	}
	if got := p.Outputs(); len(got) != 1 || got[0] != PortMain {
		t.Fatalf("outputs = %v", got)
	}

	out, err := p.Step(testTickContext(), map[string]core.Signal{
		PortCommands: testutil.Commands().Set("focus", 1).Build(),
	})
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	state, err := core.As[core.Feature](out[PortMain])
	if err != nil {
		t.Fatalf("main output: %v", err)
	}
	if got := state.Get(core.Feat("focus")); got != 1 {
		t.Fatalf("focus = %g, want 1", got)
	}
}

func TestFlagsProcess_SignalMismatch(t *testing.T) {
	p := NewFlagsProcess("goal", mustFlags(t, []string{"focus"}))

	_, err := p.Step(testTickContext(), map[string]core.Signal{
		PortCommands: testutil.Chunks(map[string]float64{"A": 1}),
	})
	if !errors.Is(err, core.ErrSignalMismatch) {
		t.Fatalf("expected ErrSignalMismatch, got %v", err)
	}
}

func TestFlagsProcess_UnknownCommand(t *testing.T) {
	p := NewFlagsProcess("goal", mustFlags(t, []string{"focus"}))

	_, err := p.Step(testTickContext(), map[string]core.Signal{
		PortCommands: testutil.Commands().Set("bogus", 1).Build(),
	})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestSlotsProcess_Step(t *testing.T) {
	p := NewSlotsProcess("store", mustSlots(t, 2))

	if got := p.Inputs(); len(got) != 3 {
		t.Fatalf("inputs = %v", got)
	}
	if got := p.Outputs(); len(got) != 2 || got[0] != PortMain || got[1] != PortFlags {
		t.Fatalf("outputs = %v", got)
	}

	// Unwired selected and match ports arrive as nil signals.
	out, err := p.Step(testTickContext(), map[string]core.Signal{
		PortCommands: testutil.Commands().Write(1, 1).Build(),
		PortSelected: testutil.Chunks(map[string]float64{"X": 1}),
	})
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	flags, err := core.As[core.Feature](out[PortFlags])
	if err != nil {
		t.Fatalf("flags output: %v", err)
	}
	if got := flags.Get(core.Feat("full-1")); got != 1 {
		t.Fatalf("full-1 = %g, want 1", got)
	}

	out, err = p.Step(testTickContext(), map[string]core.Signal{
		PortCommands: testutil.Commands().Read(1).Build(),
	})
	if err != nil {
		t.Fatalf("read step: %v", err)
	}

	chunks, err := core.As[core.Chunk](out[PortMain])
	if err != nil {
		t.Fatalf("main output: %v", err)
	}
	if got := chunks.Get(core.Chunk("X")); got != 1 {
		t.Fatalf("read X = %g, want 1", got)
	}
}

func TestSlotsProcess_SignalMismatch(t *testing.T) {
	p := NewSlotsProcess("store", mustSlots(t, 2))

	_, err := p.Step(testTickContext(), map[string]core.Signal{
		PortCommands: testutil.Commands().Build(),
		PortSelected: testutil.Commands().Build(),
	})
	if !errors.Is(err, core.ErrSignalMismatch) {
		t.Fatalf("expected ErrSignalMismatch, got %v", err)
	}
}
