package wm

import (
	"fmt"

	"github.com/hupe1980/cogmesh/core"
)

// Port names shared by the register processes.
const (
	// PortCommands receives the tick's command feature map.
	PortCommands = "cmds"

	// PortSelected receives the candidate chunk signal for slot writes.
	PortSelected = "selected"

	// PortMatch receives the externally scored per-chunk match signal.
	PortMatch = "match"

	// PortMain carries a register's primary output: flag state for a
	// Flags register, read-back chunks for a Slots bank.
	PortMain = "main"

	// PortFlags carries a Slots bank's status features.
	PortFlags = "flags"
)

// FlagsProcess adapts a Flags register to the engine's Process contract:
// commands in on "cmds", flag state out on "main".
type FlagsProcess struct {
	name  string
	flags *Flags
}

var _ core.Process = (*FlagsProcess)(nil)

// NewFlagsProcess names a Flags register for scheduling in a mesh.
func NewFlagsProcess(name string, flags *Flags) *FlagsProcess {
	return &FlagsProcess{name: name, flags: flags}
}

// Name returns the process name.
func (p *FlagsProcess) Name() string { return p.name }

// Inputs lists the input ports.
func (p *FlagsProcess) Inputs() []string { return []string{PortCommands} }

// Outputs lists the output ports.
func (p *FlagsProcess) Outputs() []string { return []string{PortMain} }

// Flags returns the adapted register.
func (p *FlagsProcess) Flags() *Flags { return p.flags }

// Step decodes the command signal and advances the register once.
func (p *FlagsProcess) Step(tc *core.TickContext, in map[string]core.Signal) (map[string]core.Signal, error) {
	cmds, err := core.As[core.Feature](in[PortCommands])
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.name, PortCommands, err)
	}

	state, err := p.flags.Step(cmds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}

	tc.LogDebug("flags stepped", "process", p.name, "tick", tc.Tick, "set", state.NumEntries())

	return map[string]core.Signal{PortMain: state}, nil
}

// SlotsProcess adapts a Slots bank to the engine's Process contract:
// commands, selected chunks and match strengths in on "cmds", "selected"
// and "match"; read-back chunks out on "main", status features on "flags".
type SlotsProcess struct {
	name  string
	slots *Slots
}

var _ core.Process = (*SlotsProcess)(nil)

// NewSlotsProcess names a Slots bank for scheduling in a mesh.
func NewSlotsProcess(name string, slots *Slots) *SlotsProcess {
	return &SlotsProcess{name: name, slots: slots}
}

// Name returns the process name.
func (p *SlotsProcess) Name() string { return p.name }

// Inputs lists the input ports.
func (p *SlotsProcess) Inputs() []string {
	return []string{PortCommands, PortSelected, PortMatch}
}

// Outputs lists the output ports.
func (p *SlotsProcess) Outputs() []string { return []string{PortMain, PortFlags} }

// Slots returns the adapted bank.
func (p *SlotsProcess) Slots() *Slots { return p.slots }

// Step decodes the three input signals and advances the bank once.
func (p *SlotsProcess) Step(tc *core.TickContext, in map[string]core.Signal) (map[string]core.Signal, error) {
	cmds, err := core.As[core.Feature](in[PortCommands])
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.name, PortCommands, err)
	}

	selected, err := core.As[core.Chunk](in[PortSelected])
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.name, PortSelected, err)
	}

	match, err := core.As[core.Chunk](in[PortMatch])
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.name, PortMatch, err)
	}

	chunks, flags, err := p.slots.Step(cmds, selected, match)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}

	tc.LogDebug("slots stepped", "process", p.name, "tick", tc.Tick, "held", p.slots.State().NumEntries())

	return map[string]core.Signal{PortMain: chunks, PortFlags: flags}, nil
}
