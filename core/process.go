package core

// Process is a step participant in a mesh: a named state machine advanced
// exactly once per tick. Implementations declare their input and output
// ports by name; the engine resolves wiring against those declarations and
// delivers one Signal per input port (nil for unwired ports).
//
// Step must be pure apart from the process's own state: no I/O, no blocking,
// no spawned work. Outputs are immutable snapshots keyed by output port
// name; callers must not assume they can mutate them in place.
type Process interface {
	// Name identifies the process within its mesh.
	Name() string

	// Inputs lists the input port names in a stable order.
	Inputs() []string

	// Outputs lists the output port names in a stable order.
	Outputs() []string

	// Step advances the process by one tick: read the inputs, mutate
	// internal state once, return the emitted signals.
	Step(tc *TickContext, in map[string]Signal) (map[string]Signal, error)
}
