// Package engine implements the synchronous tick scheduler for a mesh of
// register processes.
//
// The Engine is the scheduler seam of the runtime: it owns the set of
// registered processes, the wiring between their ports, and the signal bus
// the wires read from. Register machines stay pure state machines;
// everything about ordering, delivery and recording lives here.
//
// # Tick Model
//
// One Tick advances every registered process exactly once:
//
//  1. A TickContext is created carrying the run ID, tick number and logger.
//  2. Processes step in registration order. Each input port resolves its
//     wired source: a "proc#port" source reads the signal that process
//     emitted on the previous tick, a bare source name reads the external
//     input map passed to this Tick call. Unwired ports read nil.
//  3. The outputs of every step are collected onto a fresh bus, which is
//     returned to the caller and becomes the source for the next tick.
//  4. The tick record (bus plus external inputs, in export form) is handed
//     to the Recorder, if one is configured.
//
// Reading process outputs with one tick of delay makes tick results
// independent of registration order and gives cyclic meshes well-defined
// simultaneous-update semantics. External inputs are visible within the
// same tick; they are the stimulus for it.
//
// # Error Handling
//
//   - Registration and wiring errors are construction-time and fatal.
//   - A process step error fails the tick and leaves the bus at its
//     previous contents. Processes earlier in the order have already
//     advanced their own state.
//   - A recording error fails the tick after the bus has advanced, so the
//     caller may keep ticking.
//
// # Usage
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Logger = logger
//	    o.Recorder = recorder
//	})
//
//	_ = eng.Register(wm.NewFlagsProcess("goal", flags))
//	_ = eng.Wire("policy", "goal#cmds")
//
//	out, err := eng.Tick(ctx, map[string]core.Signal{"policy": cmds})
//
// The Engine is not safe for concurrent Tick calls; one goroutine drives
// the simulation. Registration and wiring are guarded for setup-time
// concurrency.
package engine
