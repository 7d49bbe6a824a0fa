// Package core provides the foundational domain types, interfaces and
// execution contexts used by cogmesh. It defines the core abstractions for:
//
//   - Symbols (Feature, Chunk, Slot, SlotKey: the ordered key vocabulary
//     signals are addressed by)
//   - Signals (the erased bus currency, with typed recovery via As)
//   - Processes (named state machines advanced once per tick)
//   - TickContext (scoped per-tick execution context with logging)
//   - The Recorder contract for persisting tick streams
//
// The package intentionally keeps implementation concerns (register
// machines, engine scheduling, recorders) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
