// Package wm implements the working-memory registers of a mesh: named
// ternary flags and indexed chunk-holding slots, both mutated and read
// exclusively through weighted command signals.
//
// Two register machines are provided:
//
//  1. Flags: named flags holding -1, 0 or +1, driven by "set-<flag>"
//     command features. A none value resets the flag to 0, values +1 and -1
//     set its sign, value 0 is accepted and does nothing. Command features
//     outside the declared vocabulary fail the step.
//  2. Slots: a bank of N registers each conventionally holding one chunk,
//     driven by "read-i" and "write-i" command features. Command features
//     outside the declared vocabulary are dropped without error.
//
// The input policies are asymmetric (strict flags, permissive slots); tests
// pin both sides of the contract.
//
// Both machines follow the same step discipline: immutable configuration
// fixed at construction, including a typed command decoder so that no
// dimension strings are parsed at step time, one mutable state map, and a
// step method that applies one tick's commands and returns outputs computed
// from the post-update state. FlagsProcess and SlotsProcess adapt the
// machines to the port-based Process contract the engine schedules.
package wm
