// Package numdict implements the weighted-dictionary algebra the register
// machines are built on: a sparse mapping from ordered symbolic keys to
// float64 weights, plus an explicit default weight returned for every key
// not stored. It defines:
//
//   - Dict, an immutable weighted map generic over any ordered key type
//   - same-key operations (filter, mask, squeeze, merge, pointwise and
//     scalar arithmetic) as methods
//   - cross-key operations (key remapping, grouped sum/max, competitive
//     normalization, pull-through scaling, outer product) as package
//     functions, since they change the key type
//
// Every operation is pure and specifies its effect on the default weight;
// default handling is part of each operation's contract, not an accident of
// implementation. Keys are totally ordered so iteration, tie-breaking and
// exports are deterministic.
//
// Rationale: keeping the algebra free of domain types lets the same Dict
// carry feature commands, chunk signals and slot contents without dependency
// cycles; the domain key types live in the core package.
package numdict
