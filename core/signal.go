package core

import (
	"errors"
	"fmt"

	"github.com/hupe1980/cogmesh/numdict"
)

// ErrSignalMismatch signals an attempt to combine signals of incompatible
// key kinds (a chunk map where a feature map was wired, and so on). Fatal to
// the tick; never retried.
var ErrSignalMismatch = errors.New("signal keyspace mismatch")

// Signal is the erased form signals take on the engine bus. Every
// numdict.Dict instantiation satisfies it, so processes can exchange maps of
// different key kinds over uniformly typed ports and recover the concrete
// type with As.
type Signal interface {
	NumEntries() int
	Default() float64
	Export() numdict.Export
}

// As recovers the typed dict behind a bus signal. A nil signal is an unwired
// port and yields the empty dict (background silence); anything other than a
// Dict[K] yields ErrSignalMismatch.
func As[K numdict.Key[K]](s Signal) (numdict.Dict[K], error) {
	if s == nil {
		return numdict.Dict[K]{}, nil
	}
	d, ok := s.(numdict.Dict[K])
	if !ok {
		return numdict.Dict[K]{}, fmt.Errorf("%w: want %T, have %T", ErrSignalMismatch, d, s)
	}
	return d, nil
}
