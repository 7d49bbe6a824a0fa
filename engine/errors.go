package engine

import "errors"

var (
	// ErrInvalidName rejects process names that are empty or contain the
	// "#" port separator.
	ErrInvalidName = errors.New("invalid process name")

	// ErrDuplicateProcess rejects registering a second process under an
	// already taken name.
	ErrDuplicateProcess = errors.New("process already registered")

	// ErrUnknownTarget rejects wiring to a process or input port that is
	// not registered.
	ErrUnknownTarget = errors.New("unknown wire target")

	// ErrUnknownSource rejects wiring from a process output port that is
	// not registered, or from a malformed external name.
	ErrUnknownSource = errors.New("unknown wire source")

	// ErrDuplicateWire rejects wiring an input port twice.
	ErrDuplicateWire = errors.New("input port already wired")
)
