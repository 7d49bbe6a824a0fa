package wm

import "errors"

var (
	// ErrInvalidFlagName rejects a flag name that is empty, not a
	// well-formed path, a duplicate, or one starting with the reserved
	// "set" command prefix.
	ErrInvalidFlagName = errors.New("invalid flag name")

	// ErrInvalidPrefix rejects a namespace prefix that is not a
	// well-formed path.
	ErrInvalidPrefix = errors.New("invalid prefix")

	// ErrInvalidValues rejects a flag value vocabulary containing values
	// outside {-1, 0, +1}.
	ErrInvalidValues = errors.New("invalid value vocabulary")

	// ErrSlotCount rejects a slot bank size below one.
	ErrSlotCount = errors.New("slot count must be positive")

	// ErrUnknownCommand rejects a command feature that decodes to nothing
	// in the register's declared vocabulary. Only Flags is strict about
	// this; Slots filters such commands silently.
	ErrUnknownCommand = errors.New("unknown command")
)
