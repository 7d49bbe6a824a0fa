package core

import (
	"fmt"
	"regexp"
	"strconv"
)

// Value is the optional payload of a Feature: none (the wildcard/reset
// marker), an int, or a symbol. The zero value is none. Values are
// immutable, comparable and totally ordered: none sorts before every int,
// ints (ascending) before every symbol, symbols lexicographically.
type Value struct {
	kind uint8 // 0 none, 1 int, 2 symbol
	num  int
	sym  string
}

// Int returns an int-valued Value.
func Int(v int) Value { return Value{kind: 1, num: v} }

// Sym returns a symbol-valued Value.
func Sym(s string) Value { return Value{kind: 2, sym: s} }

// IsNone reports whether v is the wildcard/reset marker.
func (v Value) IsNone() bool { return v.kind == 0 }

// AsInt returns the int payload and whether v carries one.
func (v Value) AsInt() (int, bool) { return v.num, v.kind == 1 }

// AsSym returns the symbol payload and whether v carries one.
func (v Value) AsSym() (string, bool) { return v.sym, v.kind == 2 }

// Less orders Values: none, then ints ascending, then symbols
// lexicographically.
func (v Value) Less(other Value) bool {
	if v.kind != other.kind {
		return v.kind < other.kind
	}
	switch v.kind {
	case 1:
		return v.num < other.num
	case 2:
		return v.sym < other.sym
	default:
		return false
	}
}

// String renders the payload: "none", the int, or the symbol.
func (v Value) String() string {
	switch v.kind {
	case 1:
		return strconv.Itoa(v.num)
	case 2:
		return v.sym
	default:
		return "none"
	}
}

// Feature is the (dimension, value) signal key. The dimension names what the
// signal is about (a flag, a command, a status line); the value carries the
// symbolic payload, with none meaning "no payload" rather than data.
type Feature struct {
	Dim string
	Val Value
}

// Feat returns a none-valued Feature for dim.
func Feat(dim string) Feature { return Feature{Dim: dim} }

// FeatInt returns a Feature for dim carrying an int value.
func FeatInt(dim string, v int) Feature { return Feature{Dim: dim, Val: Int(v)} }

// FeatSym returns a Feature for dim carrying a symbol value.
func FeatSym(dim, s string) Feature { return Feature{Dim: dim, Val: Sym(s)} }

// Less orders Features by dimension, then value.
func (f Feature) Less(other Feature) bool {
	if f.Dim != other.Dim {
		return f.Dim < other.Dim
	}
	return f.Val.Less(other.Val)
}

// String renders "dim" for none-valued features and "dim=value" otherwise.
func (f Feature) String() string {
	if f.Val.IsNone() {
		return f.Dim
	}
	return f.Dim + "=" + f.Val.String()
}

// Chunk is an opaque symbolic identifier for a stored concept instance.
type Chunk string

// Less orders Chunks lexicographically.
func (c Chunk) Less(other Chunk) bool { return c < other }

// String returns the chunk symbol.
func (c Chunk) String() string { return string(c) }

// Slot is a working-memory register index. Configured banks number their
// slots from 1.
type Slot int

// Less orders Slots ascending.
func (s Slot) Less(other Slot) bool { return s < other }

// String returns the decimal index.
func (s Slot) String() string { return strconv.Itoa(int(s)) }

// SlotKey addresses one chunk held in one slot.
type SlotKey struct {
	Slot  Slot
	Chunk Chunk
}

// Less orders SlotKeys by slot, then chunk.
func (k SlotKey) Less(other SlotKey) bool {
	if k.Slot != other.Slot {
		return k.Slot < other.Slot
	}
	return k.Chunk < other.Chunk
}

// String renders "slot:chunk".
func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%s", k.Slot, k.Chunk)
}

// pathRe matches /-separated segments of word characters (dashes allowed
// after the first character of a segment).
var pathRe = regexp.MustCompile(`^[0-9A-Za-z_][0-9A-Za-z_-]*(?:/[0-9A-Za-z_][0-9A-Za-z_-]*)*$`)

// IsPath reports whether s is a well-formed path-like identifier, the shape
// required of flag names, prefixes and dimensions.
func IsPath(s string) bool { return pathRe.MatchString(s) }

// Prefixed namespaces dim under prefix ("prefix/dim"), or returns dim
// unchanged when prefix is empty. Every dimension a configured store emits
// or consumes is composed this way; keeping prefixes collision-free across
// instances is the caller's responsibility.
func Prefixed(prefix, dim string) string {
	if prefix == "" {
		return dim
	}
	return prefix + "/" + dim
}
