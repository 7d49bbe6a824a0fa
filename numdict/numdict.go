package numdict

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Key constrains the key types a Dict can carry: comparable (usable as a map
// key), totally ordered via Less, and printable via String for deterministic
// exports and debugging.
type Key[K any] interface {
	comparable
	Less(other K) bool
	String() string
}

// Unit is the single-valued key type. Grouping by Unit aggregates a whole
// Dict into one bucket (global sum, max or competitive normalization).
type Unit struct{}

// Less reports false; Unit has one value.
func (Unit) Less(Unit) bool { return false }

// String returns "()".
func (Unit) String() string { return "()" }

// Dict is a sparse weighted map: explicit entries over K plus a default
// weight c carried by every absent key. The zero value is the empty map with
// c = 0. Dict values are immutable; every operation returns a new Dict, so
// returned values are safe to retain and share across steps.
type Dict[K Key[K]] struct {
	m map[K]float64
	c float64
}

// New builds a Dict from the given entries and default weight. The entries
// map is copied; the caller keeps ownership of its argument.
func New[K Key[K]](entries map[K]float64, c float64) Dict[K] {
	m := make(map[K]float64, len(entries))
	for k, w := range entries {
		m[k] = w
	}
	return Dict[K]{m: m, c: c}
}

// wrap adopts m without copying. Internal constructor for operation results
// that own their map.
func wrap[K Key[K]](m map[K]float64, c float64) Dict[K] {
	return Dict[K]{m: m, c: c}
}

// Get returns the weight for k: the explicit entry if present, the default
// otherwise.
func (d Dict[K]) Get(k K) float64 {
	if w, ok := d.m[k]; ok {
		return w
	}
	return d.c
}

// Lookup returns the explicit weight for k and whether k is explicitly stored.
func (d Dict[K]) Lookup(k K) (float64, bool) {
	w, ok := d.m[k]
	return w, ok
}

// Default returns the weight carried by absent keys.
func (d Dict[K]) Default() float64 { return d.c }

// NumEntries returns the number of explicit entries.
func (d Dict[K]) NumEntries() int { return len(d.m) }

// Keys returns the explicit keys in ascending order.
func (d Dict[K]) Keys() []K {
	ks := make([]K, 0, len(d.m))
	for k := range d.m {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].Less(ks[j]) })
	return ks
}

// Items returns a copy of the explicit entries. Mutating the returned map
// does not affect the Dict.
func (d Dict[K]) Items() map[K]float64 {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = w
	}
	return m
}

// Equal reports whether two Dicts agree: defaults equal and explicit entries
// equal after squeezing (entries redundant with the default do not count).
func (d Dict[K]) Equal(other Dict[K]) bool {
	if d.c != other.c {
		return false
	}
	a, b := d.Squeeze(), other.Squeeze()
	if len(a.m) != len(b.m) {
		return false
	}
	for k, w := range a.m {
		if bw, ok := b.m[k]; !ok || bw != w {
			return false
		}
	}
	return true
}

// Keep returns the sub-map of entries whose key satisfies pred. Default
// unchanged.
func (d Dict[K]) Keep(pred func(K) bool) Dict[K] {
	m := make(map[K]float64)
	for k, w := range d.m {
		if pred(k) {
			m[k] = w
		}
	}
	return wrap(m, d.c)
}

// Mask forces every explicit weight to 1, binarizing presence. Default
// unchanged.
func (d Dict[K]) Mask() Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k := range d.m {
		m[k] = 1
	}
	return wrap(m, d.c)
}

// Squeeze drops every explicit entry whose weight equals the default,
// restoring the invariant that explicit entries carry information.
func (d Dict[K]) Squeeze() Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		if w != d.c {
			m[k] = w
		}
	}
	return wrap(m, d.c)
}

// Mul multiplies pointwise over the union of explicit keys; a key absent
// from one side reads through that side's default. Result default is the
// product of defaults.
func (d Dict[K]) Mul(other Dict[K]) Dict[K] {
	m := make(map[K]float64, len(d.m)+len(other.m))
	for k, w := range d.m {
		m[k] = w * other.Get(k)
	}
	for k, w := range other.m {
		if _, ok := d.m[k]; !ok {
			m[k] = d.c * w
		}
	}
	return wrap(m, d.c*other.c)
}

// Merge unions the explicit entries, other's overriding on collision. Result
// default is the receiver's.
func (d Dict[K]) Merge(other Dict[K]) Dict[K] {
	m := make(map[K]float64, len(d.m)+len(other.m))
	for k, w := range d.m {
		m[k] = w
	}
	for k, w := range other.m {
		m[k] = w
	}
	return wrap(m, d.c)
}

// Scale multiplies every weight, default included, by s.
func (d Dict[K]) Scale(s float64) Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = w * s
	}
	return wrap(m, d.c*s)
}

// Sub subtracts s from every weight, default included.
func (d Dict[K]) Sub(s float64) Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = w - s
	}
	return wrap(m, d.c-s)
}

// SubFrom subtracts every weight, default included, from s. SubFrom(1) turns
// a presence mask into its complement (explicit entries 0, background 1).
func (d Dict[K]) SubFrom(s float64) Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = s - w
	}
	return wrap(m, s-d.c)
}

// Abs replaces every weight, default included, by its absolute value.
func (d Dict[K]) Abs() Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = math.Abs(w)
	}
	return wrap(m, math.Abs(d.c))
}

// Greater maps every weight, default included, to 1 where it exceeds t and
// 0 otherwise.
func (d Dict[K]) Greater(t float64) Dict[K] {
	b := func(w float64) float64 {
		if w > t {
			return 1
		}
		return 0
	}
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = b(w)
	}
	return wrap(m, b(d.c))
}

// WithKeys projects the Dict onto exactly the given key set: each given key
// becomes explicit at its current (explicit or default) weight, and entries
// outside the set are dropped. Default unchanged.
func (d Dict[K]) WithKeys(keys ...K) Dict[K] {
	m := make(map[K]float64, len(keys))
	for _, k := range keys {
		m[k] = d.Get(k)
	}
	return wrap(m, d.c)
}

// SetDefault replaces the default weight, leaving explicit entries as they
// are. Entries equal to the new default remain explicit until squeezed.
func (d Dict[K]) SetDefault(c float64) Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = w
	}
	return wrap(m, c)
}

// String renders the entries in key order followed by the default, for
// logging and test failure output.
func (d Dict[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range d.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %g", k.String(), d.m[k])
	}
	fmt.Fprintf(&sb, " | c=%g}", d.c)
	return sb.String()
}

// ExportEntry is one key/weight pair in an Export, with the key rendered to
// its string form.
type ExportEntry struct {
	Key    string  `json:"key"`
	Weight float64 `json:"weight"`
}

// Export is the serialization-ready view of a Dict: default plus entries in
// ascending key order. It is what the trace stream records per signal.
type Export struct {
	Default float64       `json:"default"`
	Entries []ExportEntry `json:"entries"`
}

// Export produces the sorted, JSON-ready view of the Dict.
func (d Dict[K]) Export() Export {
	ks := d.Keys()
	entries := make([]ExportEntry, 0, len(ks))
	for _, k := range ks {
		entries = append(entries, ExportEntry{Key: k.String(), Weight: d.m[k]})
	}
	return Export{Default: d.c, Entries: entries}
}
