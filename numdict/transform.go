package numdict

import (
	"errors"
	"fmt"
)

// ErrUnmappedKey signals that a key function was given an explicit entry
// outside its domain. Callers are expected to supply exhaustive key maps, so
// hitting this is a programming error, not a recoverable condition.
var ErrUnmappedKey = errors.New("key transform undefined for explicit key")

// TransformKeys remaps every explicit entry through kf; entries colliding on
// the same target key have their weights summed. kf reports whether the key
// is in its domain; an explicit entry it cannot map yields ErrUnmappedKey
// (the lowest-ordered offending key is reported). Default carried over.
func TransformKeys[K Key[K], L Key[L]](d Dict[K], kf func(K) (L, bool)) (Dict[L], error) {
	m := make(map[L]float64, len(d.m))
	for _, k := range d.Keys() {
		l, ok := kf(k)
		if !ok {
			return Dict[L]{}, fmt.Errorf("%w: %s", ErrUnmappedKey, k.String())
		}
		m[l] += d.m[k]
	}
	return wrap(m, d.c), nil
}

// SumBy partitions the explicit entries by group and sums each partition.
// Result keyed by group; default carried over.
func SumBy[K Key[K], G Key[G]](d Dict[K], group func(K) G) Dict[G] {
	m := make(map[G]float64)
	for k, w := range d.m {
		m[group(k)] += w
	}
	return wrap(m, d.c)
}

// MaxBy partitions the explicit entries by group and keeps each partition's
// maximum. Entries are visited in ascending key order and a partition's
// value only improves strictly, so equal-weight ties resolve to the
// lowest-ordered key. Default carried over.
func MaxBy[K Key[K], G Key[G]](d Dict[K], group func(K) G) Dict[G] {
	m := make(map[G]float64)
	for _, k := range d.Keys() {
		g, w := group(k), d.m[k]
		if cur, ok := m[g]; !ok || w > cur {
			m[g] = w
		}
	}
	return wrap(m, d.c)
}

// CAMBy competitively normalizes within groups: every explicit entry's
// weight has its group's maximum subtracted, so each group's winner maps to
// 0 and competitors go negative. Keys are preserved. The default belongs to
// no group and is carried over unchanged.
func CAMBy[K Key[K], G Key[G]](d Dict[K], group func(K) G) Dict[K] {
	peaks := make(map[G]float64)
	for k, w := range d.m {
		g := group(k)
		if cur, ok := peaks[g]; !ok || w > cur {
			peaks[g] = w
		}
	}
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = w - peaks[group(k)]
	}
	return wrap(m, d.c)
}

// Put pulls other through kf: every explicit entry of d is scaled by the
// weight other assigns to kf(key), explicit or default. With a zero-default
// other this restricts d to other's support, which is how command maps
// select store content. Result default is the product of defaults.
func Put[K Key[K], G Key[G]](d Dict[K], other Dict[G], kf func(K) G) Dict[K] {
	m := make(map[K]float64, len(d.m))
	for k, w := range d.m {
		m[k] = w * other.Get(kf(k))
	}
	return wrap(m, d.c*other.c)
}

// Outer pairs every explicit key of a with every explicit key of b through
// pair, weighting each compound key by the product. Compound keys colliding
// under pair are summed. Result default is the product of defaults.
func Outer[A Key[A], B Key[B], P Key[P]](a Dict[A], b Dict[B], pair func(A, B) P) Dict[P] {
	m := make(map[P]float64, len(a.m)*len(b.m))
	for ka, wa := range a.m {
		for kb, wb := range b.m {
			m[pair(ka, kb)] += wa * wb
		}
	}
	return wrap(m, a.c*b.c)
}
