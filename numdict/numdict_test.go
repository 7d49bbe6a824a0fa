package numdict

import (
	"strconv"
	"testing"
)

// word is a minimal ordered key for exercising the algebra without pulling
// in domain types.
type word string

func (w word) Less(other word) bool { return w < other }
func (w word) String() string       { return string(w) }

// num is a second key kind for cross-key operations.
type num int

func (n num) Less(other num) bool { return n < other }
func (n num) String() string      { return strconv.Itoa(int(n)) }

func TestDict_ZeroValueUsable(t *testing.T) {
	var d Dict[word]
	if d.NumEntries() != 0 {
		t.Fatalf("expected empty zero value, got %d entries", d.NumEntries())
	}
	if got := d.Get("a"); got != 0 {
		t.Fatalf("expected default 0 for absent key, got %g", got)
	}
	if !d.Equal(New[word](nil, 0)) {
		t.Fatalf("zero value should equal explicit empty dict")
	}
}

func TestDict_NewCopiesEntries(t *testing.T) {
	src := map[word]float64{"a": 1, "b": -1}
	d := New(src, 0)
	src["a"] = 99
	if got := d.Get("a"); got != 1 {
		t.Fatalf("expected copy isolation, got %g", got)
	}
	// Items is a defensive copy as well.
	items := d.Items()
	items["b"] = 42
	if got := d.Get("b"); got != -1 {
		t.Fatalf("expected Items copy isolation, got %g", got)
	}
}

func TestDict_GetLookup(t *testing.T) {
	d := New(map[word]float64{"a": 0.5}, 0.1)
	if got := d.Get("a"); got != 0.5 {
		t.Fatalf("explicit entry: got %g", got)
	}
	if got := d.Get("zz"); got != 0.1 {
		t.Fatalf("absent key should read the default, got %g", got)
	}
	if _, ok := d.Lookup("zz"); ok {
		t.Fatalf("Lookup must not report absent keys as explicit")
	}
	if w, ok := d.Lookup("a"); !ok || w != 0.5 {
		t.Fatalf("Lookup explicit: got %g %v", w, ok)
	}
}

func TestDict_SqueezeDropsRedundantEntries(t *testing.T) {
	d := New(map[word]float64{"a": 0, "b": 1, "c": 0}, 0)
	s := d.Squeeze()
	if s.NumEntries() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", s.NumEntries())
	}
	for k, w := range s.Items() {
		if w == s.Default() {
			t.Fatalf("entry %s still equals default after squeeze", k)
		}
	}
	// Squeeze compares against the dict's own default, not zero.
	d2 := New(map[word]float64{"a": 1, "b": 2}, 1)
	if got := d2.Squeeze().NumEntries(); got != 1 {
		t.Fatalf("expected squeeze against default 1 to drop one entry, got %d", got)
	}
}

func TestDict_KeepAndMask(t *testing.T) {
	d := New(map[word]float64{"aa": 0.3, "ab": -2, "ba": 5}, 0.5)
	kept := d.Keep(func(k word) bool { return k[0] == 'a' })
	if kept.NumEntries() != 2 || kept.Default() != 0.5 {
		t.Fatalf("keep: got %s", kept)
	}
	m := kept.Mask()
	if m.Get("aa") != 1 || m.Get("ab") != 1 {
		t.Fatalf("mask must force explicit weights to 1, got %s", m)
	}
	if m.Default() != 0.5 {
		t.Fatalf("mask must leave default alone, got %g", m.Default())
	}
}

func TestDict_MulUnionWithDefaults(t *testing.T) {
	a := New(map[word]float64{"x": 2, "y": 3}, 1)
	b := New(map[word]float64{"y": 10, "z": 4}, 0)
	p := a.Mul(b)
	if got := p.Get("x"); got != 0 { // 2 * b.default
		t.Fatalf("x: got %g", got)
	}
	if got := p.Get("y"); got != 30 {
		t.Fatalf("y: got %g", got)
	}
	if got := p.Get("z"); got != 4 { // a.default * 4
		t.Fatalf("z: got %g", got)
	}
	if p.Default() != 0 {
		t.Fatalf("default must multiply, got %g", p.Default())
	}
}

func TestDict_MulByComplementMaskClears(t *testing.T) {
	// The register machines clear selected entries by multiplying with the
	// complement of a presence mask: masked entries go to 0, everything else
	// rides through on the complement's default 1.
	store := New(map[word]float64{"a": 1, "b": -1, "c": 1}, 0)
	mask := New(map[word]float64{"b": 1}, 0)
	kept := store.Mul(mask.SubFrom(1)).Squeeze()
	if _, ok := kept.Lookup("b"); ok {
		t.Fatalf("masked entry should be cleared, got %s", kept)
	}
	if kept.Get("a") != 1 || kept.Get("c") != 1 || kept.Default() != 0 {
		t.Fatalf("unmasked entries must survive, got %s", kept)
	}
}

func TestDict_MergeOverrides(t *testing.T) {
	a := New(map[word]float64{"x": 1, "y": 1}, 0.25)
	b := New(map[word]float64{"y": -1, "z": -1}, 9)
	m := a.Merge(b)
	if m.Get("x") != 1 || m.Get("y") != -1 || m.Get("z") != -1 {
		t.Fatalf("merge contents wrong: %s", m)
	}
	if m.Default() != 0.25 {
		t.Fatalf("merge must keep the receiver's default, got %g", m.Default())
	}
}

func TestDict_ScalarOps(t *testing.T) {
	d := New(map[word]float64{"a": -2, "b": 3}, 1)
	if got := d.Scale(2); got.Get("a") != -4 || got.Default() != 2 {
		t.Fatalf("scale: %s", got)
	}
	if got := d.Sub(1); got.Get("b") != 2 || got.Default() != 0 {
		t.Fatalf("sub: %s", got)
	}
	if got := d.SubFrom(1); got.Get("a") != 3 || got.Default() != 0 {
		t.Fatalf("subfrom: %s", got)
	}
	if got := d.Abs(); got.Get("a") != 2 || got.Default() != 1 {
		t.Fatalf("abs: %s", got)
	}
	g := d.Greater(0)
	if g.Get("a") != 0 || g.Get("b") != 1 || g.Default() != 1 {
		t.Fatalf("greater must binarize including the default: %s", g)
	}
}

func TestDict_WithKeysProjection(t *testing.T) {
	d := New(map[word]float64{"a": 1, "zz": 7}, -1)
	p := d.WithKeys("a", "b")
	if p.NumEntries() != 2 {
		t.Fatalf("projection must materialize exactly the given keys: %s", p)
	}
	if p.Get("a") != 1 || p.Get("b") != -1 {
		t.Fatalf("materialized weights wrong: %s", p)
	}
	if _, ok := p.Lookup("zz"); ok {
		t.Fatalf("keys outside the projection must be dropped: %s", p)
	}
	if got := p.SetDefault(0).Default(); got != 0 {
		t.Fatalf("setdefault: got %g", got)
	}
}

func TestDict_EqualIgnoresRedundantEntries(t *testing.T) {
	a := New(map[word]float64{"x": 1, "y": 0}, 0)
	b := New(map[word]float64{"x": 1}, 0)
	if !a.Equal(b) {
		t.Fatalf("equality must compare squeezed entries")
	}
	if a.Equal(New(map[word]float64{"x": 1}, 0.5)) {
		t.Fatalf("differing defaults must not compare equal")
	}
	if a.Equal(New(map[word]float64{"x": 2}, 0)) {
		t.Fatalf("differing weights must not compare equal")
	}
}

func TestDict_KeysAndExportOrdered(t *testing.T) {
	d := New(map[word]float64{"c": 3, "a": 1, "b": 2}, 0)
	ks := d.Keys()
	if len(ks) != 3 || ks[0] != "a" || ks[1] != "b" || ks[2] != "c" {
		t.Fatalf("keys must sort ascending: %v", ks)
	}
	ex := d.Export()
	if ex.Default != 0 || len(ex.Entries) != 3 {
		t.Fatalf("export shape wrong: %+v", ex)
	}
	for i, want := range []string{"a", "b", "c"} {
		if ex.Entries[i].Key != want {
			t.Fatalf("export order wrong at %d: %+v", i, ex.Entries)
		}
	}
	if got := d.String(); got != "{a: 1, b: 2, c: 3 | c=0}" {
		t.Fatalf("string form changed: %q", got)
	}
}
