package numdict

import (
	"errors"
	"testing"
)

func TestTransformKeys_SumsCollisions(t *testing.T) {
	d := New(map[word]float64{"a1": 1, "a2": 2, "b1": 5}, 0.5)
	out, err := TransformKeys(d, func(k word) (word, bool) { return k[:1], true })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Get("a") != 3 || out.Get("b") != 5 {
		t.Fatalf("collisions must sum: %s", out)
	}
	if out.Default() != 0.5 {
		t.Fatalf("default must carry over, got %g", out.Default())
	}
}

func TestTransformKeys_UnmappedKeyFails(t *testing.T) {
	d := New(map[word]float64{"known": 1, "alien": 1}, 0)
	_, err := TransformKeys(d, func(k word) (word, bool) {
		if k == "alien" {
			return "", false
		}
		return k, true
	})
	if !errors.Is(err, ErrUnmappedKey) {
		t.Fatalf("expected ErrUnmappedKey, got %v", err)
	}
}

func TestSumBy_GroupsExplicitEntries(t *testing.T) {
	d := New(map[word]float64{"a1": 1, "a2": 2, "b1": -4}, 0.25)
	out := SumBy(d, func(k word) word { return k[:1] })
	if out.Get("a") != 3 || out.Get("b") != -4 {
		t.Fatalf("sums wrong: %s", out)
	}
	if out.Default() != 0.25 {
		t.Fatalf("default must carry over, got %g", out.Default())
	}
}

func TestMaxBy_KeepsGroupMaximum(t *testing.T) {
	d := New(map[word]float64{"a1": 1, "a2": 0.5, "b1": -1, "b2": -3}, 0)
	out := MaxBy(d, func(k word) word { return k[:1] })
	if out.Get("a") != 1 || out.Get("b") != -1 {
		t.Fatalf("maxima wrong: %s", out)
	}
}

func TestMaxBy_TieBreakDeterministic(t *testing.T) {
	// Two equal-weight candidates in one group: the lowest-ordered key wins
	// the strict comparison, so repeated runs agree exactly.
	d := New(map[word]float64{"a1": 0.7, "a2": 0.7, "a3": 0.2}, 0)
	first := MaxBy(d, func(word) Unit { return Unit{} })
	if first.Get(Unit{}) != 0.7 {
		t.Fatalf("max wrong: %s", first)
	}
	for i := 0; i < 50; i++ {
		again := MaxBy(d, func(word) Unit { return Unit{} })
		if !first.Equal(again) {
			t.Fatalf("run %d diverged: %s vs %s", i, first, again)
		}
	}
}

func TestCAMBy_WinnerZeroCompetitorsNegative(t *testing.T) {
	d := New(map[word]float64{"a1": 0.9, "a2": 0.4, "b1": 0.2}, 0)
	out := CAMBy(d, func(k word) word { return k[:1] })
	if out.Get("a1") != 0 {
		t.Fatalf("group winner must normalize to 0: %s", out)
	}
	if got := out.Get("a2"); got != 0.4-0.9 {
		t.Fatalf("competitor must go negative: got %g", got)
	}
	if out.Get("b1") != 0 {
		t.Fatalf("singleton group is its own winner: %s", out)
	}
	if out.Default() != 0 {
		t.Fatalf("default must ride through unchanged, got %g", out.Default())
	}
}

func TestCAMBy_UnitGroupNormalizesGlobally(t *testing.T) {
	d := New(map[word]float64{"x": 0.9, "y": 0.4}, 0)
	out := CAMBy(d, func(word) Unit { return Unit{} })
	if out.Get("x") != 0 || out.Get("y") != 0.4-0.9 {
		t.Fatalf("global normalization wrong: %s", out)
	}
}

func TestPut_PullsOtherThroughKeyFunction(t *testing.T) {
	store := New(map[word]float64{"a1": 1, "a2": 0.5, "b1": 1}, 0)
	sel := New(map[word]float64{"a": 1}, 0)
	out := Put(store, sel, func(k word) word { return k[:1] })
	if out.Get("a1") != 1 || out.Get("a2") != 0.5 {
		t.Fatalf("selected entries must keep their weights: %s", out)
	}
	// Zero-default other restricts: unselected groups multiply to 0 and
	// squeeze away.
	if got := out.Squeeze(); got.NumEntries() != 2 {
		t.Fatalf("unselected entries must restrict away: %s", got)
	}
	if out.Default() != 0 {
		t.Fatalf("default must multiply, got %g", out.Default())
	}
	// A nonzero-default other scales absent groups by the default instead.
	factor := New(map[word]float64{"a": 0}, 1)
	kept := Put(store, factor, func(k word) word { return k[:1] }).Squeeze()
	if kept.Get("b1") != 1 || kept.NumEntries() != 1 {
		t.Fatalf("complement factor must keep unnamed groups: %s", kept)
	}
}

func TestOuter_PairsExplicitKeys(t *testing.T) {
	rows := New(map[num]float64{1: 1, 2: 0.5}, 0)
	cols := New(map[word]float64{"x": 2}, 0)
	out := Outer(rows, cols, func(n num, w word) word {
		return word(n.String() + ":" + string(w))
	})
	if out.Get("1:x") != 2 || out.Get("2:x") != 1 {
		t.Fatalf("outer weights wrong: %s", out)
	}
	if out.NumEntries() != 2 || out.Default() != 0 {
		t.Fatalf("outer shape wrong: %s", out)
	}
}
