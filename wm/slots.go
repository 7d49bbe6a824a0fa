package wm

import (
	"fmt"
	"sync"

	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/numdict"
)

// SlotsOptions configures a Slots bank.
type SlotsOptions struct {
	// Prefix namespaces every dimension the bank emits or consumes.
	// Empty means no namespace.
	Prefix string
}

type slotOp uint8

const (
	slotNop slotOp = iota
	slotRead
	slotWrite
	slotClear
)

// slotCmd is one decoded command: the slot it addresses and what it does.
type slotCmd struct {
	op   slotOp
	slot core.Slot
}

// Slots is a bank of indexed working-memory registers, each conventionally
// holding at most one weighted chunk, driven by read and write command
// signals. Its state is a weighted map over (slot, chunk) keys with
// default 0. Keeping the selected signal down to one chunk per written slot
// is the caller's contract; the bank stores whatever it is handed.
//
// Slots is permissive about its input: command features that do not decode
// against the declared vocabulary are silently ignored.
type Slots struct {
	prefix    string
	n         int
	readDims  []string
	writeDims []string

	slots     []core.Slot
	decode    map[core.Feature]slotCmd
	fullFeat  map[core.Slot]core.Feature
	matchFeat map[core.Slot]core.Feature

	mu    sync.RWMutex
	state numdict.Dict[core.SlotKey]
}

// NewSlots builds a bank of n registers, numbered from 1. All slots start
// empty.
func NewSlots(n int, optFns ...func(o *SlotsOptions)) (*Slots, error) {
	opts := SlotsOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if n <= 0 {
		return nil, fmt.Errorf("%d slots: %w", n, ErrSlotCount)
	}

	if opts.Prefix != "" && !core.IsPath(opts.Prefix) {
		return nil, fmt.Errorf("prefix %q: %w", opts.Prefix, ErrInvalidPrefix)
	}

	s := &Slots{
		prefix:    opts.Prefix,
		n:         n,
		decode:    make(map[core.Feature]slotCmd, 5*n),
		fullFeat:  make(map[core.Slot]core.Feature, n),
		matchFeat: make(map[core.Slot]core.Feature, n),
	}

	for i := 1; i <= n; i++ {
		slot := core.Slot(i)
		s.slots = append(s.slots, slot)

		rd := core.Prefixed(opts.Prefix, fmt.Sprintf("read-%d", i))
		wr := core.Prefixed(opts.Prefix, fmt.Sprintf("write-%d", i))
		s.readDims = append(s.readDims, rd)
		s.writeDims = append(s.writeDims, wr)

		s.decode[core.FeatInt(rd, 0)] = slotCmd{op: slotNop, slot: slot}
		s.decode[core.FeatInt(rd, 1)] = slotCmd{op: slotRead, slot: slot}
		s.decode[core.FeatInt(wr, -1)] = slotCmd{op: slotClear, slot: slot}
		s.decode[core.FeatInt(wr, 0)] = slotCmd{op: slotNop, slot: slot}
		s.decode[core.FeatInt(wr, 1)] = slotCmd{op: slotWrite, slot: slot}

		s.fullFeat[slot] = core.Feat(core.Prefixed(opts.Prefix, fmt.Sprintf("full-%d", i)))
		s.matchFeat[slot] = core.Feat(core.Prefixed(opts.Prefix, fmt.Sprintf("match-%d", i)))
	}

	return s, nil
}

// Step advances the bank by one tick and reads it back.
//
// Update: a write-i command of value -1 clears slot i, +1 clears it and
// installs the chunks in selected (weighted by command times chunk weight),
// 0 is inert. Read: across the slots named by read-i=1 commands, the
// per-chunk maximum stored weight. Status flags cover every slot: full-i is
// +1 when slot i holds content and -1 when it does not, and match-i carries
// the competitively normalized weight of slot i's chunk under the supplied
// match signal (0 for the strongest-matching chunk, negative for the rest).
//
// All outputs are computed from the post-update state, so a clear is
// observable in the same step that commanded it.
func (s *Slots) Step(commands numdict.Dict[core.Feature], selected, match numdict.Dict[core.Chunk]) (numdict.Dict[core.Chunk], numdict.Dict[core.Feature], error) {
	rd := make(map[core.Slot]float64)
	ud := make(map[core.Slot]float64)
	wrt := make(map[core.Slot]float64)

	in := commands.Squeeze()
	for k, w := range in.Items() {
		cmd, ok := s.decode[k]
		if !ok {
			continue
		}

		switch cmd.op {
		case slotRead:
			rd[cmd.slot] += w
		case slotWrite:
			wrt[cmd.slot] += w
			ud[cmd.slot] += w
		case slotClear:
			ud[cmd.slot] += w
		}
	}

	written := numdict.Outer(numdict.New(wrt, 0), selected.Squeeze(), pairSlotChunk)

	s.mu.Lock()
	next := numdict.Put(s.state, numdict.New(ud, 0).SubFrom(1), slotOf).
		Squeeze().
		Merge(written)
	s.state = next
	s.mu.Unlock()

	chunks := numdict.MaxBy(numdict.Put(next, numdict.New(rd, 0), slotOf).Squeeze(), chunkOf)

	full, err := numdict.TransformKeys(
		numdict.SumBy(next.Abs(), slotOf).
			Greater(0).
			Scale(2).
			Sub(1).
			WithKeys(s.slots...).
			SetDefault(0),
		s.fullFlag,
	)
	if err != nil {
		return numdict.Dict[core.Chunk]{}, numdict.Dict[core.Feature]{}, err
	}

	cam := numdict.CAMBy(match.Squeeze(), func(core.Chunk) numdict.Unit { return numdict.Unit{} })

	agree, err := numdict.TransformKeys(
		numdict.Put(next.Mask(), cam, chunkOf).Squeeze(),
		s.matchFlag,
	)
	if err != nil {
		return numdict.Dict[core.Chunk]{}, numdict.Dict[core.Feature]{}, err
	}

	return chunks, full.Merge(agree), nil
}

// State returns the current store, keyed by slot and chunk, default 0.
func (s *Slots) State() numdict.Dict[core.SlotKey] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Reset empties every slot.
func (s *Slots) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = numdict.Dict[core.SlotKey]{}
}

// NumSlots returns the bank size.
func (s *Slots) NumSlots() int { return s.n }

// Commands returns the full command vocabulary: read-i over {0, 1} and
// write-i over {-1, 0, +1} for every slot.
func (s *Slots) Commands() []core.Feature {
	cmds := make([]core.Feature, 0, 5*s.n)

	for i := range s.slots {
		cmds = append(cmds,
			core.FeatInt(s.readDims[i], 0),
			core.FeatInt(s.readDims[i], 1),
			core.FeatInt(s.writeDims[i], -1),
			core.FeatInt(s.writeDims[i], 0),
			core.FeatInt(s.writeDims[i], 1),
		)
	}

	return cmds
}

// Nops returns the identity command set: read-i=0 and write-i=0 for every
// slot.
func (s *Slots) Nops() []core.Feature {
	nops := make([]core.Feature, 0, 2*s.n)

	for i := range s.slots {
		nops = append(nops,
			core.FeatInt(s.readDims[i], 0),
			core.FeatInt(s.writeDims[i], 0),
		)
	}

	return nops
}

// Flags returns the status features the bank emits: full-i for every slot,
// then match-i for every slot.
func (s *Slots) Flags() []core.Feature {
	fs := make([]core.Feature, 0, 2*s.n)

	for _, slot := range s.slots {
		fs = append(fs, s.fullFeat[slot])
	}

	for _, slot := range s.slots {
		fs = append(fs, s.matchFeat[slot])
	}

	return fs
}

func (s *Slots) fullFlag(i core.Slot) (core.Feature, bool) {
	f, ok := s.fullFeat[i]
	return f, ok
}

func (s *Slots) matchFlag(k core.SlotKey) (core.Feature, bool) {
	f, ok := s.matchFeat[k.Slot]
	return f, ok
}

func slotOf(k core.SlotKey) core.Slot { return k.Slot }

func chunkOf(k core.SlotKey) core.Chunk { return k.Chunk }

func pairSlotChunk(i core.Slot, ch core.Chunk) core.SlotKey {
	return core.SlotKey{Slot: i, Chunk: ch}
}
