package wm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/numdict"
)

// setPrefix is the reserved dimension prefix for flag commands: a flag
// named "focus" is driven through the "set-focus" command dimension, so no
// flag name may start with it.
const setPrefix = "set"

// FlagsOptions configures a Flags register.
type FlagsOptions struct {
	// Prefix namespaces every dimension the register emits or consumes
	// ("wm" turns flag "focus" into dimension "wm/focus"). Empty means no
	// namespace. Keeping prefixes collision-free across register
	// instances is the caller's responsibility.
	Prefix string

	// Values is the integer command value vocabulary, at most
	// {-1, 0, +1}. The none value is always part of the vocabulary in
	// addition to these. Defaults to {-1, 0, +1}.
	Values []int
}

type flagOp uint8

const (
	flagNop flagOp = iota
	flagReset
	flagSet
	flagSetNeg
)

// flagCmd is one decoded command: the flag feature it addresses and what it
// does to it.
type flagCmd struct {
	op   flagOp
	flag core.Feature
}

// Flags is a register of named ternary flags driven by weighted command
// signals. Its state is a weighted map over none-valued flag features with
// default 0; explicit weights are -1 or +1, zeros compact away.
//
// Flags is strict about its input: a command feature that does not decode
// against the declared vocabulary fails the step with ErrUnknownCommand.
type Flags struct {
	prefix  string
	names   []string
	values  []int
	cmdDims []string

	flags  []core.Feature
	decode map[core.Feature]flagCmd

	mu    sync.RWMutex
	state numdict.Dict[core.Feature]
}

// NewFlags builds a flag register over the given flag names, each a
// well-formed path not starting with the reserved "set" prefix. All flags
// start at 0.
func NewFlags(names []string, optFns ...func(o *FlagsOptions)) (*Flags, error) {
	opts := FlagsOptions{
		Values: []int{-1, 0, 1},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Prefix != "" && !core.IsPath(opts.Prefix) {
		return nil, fmt.Errorf("prefix %q: %w", opts.Prefix, ErrInvalidPrefix)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no flag names given: %w", ErrInvalidFlagName)
	}

	for _, v := range opts.Values {
		if v < -1 || v > 1 {
			return nil, fmt.Errorf("value %d: %w", v, ErrInvalidValues)
		}
	}

	f := &Flags{
		prefix: opts.Prefix,
		names:  append([]string(nil), names...),
		values: append([]int(nil), opts.Values...),
		decode: make(map[core.Feature]flagCmd, len(names)*(len(opts.Values)+1)),
	}

	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if !core.IsPath(name) {
			return nil, fmt.Errorf("flag %q is not a well-formed path: %w", name, ErrInvalidFlagName)
		}

		if strings.HasPrefix(name, setPrefix) {
			return nil, fmt.Errorf("flag %q starts with the reserved %q prefix: %w", name, setPrefix, ErrInvalidFlagName)
		}

		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("flag %q declared twice: %w", name, ErrInvalidFlagName)
		}
		seen[name] = struct{}{}

		flag := core.Feat(core.Prefixed(opts.Prefix, name))
		dim := core.Prefixed(opts.Prefix, setPrefix+"-"+name)

		f.flags = append(f.flags, flag)
		f.cmdDims = append(f.cmdDims, dim)

		f.decode[core.Feat(dim)] = flagCmd{op: flagReset, flag: flag}

		for _, v := range opts.Values {
			cmd := flagCmd{op: flagNop, flag: flag}
			switch v {
			case 1:
				cmd.op = flagSet
			case -1:
				cmd.op = flagSetNeg
			}
			f.decode[core.FeatInt(dim, v)] = cmd
		}
	}

	return f, nil
}

// Step advances the register by one tick and returns the post-update state.
// The command map is squeezed, then decoded: a none-valued command resets
// its flag to 0, value +1 sets it, value -1 sets it negative, and other
// declared values do nothing. Within one step, resets apply first, then
// positive sets, then negative sets, so a simultaneous reset and set lands
// on the set value and a simultaneous +1 and -1 lands on -1.
func (f *Flags) Step(commands numdict.Dict[core.Feature]) (numdict.Dict[core.Feature], error) {
	reset := make(map[core.Feature]float64)
	pos := make(map[core.Feature]float64)
	neg := make(map[core.Feature]float64)

	in := commands.Squeeze()
	for _, k := range in.Keys() {
		cmd, ok := f.decode[k]
		if !ok {
			return numdict.Dict[core.Feature]{}, fmt.Errorf("%w: %s", ErrUnknownCommand, k)
		}

		switch cmd.op {
		case flagReset:
			reset[cmd.flag] = 1
		case flagSet:
			pos[cmd.flag] = 1
		case flagSetNeg:
			neg[cmd.flag] = 1
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = f.state.
		Mul(numdict.New(reset, 0).SubFrom(1)).
		Squeeze().
		Merge(numdict.New(pos, 0)).
		Merge(numdict.New(neg, 0).Scale(-1))

	return f.state, nil
}

// State returns the current flag map: default 0, explicit weights in
// {-1, +1}.
func (f *Flags) State() numdict.Dict[core.Feature] {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.state
}

// Reset returns every flag to 0.
func (f *Flags) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = numdict.Dict[core.Feature]{}
}

// Flags returns the declared flag features in declaration order.
func (f *Flags) Flags() []core.Feature {
	return append([]core.Feature(nil), f.flags...)
}

// Commands returns the full command vocabulary: per flag, one none-valued
// reset command plus one command per declared integer value.
func (f *Flags) Commands() []core.Feature {
	cmds := make([]core.Feature, 0, len(f.cmdDims)*(len(f.values)+1))

	for _, dim := range f.cmdDims {
		cmds = append(cmds, core.Feat(dim))
		for _, v := range f.values {
			cmds = append(cmds, core.FeatInt(dim, v))
		}
	}

	return cmds
}

// Nops returns the identity command set: one value-0 command per flag.
// Stepping with exactly these leaves the state unchanged. The none-valued
// commands are not identities; they actively reset. Nil when 0 is outside
// the declared vocabulary.
func (f *Flags) Nops() []core.Feature {
	if !f.hasValue(0) {
		return nil
	}

	nops := make([]core.Feature, 0, len(f.cmdDims))
	for _, dim := range f.cmdDims {
		nops = append(nops, core.FeatInt(dim, 0))
	}

	return nops
}

func (f *Flags) hasValue(v int) bool {
	for _, w := range f.values {
		if w == v {
			return true
		}
	}

	return false
}
