package testutil

import (
	"fmt"

	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/numdict"
)

// CommandBuilder helps construct command feature maps with fluent chaining
// for tests. Example:
//
//	cmds := testutil.Commands().Set("focus", 1).Write(2, 1).Build()
//
// Chain only the commands you need; every added command carries weight 1
// unless added through Feature.
type CommandBuilder struct {
	prefix  string
	entries map[core.Feature]float64
	c       float64
}

// Commands creates a new builder for an empty command map with default 0.
func Commands() *CommandBuilder {
	return &CommandBuilder{entries: map[core.Feature]float64{}}
}

// Prefix namespaces every subsequently added dimension (chainable).
func (b *CommandBuilder) Prefix(p string) *CommandBuilder {
	b.prefix = p
	return b
}

// Set adds a "set-<flag>" command carrying value v (chainable).
func (b *CommandBuilder) Set(flag string, v int) *CommandBuilder {
	b.entries[core.FeatInt(core.Prefixed(b.prefix, "set-"+flag), v)] = 1
	return b
}

// Reset adds a none-valued "set-<flag>" reset command (chainable).
func (b *CommandBuilder) Reset(flag string) *CommandBuilder {
	b.entries[core.Feat(core.Prefixed(b.prefix, "set-"+flag))] = 1
	return b
}

// NoOp adds a zero-valued "set-<flag>" command, the flag identity (chainable).
func (b *CommandBuilder) NoOp(flag string) *CommandBuilder {
	b.entries[core.FeatInt(core.Prefixed(b.prefix, "set-"+flag), 0)] = 1
	return b
}

// Read adds a "read-<i>" command with value 1 (chainable).
func (b *CommandBuilder) Read(i int) *CommandBuilder {
	b.entries[core.FeatInt(core.Prefixed(b.prefix, fmt.Sprintf("read-%d", i)), 1)] = 1
	return b
}

// Write adds a "write-<i>" command carrying value v (chainable).
func (b *CommandBuilder) Write(i, v int) *CommandBuilder {
	b.entries[core.FeatInt(core.Prefixed(b.prefix, fmt.Sprintf("write-%d", i)), v)] = 1
	return b
}

// Feature adds an arbitrary feature at weight w (chainable).
func (b *CommandBuilder) Feature(f core.Feature, w float64) *CommandBuilder {
	b.entries[f] = w
	return b
}

// Default sets the built map's default weight (chainable).
func (b *CommandBuilder) Default(c float64) *CommandBuilder {
	b.c = c
	return b
}

// Build produces the command map.
func (b *CommandBuilder) Build() numdict.Dict[core.Feature] {
	return numdict.New(b.entries, b.c)
}

// Chunks builds a chunk signal from name/weight pairs, default 0.
func Chunks(weights map[string]float64) numdict.Dict[core.Chunk] {
	m := make(map[core.Chunk]float64, len(weights))
	for name, w := range weights {
		m[core.Chunk(name)] = w
	}

	return numdict.New(m, 0)
}

// Features builds a feature signal carrying every given feature at weight 1,
// default 0. Handy for stepping a register with its Nops vocabulary.
func Features(fs ...core.Feature) numdict.Dict[core.Feature] {
	m := make(map[core.Feature]float64, len(fs))
	for _, f := range fs {
		m[f] = 1
	}

	return numdict.New(m, 0)
}
