// Package trace persists the per-tick signal stream of a run.
//
// The engine hands every completed tick to a core.Recorder; this package
// provides the implementations:
//
//   - Writer: zstd-compressed JSONL, one line per tick, one file per run
//   - Index: a sqlite secondary index for counting and slicing runs
//   - Nop: discards everything
//   - Multi: fans one stream out to several recorders
//
// The JSONL stream is the source of truth; the index is derived and can be
// rebuilt from it. Records follow schemas/tick_record.schema.json.
package trace
