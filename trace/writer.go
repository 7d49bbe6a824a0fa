package trace

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/cogmesh/core"
)

// Writer records the tick stream as zstd-compressed JSONL, one file per run
// under its base directory. Switching run IDs mid-stream rotates to a fresh
// file, so a single Writer can outlive engine resets.
type Writer struct {
	baseDir string

	mu       sync.Mutex
	curRunID string
	f        *os.File
	enc      *zstd.Encoder
	w        *bufio.Writer
}

var _ core.Recorder = (*Writer)(nil)

// NewWriter creates a Writer rooted at baseDir. The directory is created on
// the first record.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// RecordTick appends one JSONL line for the record, rotating to the run's
// file first if needed.
func (w *Writer) RecordTick(_ context.Context, rec core.TickRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rec.RunID != w.curRunID || w.f == nil {
		if err := w.rotateLocked(rec.RunID); err != nil {
			return err
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the current run file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(runID string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := w.pathForRun(runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curRunID = runID
	return nil
}

func (w *Writer) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

func (w *Writer) pathForRun(runID string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("events-%s.jsonl.zst", runID))
}

// ReadRun decodes every record of a run previously written under baseDir, in
// stream order. Tooling and tests use it; the engine never reads traces back.
func ReadRun(baseDir, runID string) ([]core.TickRecord, error) {
	path := filepath.Join(baseDir, fmt.Sprintf("events-%s.jsonl.zst", runID))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var recs []core.TickRecord
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec core.TickRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(recs)+1, err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
