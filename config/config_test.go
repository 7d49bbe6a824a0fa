package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/cogmesh/logging"
)

const sampleYAML = `
run:
  record_dir: runs/typing
  record_index: true
  log_level: debug
processes:
  - name: goal-flags
    kind: flags
    prefix: wm
    flags: [focus, rehearse]
    values: [-1, 0, 1]
  - name: store
    kind: slots
    prefix: wm
    slots: 7
wires:
  - from: cmds
    to: store#cmds
  - from: store#flags
    to: goal-flags#cmds
`

func validConfig() Config {
	return Config{
		Run: RunSpec{RecordDir: "runs/t", RecordIndex: true, LogLevel: "info"},
		Processes: []ProcessSpec{
			{Name: "goal-flags", Kind: KindFlags, Prefix: "wm", Flags: []string{"focus", "rehearse"}, Values: []int{-1, 0, 1}},
			{Name: "store", Kind: KindSlots, Prefix: "wm", Slots: 7},
		},
		Wires: []WireSpec{
			{From: "cmds", To: "store#cmds"},
			{From: "store#flags", To: "goal-flags#cmds"},
		},
	}
}

func TestLoad_SampleMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Run.RecordDir != "runs/typing" || !cfg.Run.RecordIndex {
		t.Fatalf("run spec mismatch: %+v", cfg.Run)
	}
	if cfg.Run.Level() != logging.LogLevelDebug {
		t.Fatalf("level = %v, want debug", cfg.Run.Level())
	}

	store, ok := cfg.ProcessByName("store")
	if !ok {
		t.Fatal("store process missing")
	}
	if store.Kind != KindSlots || store.Slots != 7 || store.Prefix != "wm" {
		t.Fatalf("store spec mismatch: %+v", store)
	}

	flags, ok := cfg.ProcessByName("goal-flags")
	if !ok {
		t.Fatal("goal-flags process missing")
	}
	if flags.Kind != KindFlags || len(flags.Flags) != 2 || len(flags.Values) != 3 {
		t.Fatalf("flags spec mismatch: %+v", flags)
	}

	if len(cfg.Wires) != 2 || cfg.Wires[0].From != "cmds" {
		t.Fatalf("wires mismatch: %+v", cfg.Wires)
	}
}

func TestLoad_EmptyPathDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Run.LogLevel != "info" {
		t.Fatalf("log level = %q, want info", cfg.Run.LogLevel)
	}
	if len(cfg.Processes) != 0 {
		t.Fatalf("expected no default processes, got %+v", cfg.Processes)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.yaml")
	raw := strings.Replace(sampleYAML, "kind: slots", "kind: queue", 1)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected load error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error %q should name the file", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"no processes", func(c *Config) { c.Processes = nil }, "processes must not be empty"},
		{"empty name", func(c *Config) { c.Processes[0].Name = " " }, "name must not be empty"},
		{"hash in name", func(c *Config) { c.Processes[0].Name = "a#b" }, "must not contain '#'"},
		{"duplicate name", func(c *Config) { c.Processes[1].Name = "goal-flags" }, "duplicate process name"},
		{"unknown kind", func(c *Config) { c.Processes[1].Kind = "queue" }, `kind "queue"`},
		{"bad prefix", func(c *Config) { c.Processes[0].Prefix = "w m" }, "is not a path"},
		{"flags without flags", func(c *Config) { c.Processes[0].Flags = nil }, "at least one flag"},
		{"empty flag name", func(c *Config) { c.Processes[0].Flags = []string{"focus", ""} }, "empty flag name"},
		{"value out of range", func(c *Config) { c.Processes[0].Values = []int{0, 2} }, "must be in [-1, 1]"},
		{"flags with slots", func(c *Config) { c.Processes[0].Slots = 3 }, "must not declare slots"},
		{"slots without count", func(c *Config) { c.Processes[1].Slots = 0 }, "slots must be > 0"},
		{"slots with flags", func(c *Config) { c.Processes[1].Flags = []string{"x"} }, "must not declare flags"},
		{"wire missing to", func(c *Config) { c.Wires[0].To = "" }, "missing from/to"},
		{"wire bare target", func(c *Config) { c.Wires[0].To = "store" }, "must be process#port"},
		{"wire unknown target", func(c *Config) { c.Wires[0].To = "nope#cmds" }, `process "nope" not found`},
		{"wire malformed source", func(c *Config) { c.Wires[1].From = "#flags" }, "bare input name"},
		{"wire unknown source", func(c *Config) { c.Wires[1].From = "nope#flags" }, `process "nope" not found`},
		{"index without dir", func(c *Config) { c.Run.RecordDir = "" }, "requires run.record_dir"},
		{"bad log level", func(c *Config) { c.Run.LogLevel = "verbose" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestNormalize_CleansFields(t *testing.T) {
	cfg := Config{
		Run: RunSpec{LogLevel: " INFO "},
		Processes: []ProcessSpec{
			{Name: " goal ", Kind: " Flags ", Flags: []string{" focus "}},
		},
		Wires: []WireSpec{{From: " cmds ", To: " goal#cmds "}},
	}
	cfg.Normalize()

	if cfg.Run.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.Run.LogLevel)
	}
	if cfg.Processes[0].Name != "goal" || cfg.Processes[0].Kind != KindFlags {
		t.Fatalf("process not normalized: %+v", cfg.Processes[0])
	}
	if cfg.Processes[0].Flags[0] != "focus" {
		t.Fatalf("flag not trimmed: %q", cfg.Processes[0].Flags[0])
	}
	if cfg.Wires[0].From != "cmds" || cfg.Wires[0].To != "goal#cmds" {
		t.Fatalf("wire not trimmed: %+v", cfg.Wires[0])
	}
}

func TestNormalize_DefaultsLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Run.LogLevel = ""
	cfg.Normalize()
	if cfg.Run.LogLevel != "info" {
		t.Fatalf("log level = %q, want info", cfg.Run.LogLevel)
	}
	if cfg.Run.Level() != logging.LogLevelInfo {
		t.Fatalf("level = %v, want info", cfg.Run.Level())
	}
}
