// Package config declares a mesh in YAML: which register processes exist,
// how their ports are wired, and how the run is recorded and logged.
// Construction from a validated config happens in the root package.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/cogmesh/core"
	"github.com/hupe1980/cogmesh/logging"
)

// Process kinds understood by the loader.
const (
	KindFlags = "flags"
	KindSlots = "slots"
)

// Config is the file-borne mesh declaration.
type Config struct {
	Run       RunSpec       `yaml:"run"`
	Processes []ProcessSpec `yaml:"processes"`
	Wires     []WireSpec    `yaml:"wires,omitempty"`
}

// RunSpec configures recording and logging for a run.
type RunSpec struct {
	RecordDir   string `yaml:"record_dir"`   // empty disables recording
	RecordIndex bool   `yaml:"record_index"` // also maintain the sqlite index
	LogLevel    string `yaml:"log_level"`
}

// ProcessSpec declares one register process.
type ProcessSpec struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Prefix string   `yaml:"prefix,omitempty"`
	Flags  []string `yaml:"flags,omitempty"`
	Values []int    `yaml:"values,omitempty"`
	Slots  int      `yaml:"slots,omitempty"`
}

// WireSpec connects a source (process#port, or a bare external input name)
// to a target process#port.
type WireSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Load reads a mesh declaration. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Run: RunSpec{LogLevel: "info"},
	}
}

// Normalize trims and lowercases free-form fields in place.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.Run.RecordDir = strings.TrimSpace(c.Run.RecordDir)
	c.Run.LogLevel = strings.ToLower(strings.TrimSpace(c.Run.LogLevel))
	if c.Run.LogLevel == "" {
		c.Run.LogLevel = "info"
	}
	for i := range c.Processes {
		c.Processes[i].Name = strings.TrimSpace(c.Processes[i].Name)
		c.Processes[i].Kind = strings.ToLower(strings.TrimSpace(c.Processes[i].Kind))
		c.Processes[i].Prefix = strings.TrimSpace(c.Processes[i].Prefix)
		for j := range c.Processes[i].Flags {
			c.Processes[i].Flags[j] = strings.TrimSpace(c.Processes[i].Flags[j])
		}
	}
	for i := range c.Wires {
		c.Wires[i].From = strings.TrimSpace(c.Wires[i].From)
		c.Wires[i].To = strings.TrimSpace(c.Wires[i].To)
	}
}

// Validate checks the declaration field by field. Port-level wiring checks
// happen when the engine is built; here only the declared shapes are checked.
func (c Config) Validate() error {
	c.Normalize()
	switch c.Run.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("run.log_level %q must be one of debug, info, warn, error", c.Run.LogLevel)
	}
	if c.Run.RecordIndex && c.Run.RecordDir == "" {
		return fmt.Errorf("run.record_index requires run.record_dir")
	}
	if len(c.Processes) == 0 {
		return fmt.Errorf("processes must not be empty")
	}
	seen := map[string]bool{}
	for _, p := range c.Processes {
		if p.Name == "" {
			return fmt.Errorf("process name must not be empty")
		}
		if strings.Contains(p.Name, "#") {
			return fmt.Errorf("process name %q must not contain '#'", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate process name: %s", p.Name)
		}
		seen[p.Name] = true
		if p.Prefix != "" && !core.IsPath(p.Prefix) {
			return fmt.Errorf("process %s prefix %q is not a path", p.Name, p.Prefix)
		}
		switch p.Kind {
		case KindFlags:
			if len(p.Flags) == 0 {
				return fmt.Errorf("process %s must declare at least one flag", p.Name)
			}
			for _, f := range p.Flags {
				if f == "" {
					return fmt.Errorf("process %s has an empty flag name", p.Name)
				}
			}
			for _, v := range p.Values {
				if v < -1 || v > 1 {
					return fmt.Errorf("process %s value %d must be in [-1, 1]", p.Name, v)
				}
			}
			if p.Slots != 0 {
				return fmt.Errorf("process %s is a flag store and must not declare slots", p.Name)
			}
		case KindSlots:
			if p.Slots <= 0 {
				return fmt.Errorf("process %s slots must be > 0", p.Name)
			}
			if len(p.Flags) != 0 || len(p.Values) != 0 {
				return fmt.Errorf("process %s is a slot store and must not declare flags or values", p.Name)
			}
		default:
			return fmt.Errorf("process %s kind %q must be one of %s, %s", p.Name, p.Kind, KindFlags, KindSlots)
		}
	}
	for i, w := range c.Wires {
		if w.From == "" || w.To == "" {
			return fmt.Errorf("wires[%d] missing from/to", i)
		}
		toProc, _, ok := strings.Cut(w.To, "#")
		if !ok || toProc == "" {
			return fmt.Errorf("wires[%d] to %q must be process#port", i, w.To)
		}
		if !seen[toProc] {
			return fmt.Errorf("wires[%d] to process %q not found", i, toProc)
		}
		if fromProc, fromPort, hasPort := strings.Cut(w.From, "#"); hasPort {
			if fromProc == "" || fromPort == "" {
				return fmt.Errorf("wires[%d] from %q must be process#port or a bare input name", i, w.From)
			}
			if !seen[fromProc] {
				return fmt.Errorf("wires[%d] from process %q not found", i, fromProc)
			}
		}
	}
	return nil
}

// Level maps the configured log level onto the logging package's enum.
func (r RunSpec) Level() logging.LogLevel {
	switch r.LogLevel {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}

// ProcessByName looks a declared process up by name.
func (c Config) ProcessByName(name string) (ProcessSpec, bool) {
	for _, p := range c.Processes {
		if p.Name == name {
			return p, true
		}
	}
	return ProcessSpec{}, false
}
