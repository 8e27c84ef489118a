// Package config loads tessera.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up from the working
// directory upwards.
const FileName = "tessera.toml"

// Check names accepted in [analysis].checks.
const (
	CheckFlatten     = "flatten"
	CheckBlocked     = "blocked"
	CheckIndexVars   = "indexvars"
	CheckCallTree    = "calltree"
	CheckUnreachable = "unreachable"
)

// AllChecks lists every check in report order.
var AllChecks = []string{CheckFlatten, CheckBlocked, CheckIndexVars, CheckCallTree, CheckUnreachable}

type Config struct {
	Analysis Analysis `toml:"analysis"`
	Trace    Trace    `toml:"trace"`
	Output   Output   `toml:"output"`

	// Path of the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Analysis struct {
	Entry          []string `toml:"entry"`
	Jobs           int      `toml:"jobs"`
	Checks         []string `toml:"checks"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	FailOn         string   `toml:"fail_on"`
}

type Trace struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type Output struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Default returns the configuration used when no tessera.toml exists.
func Default() Config {
	return Config{
		Analysis: Analysis{
			Entry:          []string{"main"},
			Jobs:           runtime.GOMAXPROCS(0),
			Checks:         slices.Clone(AllChecks),
			MaxDiagnostics: 100,
			FailOn:         "error",
		},
		Trace:  Trace{Level: "off", Mode: "stream", Output: "-"},
		Output: Output{Format: "text", Color: "auto"},
	}
}

// Enabled reports whether check is switched on.
func (c Config) Enabled(check string) bool {
	return slices.Contains(c.Analysis.Checks, check)
}

// Find looks for tessera.toml in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest tessera.toml, or the defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("analysis", "entry") && len(cfg.Analysis.Entry) == 0 {
		return Config{}, fmt.Errorf("%s: [analysis].entry must name at least one function", path)
	}
	if meta.IsDefined("analysis", "jobs") && cfg.Analysis.Jobs < 1 {
		return Config{}, fmt.Errorf("%s: [analysis].jobs must be positive", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values. CLI overrides call it again after
// applying flags.
func (c Config) Validate() error {
	var errs []error
	for _, check := range c.Analysis.Checks {
		if !slices.Contains(AllChecks, check) {
			errs = append(errs, fmt.Errorf("[analysis].checks: unknown check %q (expected: %s)", check, strings.Join(AllChecks, "|")))
		}
	}
	for _, e := range c.Analysis.Entry {
		if strings.TrimSpace(e) == "" {
			errs = append(errs, errors.New("[analysis].entry: empty function name"))
		}
	}
	if c.Analysis.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[analysis].max_diagnostics: %d (expected 0 for no limit, or a positive count)", c.Analysis.MaxDiagnostics))
	}
	if !slices.Contains([]string{"info", "warning", "error"}, c.Analysis.FailOn) {
		errs = append(errs, fmt.Errorf("[analysis].fail_on: %q (expected: info|warning|error)", c.Analysis.FailOn))
	}
	if !slices.Contains([]string{"text", "yaml", "msgpack"}, c.Output.Format) {
		errs = append(errs, fmt.Errorf("[output].format: %q (expected: text|yaml|msgpack)", c.Output.Format))
	}
	if !slices.Contains([]string{"auto", "on", "off"}, c.Output.Color) {
		errs = append(errs, fmt.Errorf("[output].color: %q (expected: auto|on|off)", c.Output.Color))
	}
	return errors.Join(errs...)
}
