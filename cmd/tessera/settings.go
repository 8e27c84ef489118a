package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tessera/internal/config"
)

// settings is the configuration of the running command after flag overrides.
var settings = config.Default()

// resolveConfig loads tessera.toml (explicit or discovered) and applies the
// persistent flags the user set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := stringFlag(cmd, "config")
	if err != nil {
		return config.Config{}, err
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if err := applyFlags(cmd, &cfg); err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	setString := func(name string, dst *string) error {
		if !changed(name) {
			return nil
		}
		v, err := stringFlag(cmd, name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	if err := setString("color", &cfg.Output.Color); err != nil {
		return err
	}
	if changed("max-diagnostics") {
		limit, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		cfg.Analysis.MaxDiagnostics = limit
	}
	if changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
		if jobs > 0 {
			cfg.Analysis.Jobs = jobs
		}
	}
	if changed("trace") {
		if err := setString("trace", &cfg.Trace.Output); err != nil {
			return err
		}
		if cfg.Trace.Level == "off" && !changed("trace-level") {
			cfg.Trace.Level = "phase"
		}
	}
	if err := setString("trace-level", &cfg.Trace.Level); err != nil {
		return err
	}
	if err := setString("trace-mode", &cfg.Trace.Mode); err != nil {
		return err
	}

	// Command-local overrides, registered only on analyze.
	if changed("entry") {
		entry, err := flags.GetStringSlice("entry")
		if err != nil {
			return fmt.Errorf("failed to get entry flag: %w", err)
		}
		cfg.Analysis.Entry = entry
	}
	if changed("checks") {
		checks, err := flags.GetStringSlice("checks")
		if err != nil {
			return fmt.Errorf("failed to get checks flag: %w", err)
		}
		cfg.Analysis.Checks = normalizeList(checks)
	}
	if err := setString("fail-on", &cfg.Analysis.FailOn); err != nil {
		return err
	}
	if cmd.Name() == "analyze" {
		if err := setString("format", &cfg.Output.Format); err != nil {
			return err
		}
	}
	return nil
}
