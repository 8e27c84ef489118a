package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tessera/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Index expression IR analyzer",
	Long: `Tessera loads tensor IR programs and reports on their index expressions:
free and reduction variables, flattening and blocking, and call trees.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// cleanup is set by setupCommand and run once the command returns.
var cleanup = func(failed bool) {}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(calltreeCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to tessera.toml (default: nearest one above the working directory)")
	flags.String("color", "", "colorize output (auto|on|off)")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics to show")
	flags.Int("jobs", 0, "max parallel workers (0=from config)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "", "trace storage mode (stream|ring|both)")
	flags.String("trace-format", "", "trace line format (text|json)")

	err := rootCmd.Execute()
	cleanup(err != nil)
	if err != nil {
		os.Exit(1)
	}
}

// setupCommand resolves the configuration, applies the color mode and
// attaches a tracer to the command context.
func setupCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	settings = cfg
	color.NoColor = !useColor(cfg.Output.Color)

	done, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	cleanup = done
	return nil
}

// useColor resolves the configured color mode for stdout. The mode was
// validated with the rest of the config.
func useColor(mode string) bool {
	s, err := parseSwitch("color", mode)
	return err == nil && s.enabledFor(os.Stdout)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func stringFlag(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}
