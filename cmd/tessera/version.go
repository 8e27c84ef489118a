package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tessera/internal/driver"
	"tessera/internal/irfile"
	"tessera/internal/version"
)

// buildInfo is what `tessera version` reports. The schema numbers tell
// whether images and cached reports from another build are readable.
type buildInfo struct {
	Version     string `json:"version" yaml:"version"`
	Commit      string `json:"commit" yaml:"commit"`
	Built       string `json:"built" yaml:"built"`
	IRSchema    int    `json:"ir_schema" yaml:"ir_schema"`
	CacheSchema uint16 `json:"cache_schema" yaml:"cache_schema"`
	Go          string `json:"go" yaml:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tessera build information",
	Args:  cobra.NoArgs,
	// No config or tracer needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := stringFlag(cmd, "format")
		if err != nil {
			return err
		}
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("failed to get short flag: %w", err)
		}
		out := cmd.OutOrStdout()
		if short {
			_, err := fmt.Fprintln(out, currentBuild().Version)
			return err
		}
		return writeBuildInfo(out, currentBuild(), strings.ToLower(format))
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	versionCmd.Flags().Bool("short", false, "print the version number only")
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:     orUnknown(version.Version),
		Commit:      orUnknown(version.GitCommit),
		Built:       orUnknown(version.BuildDate),
		IRSchema:    irfile.SchemaVersion,
		CacheSchema: driver.ReportCacheSchema,
		Go:          runtime.Version(),
	}
}

func writeBuildInfo(out io.Writer, info buildInfo, format string) error {
	switch format {
	case "pretty":
		fmt.Fprintf(out, "tessera %s\n", version.Colored())
		fmt.Fprintf(out, "  commit        %s\n", info.Commit)
		fmt.Fprintf(out, "  built         %s\n", info.Built)
		fmt.Fprintf(out, "  ir schema     %d\n", info.IRSchema)
		fmt.Fprintf(out, "  cache schema  %d\n", info.CacheSchema)
		_, err := fmt.Fprintf(out, "  go            %s\n", info.Go)
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|yaml)", format)
	}
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
