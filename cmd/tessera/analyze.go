package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tessera/internal/diag"
	"tessera/internal/driver"
	"tessera/internal/trace"
	"tessera/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <image.yaml|image.msgpack>",
	Short: "Run the index expression and call graph checks over an IR image",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "text", "report format (text|yaml|msgpack)")
	analyzeCmd.Flags().StringSlice("entry", nil, "entry point functions (default from config: main)")
	analyzeCmd.Flags().StringSlice("checks", nil, "checks to run (flatten,blocked,indexvars,calltree,unreachable)")
	analyzeCmd.Flags().String("fail-on", "", "lowest severity that fails the run (info|warning|error)")
	analyzeCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	analyzeCmd.Flags().Bool("no-cache", false, "do not read or write the report cache")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ctx, span := trace.Begin(ctx, trace.ScopeDriver, "cmd:analyze")
	defer span.End("")

	format, err := driver.ParseFormat(settings.Output.Format)
	if err != nil {
		return err
	}
	failOn, err := diag.ParseSeverity(settings.Analysis.FailOn)
	if err != nil {
		return err
	}
	uiValue, err := stringFlag(cmd, "ui")
	if err != nil {
		return err
	}
	uiMode, err := parseSwitch("ui", uiValue)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	out := cmd.OutOrStdout()
	img, err := mustLoad(ctx, cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	opts := driver.OptionsFromConfig(settings)
	opts.Source = img.path
	opts.RunID = runID

	var cache *driver.ReportCache
	if !noCache {
		if cache, err = driver.OpenReportCache("tessera"); err != nil {
			trace.Point(ctx, trace.ScopeDriver, "cache", "disabled: "+err.Error())
			cache = nil
		}
	}
	key := driver.ReportKey(img.data, opts)

	report, bag, err := cachedAnalyze(ctx, cache, key, img, opts, uiMode.enabledFor(os.Stderr) && format == driver.FormatText)
	if err != nil {
		return err
	}

	switch format {
	case driver.FormatText:
		if err := ui.RenderText(out, report, ui.TextOptions{Color: useColor(settings.Output.Color)}); err != nil {
			return err
		}
		if bag.Len() > 0 {
			fmt.Fprintln(out)
		}
		if err := printDiagnostics(out, bag); err != nil {
			return err
		}
	default:
		if err := driver.Encode(out, report, format); err != nil {
			return err
		}
	}

	if bag.HasAtLeast(failOn) {
		return fmt.Errorf("analysis reported diagnostics at or above %s", settings.Analysis.FailOn)
	}
	return nil
}

func cachedAnalyze(ctx context.Context, cache *driver.ReportCache, key driver.Digest, img *image, opts driver.Options, withUI bool) (*driver.Report, *diag.Bag, error) {
	if cached, ok, err := cache.Get(key); err != nil {
		trace.Point(ctx, trace.ScopeDriver, "cache", "read failed: "+err.Error())
	} else if ok {
		trace.Point(ctx, trace.ScopeDriver, "cache", "hit "+key.String())
		bag, err := cached.Bag()
		if err == nil {
			return cached, bag, nil
		}
	}

	var (
		report *driver.Report
		bag    *diag.Bag
		err    error
	)
	if withUI {
		report, bag, err = runAnalyzeWithUI(ctx, "analyze "+img.path, img.prog, opts)
	} else {
		report, bag, err = driver.Analyze(ctx, img.prog, opts)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := cache.Put(key, report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write report cache: %v\n", err)
	}
	return report, bag, nil
}
