package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tessera/internal/config"
	"tessera/internal/driver"
	"tessera/internal/trace"
)

// runID identifies the current invocation in traces and reports.
var runID = driver.NewRunID()

// setupTracing builds the tracer described by cfg.Trace and attaches it to
// the command context. The returned cleanup flushes it; in ring mode the
// buffered events are dumped when the command failed.
func setupTracing(cmd *cobra.Command, cfg config.Config) (func(failed bool), error) {
	level, err := trace.ParseLevel(cfg.Trace.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}

	mode, err := trace.ParseMode(cfg.Trace.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	formatStr, err := stringFlag(cmd, "trace-format")
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: cfg.Trace.Output,
		RunID:      runID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	cleanup := func(failed bool) {
		if failed {
			dumpRing(cmd, tracer, format)
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

func dumpRing(cmd *cobra.Command, tracer trace.Tracer, format trace.Format) {
	var ring *trace.RingTracer
	switch t := tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		r, ok := t.Ring()
		if !ok {
			return
		}
		ring = r
	default:
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "trace: last %d events before failure\n", len(ring.Snapshot()))
	if err := ring.Dump(cmd.ErrOrStderr(), format); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
	}
}
