// Package driver runs the IR queries over every function of a program and
// assembles a Report.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v2"
	"golang.org/x/sync/errgroup"

	"tessera/internal/config"
	"tessera/internal/diag"
	"tessera/internal/ir"
	"tessera/internal/trace"
)

// Options controls one analysis run.
type Options struct {
	Entries        []string
	Checks         []string
	Jobs           int
	MaxDiagnostics int // zero keeps every diagnostic
	Source         string
	RunID          string
	Progress       ProgressSink
}

// OptionsFromConfig copies the [analysis] section of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Entries:        slices.Clone(cfg.Analysis.Entry),
		Checks:         slices.Clone(cfg.Analysis.Checks),
		Jobs:           cfg.Analysis.Jobs,
		MaxDiagnostics: cfg.Analysis.MaxDiagnostics,
	}
}

func (o Options) enabled(check string) bool {
	return slices.Contains(o.Checks, check)
}

// NewRunID returns a time-ordered identifier for one run.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type funcResult struct {
	report *FuncReport
	diags  []diag.Diagnostic
}

// Analyze runs the enabled checks over every function of prog. Functions are
// analyzed concurrently; the report lists them in program order and the
// diagnostics are sorted, so the output does not depend on scheduling.
//
// The returned error is only set when ctx is cancelled. Findings about the
// program are diagnostics.
func Analyze(ctx context.Context, prog *ir.Program, opts Options) (*Report, *diag.Bag, error) {
	if opts.RunID == "" {
		opts.RunID = NewRunID()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.Begin(ctx, trace.ScopeDriver, "analyze")
	span.WithExtra("run", opts.RunID).WithExtra("funcs", strconv.Itoa(len(prog.Funcs)))
	defer span.End("")

	report := &Report{
		RunID:   opts.RunID,
		Source:  opts.Source,
		Entries: slices.Clone(opts.Entries),
		Checks:  slices.Clone(opts.Checks),
	}

	results, err := analyzeFuncs(ctx, prog, opts, jobs)
	if err != nil {
		return nil, nil, err
	}

	all := diag.NewBag(0)
	for _, f := range prog.Funcs {
		res, ok := results.Load(f.Name)
		if !ok {
			continue
		}
		report.Funcs = append(report.Funcs, res.report)
		for _, d := range res.diags {
			all.Add(d)
		}
	}
	checkEntries(ctx, prog, opts, report, diag.NewBagReporter(all))

	all.Dedup()
	all.Sort()
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, d := range all.Items() {
		if !bag.Add(d) {
			report.Dropped++
		}
	}
	for _, d := range bag.Items() {
		report.Diagnostics = append(report.Diagnostics, recordOf(d))
	}
	return report, bag, nil
}

func analyzeFuncs(ctx context.Context, prog *ir.Program, opts Options, jobs int) (*xsync.MapOf[string, *funcResult], error) {
	ctx, span := trace.Begin(ctx, trace.ScopePass, "functions")
	defer span.End("")

	results := xsync.NewMapOf[*funcResult]()
	for _, f := range prog.Funcs {
		emit(opts.Progress, Event{Func: f.Name, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(prog.Funcs))))
	for _, f := range prog.Funcs {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				emit(opts.Progress, Event{Func: f.Name, Status: StatusError})
				return err
			}
			start := time.Now()
			res := analyzeFunc(gctx, prog, f, opts)
			results.Store(f.Name, res)
			status := StatusDone
			for _, d := range res.diags {
				if d.Severity == diag.SevError {
					status = StatusError
					break
				}
			}
			emit(opts.Progress, Event{Func: f.Name, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}
	return results, nil
}

// checkEntries resolves the entry points and reports the functions none of
// them reaches.
func checkEntries(ctx context.Context, prog *ir.Program, opts Options, report *Report, r diag.Reporter) {
	if !opts.enabled(config.CheckUnreachable) {
		return
	}
	_, span := trace.Begin(ctx, trace.ScopePass, "unreachable")
	defer span.End("")

	var entries []*ir.Func
	for _, name := range opts.Entries {
		f, ok := prog.Lookup(name)
		if !ok {
			diag.ReportError(r, diag.CallMissingEntry, name, fmt.Sprintf("entry point %s is not defined", name)).Emit()
			continue
		}
		entries = append(entries, f)
	}
	if len(entries) == 0 {
		return
	}
	unreachable, err := prog.Unreachable(entries...)
	if err != nil {
		if !opts.enabled(config.CheckCallTree) {
			diag.ReportError(r, diag.CallForeignCallee, "", err.Error()).Emit()
		}
		return
	}
	for _, f := range unreachable {
		report.Unreachable = append(report.Unreachable, f.Name)
		diag.ReportWarning(r, diag.CallUnreachable, f.Name,
			fmt.Sprintf("%s is not called from any entry point", f.Name)).Emit()
	}
}
