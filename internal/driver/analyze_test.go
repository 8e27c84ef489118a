package driver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/config"
	"tessera/internal/diag"
	"tessera/internal/ir"
)

// sample builds:
//
//	main   calls helper and rec, assigns a sum of two index expressions
//	helper copies a blocked tensor
//	rec    calls itself
//	dead   prints an indexed tensor outside any index expression
func sample() *ir.Program {
	n3 := ir.Domain(ir.Range(3))
	mat := ir.Tensor(ir.Float, n3, n3)
	i := ir.NewFreeVar("i", n3)
	j := ir.NewFreeVar("j", n3)
	k := ir.NewReductionVar("k", n3, ir.ReduceSum)
	a := ir.NewVar("A", mat)
	b := ir.NewVar("B", mat)
	x := ir.NewVar("X", mat)
	mm := func() *ir.Expr {
		prod := ir.Binary(ir.ExprMul, ir.Indexed(ir.Ref(a), i, k), ir.Indexed(ir.Ref(b), k, j))
		return ir.IndexExpression([]*ir.IndexVar{i, j}, prod)
	}

	blocked := ir.Tensor(ir.Float, ir.Domain(ir.Range(2), ir.Range(3)))
	bv := ir.NewVar("bv", blocked)
	bw := ir.NewVar("bw", blocked)

	helper := &ir.Func{Name: "helper", Args: []*ir.Var{bw}, Results: []*ir.Var{bv},
		Body: ir.Block(ir.Assign(bv, ir.Ref(bw)))}
	rec := &ir.Func{Name: "rec"}
	rec.Body = ir.Block(ir.CallStmt(nil, rec))
	dead := &ir.Func{Name: "dead", Args: []*ir.Var{a},
		Body: ir.Block(ir.Print(ir.Indexed(ir.Ref(a), i)))}
	main := &ir.Func{Name: "main", Args: []*ir.Var{a, b}, Results: []*ir.Var{x},
		Body: ir.Block(
			ir.CallStmt(nil, helper),
			ir.CallStmt(nil, rec),
			ir.Assign(x, ir.Binary(ir.ExprAdd, mm(), mm())),
		)}
	return &ir.Program{Funcs: []*ir.Func{main, helper, rec, dead}}
}

func allChecks() Options {
	return Options{
		Entries:        []string{"main"},
		Checks:         config.AllChecks,
		Jobs:           4,
		MaxDiagnostics: 100,
	}
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Func+":"+d.Code.ID())
	}
	return out
}

func TestAnalyzeSample(t *testing.T) {
	report, bag, err := Analyze(context.Background(), sample(), allChecks())
	require.NoError(t, err)

	require.Len(t, report.Funcs, 4)
	assert.NotEmpty(t, report.RunID)

	mm := "(i,j) (A(i,+k) * B(+k,j))"
	main, ok := report.Func("main")
	require.True(t, ok)
	assert.False(t, main.Flattened)
	assert.Equal(t, []string{"X = (" + mm + " + " + mm + ");"}, main.NonFlat)
	assert.Equal(t, []IndexExprReport{
		{Expr: mm, Free: []string{"i", "j"}, Reduction: []string{"k"}},
		{Expr: mm, Free: []string{"i", "j"}, Reduction: []string{"k"}},
	}, main.IndexExprs)
	assert.Equal(t, []string{"main", "helper", "rec"}, main.CallTree)
	assert.False(t, main.Recursive)

	helper, _ := report.Func("helper")
	assert.True(t, helper.Flattened)
	assert.Equal(t, []string{"bv = bw;"}, helper.BlockedWrites)

	rec, _ := report.Func("rec")
	assert.True(t, rec.Recursive)

	assert.Equal(t, []string{"dead"}, report.Unreachable)

	assert.Equal(t, []string{
		"dead:ANA1005",
		"dead:CAL2001",
		"helper:ANA1002",
		"main:ANA1001",
		"rec:CAL2002",
	}, codes(bag))
	assert.True(t, bag.HasErrors())
	assert.Len(t, report.Diagnostics, 5)
	assert.Equal(t, "error", report.Diagnostics[0].Severity)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	prog := sample()
	serial := allChecks()
	serial.Jobs = 1
	parallel := allChecks()
	parallel.Jobs = 16

	r1, _, err := Analyze(context.Background(), prog, serial)
	require.NoError(t, err)
	r2, _, err := Analyze(context.Background(), prog, parallel)
	require.NoError(t, err)

	if diff := cmp.Diff(r1, r2, cmpopts.IgnoreFields(Report{}, "RunID")); diff != "" {
		t.Fatalf("reports differ (-serial +parallel):\n%s", diff)
	}
}

func TestAnalyzeMissingEntry(t *testing.T) {
	opts := allChecks()
	opts.Entries = []string{"main", "start"}
	_, bag, err := Analyze(context.Background(), sample(), opts)
	require.NoError(t, err)
	assert.Contains(t, codes(bag), "start:CAL2003")
}

func TestAnalyzeOnlyCallTree(t *testing.T) {
	opts := allChecks()
	opts.Checks = []string{config.CheckCallTree}
	report, bag, err := Analyze(context.Background(), sample(), opts)
	require.NoError(t, err)

	main, _ := report.Func("main")
	assert.True(t, main.Flattened, "flatten check disabled")
	assert.Empty(t, main.IndexExprs)
	assert.Empty(t, report.Unreachable)
	assert.Equal(t, []string{"rec:CAL2002"}, codes(bag))
}

func TestAnalyzeDropsPastLimit(t *testing.T) {
	opts := allChecks()
	opts.MaxDiagnostics = 2
	report, bag, err := Analyze(context.Background(), sample(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, 3, report.Dropped)
	assert.Equal(t, []string{"dead:ANA1005", "dead:CAL2001"}, codes(bag))
}

func TestAnalyzeInvalidIndexExpr(t *testing.T) {
	n3 := ir.Domain(ir.Range(3))
	i := ir.NewFreeVar("i", n3)
	j := ir.NewFreeVar("j", n3)
	a := ir.NewVar("A", ir.Tensor(ir.Float, n3, n3))
	y := ir.NewVar("y", ir.Tensor(ir.Float, n3))
	// j is free in the value but missing from the result.
	bad := ir.IndexExpression([]*ir.IndexVar{i}, ir.Indexed(ir.Ref(a), i, j))
	f := &ir.Func{Name: "main", Args: []*ir.Var{a}, Results: []*ir.Var{y},
		Body: ir.Block(ir.Assign(y, bad))}

	_, bag, err := Analyze(context.Background(), &ir.Program{Funcs: []*ir.Func{f}}, allChecks())
	require.NoError(t, err)
	require.Equal(t, []string{"main:ANA1003"}, codes(bag))
	d := bag.Items()[0]
	assert.Contains(t, d.Message, "free variable j")
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "y = (i) A(i,j);", d.Notes[0].Msg)
}

func TestAnalyzeChecksConditions(t *testing.T) {
	n3 := ir.Domain(ir.Range(3))
	i := ir.NewFreeVar("i", n3)
	k := ir.NewReductionVar("k", n3, ir.ReduceSum)
	v := ir.NewVar("v", ir.Tensor(ir.Float, n3))
	sum := ir.IndexExpression(nil, ir.Indexed(ir.Ref(v), k))
	f := &ir.Func{Name: "main", Args: []*ir.Var{v},
		Body: ir.Block(
			ir.While(ir.Binary(ir.ExprLt, sum, ir.IntLit(1)), ir.Pass()),
			ir.If(ir.Binary(ir.ExprGt, ir.Indexed(ir.Ref(v), i), ir.IntLit(0)), ir.Pass(), nil),
		)}

	report, bag, err := Analyze(context.Background(), &ir.Program{Funcs: []*ir.Func{f}}, allChecks())
	require.NoError(t, err)

	main, ok := report.Func("main")
	require.True(t, ok)
	assert.False(t, main.Flattened)
	assert.Equal(t, []string{"while (() v(+k) < 1)"}, main.NonFlat)
	assert.Equal(t, []IndexExprReport{{Expr: "() v(+k)", Reduction: []string{"k"}}}, main.IndexExprs)

	require.Equal(t, []string{"main:ANA1005", "main:ANA1001"}, codes(bag))
	stray := bag.Items()[0]
	assert.Contains(t, stray.Message, "free index variable i")
	require.Len(t, stray.Notes, 1)
	assert.Equal(t, "if (v(i) > 0)", stray.Notes[0].Msg)
}

func TestAnalyzeReportsProgress(t *testing.T) {
	prog := sample()
	ch := make(chan Event, 256)
	opts := allChecks()
	opts.Progress = ChannelSink{Ch: ch}
	_, _, err := Analyze(context.Background(), prog, opts)
	require.NoError(t, err)
	close(ch)

	final := make(map[string]Status)
	queued := 0
	for ev := range ch {
		if ev.Status == StatusQueued {
			queued++
			continue
		}
		final[ev.Func] = ev.Status
	}
	assert.Equal(t, len(prog.Funcs), queued)
	assert.Equal(t, map[string]Status{
		"main":   StatusDone,
		"helper": StatusDone,
		"rec":    StatusDone,
		"dead":   StatusError,
	}, final)
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Analyze(ctx, sample(), allChecks())
	assert.ErrorIs(t, err, context.Canceled)
}
