package driver

import (
	"context"
	"fmt"
	"strings"

	"tessera/internal/config"
	"tessera/internal/diag"
	"tessera/internal/ir"
	"tessera/internal/trace"
)

func analyzeFunc(ctx context.Context, prog *ir.Program, f *ir.Func, opts Options) *funcResult {
	ctx, span := trace.Begin(ctx, trace.ScopeFunc, "func:"+f.Name)
	defer span.End("")

	bag := diag.NewBag(0)
	r := diag.NewBagReporter(bag)
	fr := &FuncReport{Name: f.Name, Kind: f.Kind.String(), Flattened: true}

	step := func(stage Stage, check string, run func()) {
		if !opts.enabled(check) {
			return
		}
		emit(opts.Progress, Event{Func: f.Name, Stage: stage, Status: StatusWorking})
		trace.Point(ctx, trace.ScopeNode, string(stage), f.Name)
		run()
	}

	if f.Body != nil {
		step(StageFlatten, config.CheckFlatten, func() { checkFlatten(f, fr, r) })
		step(StageBlocked, config.CheckBlocked, func() { checkBlocked(f, fr, r) })
		step(StageIndexVars, config.CheckIndexVars, func() { checkIndexVars(f, fr, r) })
	}
	step(StageCallTree, config.CheckCallTree, func() { checkCallTree(prog, f, fr, r) })

	return &funcResult{report: fr, diags: bag.Items()}
}

// stmtText is the first line of s: the whole statement for simple
// statements, the header for conditionals and loops.
func stmtText(s *ir.Stmt) string {
	line, _, _ := strings.Cut(ir.StmtString(s), "\n")
	return strings.TrimSpace(line)
}

// ownExprs visits every statement of body together with the expressions it
// holds directly. Conditions and loop bounds belong to their statement, the
// bodies are visited on their own.
func ownExprs(body *ir.Stmt, f func(*ir.Stmt, []*ir.Expr)) {
	ir.InspectStmt(body, func(s *ir.Stmt) bool {
		if exprs, _ := ir.StmtChildren(s); len(exprs) > 0 {
			f(s, exprs)
		}
		return true
	})
}

func hasIndexExpr(exprs []*ir.Expr) bool {
	found := false
	for _, root := range exprs {
		ir.InspectExpr(root, func(e *ir.Expr) bool {
			found = found || e.Kind == ir.ExprIndexExpr
			return !found
		})
	}
	return found
}

func checkFlatten(f *ir.Func, fr *FuncReport, r diag.Reporter) {
	ownExprs(f.Body, func(s *ir.Stmt, exprs []*ir.Expr) {
		what := "index expression nested inside another expression"
		switch s.Kind {
		case ir.StmtIf, ir.StmtForRange, ir.StmtWhile:
			// Only a written value may be an index expression.
			if !hasIndexExpr(exprs) {
				return
			}
			what = "index expression in a condition or loop bound"
		default:
			if ir.IsFlattened(s) {
				return
			}
		}
		fr.Flattened = false
		text := stmtText(s)
		fr.NonFlat = append(fr.NonFlat, text)
		diag.ReportWarning(r, diag.AnaNotFlattened, f.Name, what+": "+text).Emit()
	})
}

func checkBlocked(f *ir.Func, fr *FuncReport, r diag.Reporter) {
	ir.InspectStmt(f.Body, func(s *ir.Stmt) bool {
		if !ir.IsBlocked(s) {
			return true
		}
		text := stmtText(s)
		fr.BlockedWrites = append(fr.BlockedWrites, text)
		v, _ := ir.WriteValue(s)
		diag.ReportInfo(r, diag.AnaBlockedWrite, f.Name,
			fmt.Sprintf("write of blocked %s: %s", v.Type, text)).Emit()
		return true
	})
}

func indexVarNames(vs []*ir.IndexVar) []string {
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}

func checkIndexVars(f *ir.Func, fr *FuncReport, r diag.Reporter) {
	ownExprs(f.Body, func(s *ir.Stmt, exprs []*ir.Expr) {
		for _, root := range exprs {
			ir.InspectExpr(root, func(e *ir.Expr) bool {
				if e.Kind == ir.ExprIndexExpr {
					fr.IndexExprs = append(fr.IndexExprs, IndexExprReport{
						Expr:      ir.ExprString(e),
						Free:      indexVarNames(ir.GetFreeVars(e)),
						Reduction: indexVarNames(ir.GetReductionVars(e)),
					})
				}
				return true
			})
			if err := ir.ValidateIndexExpr(root); err != nil {
				for _, e := range unjoin(err) {
					diag.ReportError(r, diag.AnaIndexVarInvalid, f.Name, e.Error()).
						WithNote(f.Name, stmtText(s)).Emit()
				}
			}
			reportStray(f, s, root, r)
		}
	})
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, unjoin(e)...)
		}
		return out
	}
	return []error{err}
}

// reportStray flags indexed tensors that no index expression encloses:
// their index variables are never bound to a loop.
func reportStray(f *ir.Func, s *ir.Stmt, root *ir.Expr, r diag.Reporter) {
	ir.WalkExpr(root, ir.Visitor{Expr: func(e *ir.Expr) ir.Action {
		switch e.Kind {
		case ir.ExprIndexExpr:
			return ir.Skip
		case ir.ExprIndexedTensor:
			text := stmtText(s)
			for _, v := range ir.GetIndexVars(e) {
				code, what := diag.AnaFreeVarOutside, "free"
				if v.IsReduction() {
					code, what = diag.AnaReductionInWrite, "reduction"
				}
				diag.ReportError(r, code, f.Name,
					fmt.Sprintf("%s index variable %s is used outside an index expression", what, v.Name)).
					WithNote(f.Name, text).Emit()
			}
			return ir.Skip
		}
		return ir.Continue
	}})
}

func checkCallTree(prog *ir.Program, f *ir.Func, fr *FuncReport, r diag.Reporter) {
	tree := ir.GetCallTree(f)
	var errs []error
	for _, g := range tree {
		fr.CallTree = append(fr.CallTree, g.Name)
		if prog.Index(g) < 0 {
			errs = append(errs, fmt.Errorf("callee %s is not part of the program", g.Name))
		}
		for _, c := range ir.Callees(g) {
			if c == f {
				fr.Recursive = true
			}
		}
	}
	for _, err := range errs {
		diag.ReportError(r, diag.CallForeignCallee, f.Name, err.Error()).Emit()
	}
	if fr.Recursive {
		diag.ReportInfo(r, diag.CallRecursive, f.Name, f.Name+" can call itself").Emit()
	}
}
