package ir

import (
	"errors"
	"fmt"
)

// Index variables occur in two places: the index list of an IndexedTensor
// and the result list of an IndexExpr.
func indexVarsOf(e *Expr) []*IndexVar {
	switch d := e.Data.(type) {
	case IndexedTensorData:
		return d.IndexVars
	case IndexExprData:
		return d.ResultVars
	}
	return nil
}

func collectIndexVars(e *Expr, keep func(*IndexVar) bool) []*IndexVar {
	var out []*IndexVar
	seen := make(map[*IndexVar]struct{})
	InspectExpr(e, func(x *Expr) bool {
		for _, v := range indexVarsOf(x) {
			if _, dup := seen[v]; dup || !keep(v) {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		return true
	})
	return out
}

// GetIndexVars returns every index variable referenced in e, once each, in
// order of first occurrence.
func GetIndexVars(e *Expr) []*IndexVar {
	return collectIndexVars(e, func(*IndexVar) bool { return true })
}

// GetFreeVars returns the free index variables referenced in e, once each,
// in order of first occurrence.
func GetFreeVars(e *Expr) []*IndexVar {
	return collectIndexVars(e, (*IndexVar).IsFree)
}

// GetReductionVars returns the reduction variables referenced in e, once
// each, in order of first occurrence.
func GetReductionVars(e *Expr) []*IndexVar {
	return collectIndexVars(e, (*IndexVar).IsReduction)
}

func exprHasVar(e *Expr, match func(*IndexVar) bool) bool {
	found := false
	WalkExpr(e, Visitor{Expr: func(x *Expr) Action {
		for _, v := range indexVarsOf(x) {
			if match(v) {
				found = true
				return Stop
			}
		}
		return Continue
	}})
	return found
}

func stmtHasVar(s *Stmt, match func(*IndexVar) bool) bool {
	found := false
	WalkStmt(s, Visitor{Expr: func(x *Expr) Action {
		for _, v := range indexVarsOf(x) {
			if match(v) {
				found = true
				return Stop
			}
		}
		return Continue
	}})
	return found
}

// ContainsFreeVar reports whether e references a free index variable.
func ContainsFreeVar(e *Expr) bool {
	return exprHasVar(e, (*IndexVar).IsFree)
}

// ContainsFreeVarStmt reports whether any expression of s references a free
// index variable.
func ContainsFreeVarStmt(s *Stmt) bool {
	return stmtHasVar(s, (*IndexVar).IsFree)
}

// ContainsReductionVar reports whether e references a reduction variable.
func ContainsReductionVar(e *Expr) bool {
	return exprHasVar(e, (*IndexVar).IsReduction)
}

// ContainsReductionVarStmt reports whether any expression of s references a
// reduction variable.
func ContainsReductionVarStmt(s *Stmt) bool {
	return stmtHasVar(s, (*IndexVar).IsReduction)
}

// ValidateIndexExpr checks the index variable invariants of every index
// expression in e:
//   - result variables are free,
//   - every free variable of the value is a result variable,
//   - a name denotes one variable within an index expression.
//
// Nested index expressions are separate scopes and are checked on their own.
// A violation means an earlier lowering pass is broken.
func ValidateIndexExpr(e *Expr) error {
	var errs []error
	InspectExpr(e, func(x *Expr) bool {
		d, ok := x.Data.(IndexExprData)
		if !ok {
			return true
		}
		errs = append(errs, validateOne(d)...)
		return true
	})
	return errors.Join(errs...)
}

func validateOne(d IndexExprData) []error {
	var errs []error
	results := make(map[*IndexVar]struct{}, len(d.ResultVars))
	byName := make(map[string]*IndexVar)

	checkName := func(v *IndexVar) {
		if prev, ok := byName[v.Name]; ok && prev != v {
			errs = append(errs, fmt.Errorf("index variable %s is bound twice", v.Name))
			return
		}
		byName[v.Name] = v
	}

	for _, v := range d.ResultVars {
		if v.IsReduction() {
			errs = append(errs, fmt.Errorf("result variable %s is a reduction variable", v))
		}
		results[v] = struct{}{}
		checkName(v)
	}
	for _, v := range scopeVars(d.Value) {
		checkName(v)
		if v.IsFree() {
			if _, ok := results[v]; !ok {
				errs = append(errs, fmt.Errorf("free variable %s does not appear in the result", v))
			}
		}
	}
	return errs
}

// scopeVars returns the index variables of value that belong to the
// enclosing index expression, stopping at nested index expressions.
func scopeVars(value *Expr) []*IndexVar {
	var out []*IndexVar
	seen := make(map[*IndexVar]struct{})
	WalkExpr(value, Visitor{Expr: func(x *Expr) Action {
		if x.Kind == ExprIndexExpr {
			return Skip
		}
		for _, v := range indexVarsOf(x) {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
		return Continue
	}})
	return out
}
