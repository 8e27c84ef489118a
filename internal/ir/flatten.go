package ir

import "fmt"

// IsFlattened reports whether every index expression in s is the entire
// value of its own write statement. Such a statement maps each index
// expression to exactly one loop nest. A statement without index expressions
// is flat.
//
// False is a precondition fact, not an error: run Flatten first.
func IsFlattened(s *Stmt) bool {
	top := make(map[*Expr]struct{})
	flat := true
	WalkStmt(s, Visitor{
		Stmt: func(st *Stmt) Action {
			if v, ok := WriteValue(st); ok && v != nil && v.Kind == ExprIndexExpr {
				top[v] = struct{}{}
			}
			return Continue
		},
		Expr: func(e *Expr) Action {
			if e.Kind != ExprIndexExpr {
				return Continue
			}
			if _, ok := top[e]; !ok {
				flat = false
				return Stop
			}
			return Continue
		},
	})
	return flat
}

// Flatten returns a statement equivalent to s for which IsFlattened holds.
// Nested index expressions are hoisted, innermost first, into temporaries
// declared right before the statement that used them. Flat statements are
// returned unchanged, so Flatten is idempotent.
//
// Nested index expressions must be closed: they may not capture index
// variables of an enclosing index expression. While conditions are
// evaluated on every iteration and are left in place.
//
// Temporaries are named tmp0, tmp1 and so on, skipping names used in s or
// held by inScope.
func Flatten(s *Stmt, inScope ...*Var) *Stmt {
	f := &flattener{taken: make(map[string]struct{})}
	for _, v := range inScope {
		f.taken[v.Name] = struct{}{}
	}
	WalkStmt(s, Visitor{
		Stmt: func(st *Stmt) Action {
			for _, v := range declaredVars(st) {
				f.taken[v.Name] = struct{}{}
			}
			return Continue
		},
		Expr: func(e *Expr) Action {
			if d, ok := e.Data.(VarData); ok {
				f.taken[d.Var.Name] = struct{}{}
			}
			return Continue
		},
	})
	return f.stmt(s)
}

// declaredVars returns the variables s binds or assigns by name.
func declaredVars(s *Stmt) []*Var {
	switch d := s.Data.(type) {
	case VarDeclData:
		return []*Var{d.Var}
	case AssignData:
		return []*Var{d.Var}
	case CallStmtData:
		return d.Results
	case ForRangeData:
		return []*Var{d.Var}
	case ForData:
		return []*Var{d.Var}
	}
	return nil
}

type flattener struct {
	temps int
	taken map[string]struct{}
}

func (f *flattener) temp(t Type) *Var {
	for {
		name := fmt.Sprintf("tmp%d", f.temps)
		f.temps++
		if _, ok := f.taken[name]; !ok {
			return NewVar(name, t)
		}
	}
}

// hoist rewrites e to contain no index expression, appending the hoisted
// computations to pre.
func (f *flattener) hoist(e *Expr, pre *[]*Stmt) *Expr {
	return RewriteExpr(e, func(x *Expr) *Expr {
		if x.Kind != ExprIndexExpr {
			return x
		}
		t := f.temp(x.Type)
		*pre = append(*pre, Decl(t), Assign(t, x))
		return Ref(t)
	})
}

// value flattens the stored value of a write: a top-level index expression
// stays, only its operands are hoisted.
func (f *flattener) value(e *Expr, pre *[]*Stmt) *Expr {
	d, ok := e.Data.(IndexExprData)
	if !ok {
		return f.hoist(e, pre)
	}
	inner := f.hoist(d.Value, pre)
	if inner == d.Value {
		return e
	}
	return &Expr{Kind: ExprIndexExpr, Type: e.Type, Data: IndexExprData{ResultVars: d.ResultVars, Value: inner}}
}

func (f *flattener) hoistAll(es []*Expr, pre *[]*Stmt) []*Expr {
	if es == nil {
		return nil
	}
	out := make([]*Expr, len(es))
	for i, e := range es {
		out[i] = f.hoist(e, pre)
	}
	return out
}

func withPrelude(pre []*Stmt, s *Stmt) *Stmt {
	if len(pre) == 0 {
		return s
	}
	return Block(append(pre, s)...)
}

func (f *flattener) stmt(s *Stmt) *Stmt {
	if s == nil || IsFlattened(s) {
		return s
	}
	var pre []*Stmt
	switch d := s.Data.(type) {
	case AssignData:
		d.Value = f.value(d.Value, &pre)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case StoreData:
		d.Buffer = f.hoist(d.Buffer, &pre)
		d.Index = f.hoist(d.Index, &pre)
		d.Value = f.value(d.Value, &pre)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case FieldWriteData:
		d.ElementOrSet = f.hoist(d.ElementOrSet, &pre)
		d.Value = f.value(d.Value, &pre)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case TensorWriteData:
		d.Tensor = f.hoist(d.Tensor, &pre)
		d.Indices = f.hoistAll(d.Indices, &pre)
		d.Value = f.value(d.Value, &pre)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case CallStmtData:
		d.Actuals = f.hoistAll(d.Actuals, &pre)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case PrintData:
		d.Expr = f.hoist(d.Expr, &pre)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case BlockData:
		stmts := make([]*Stmt, len(d.Stmts))
		for i, c := range d.Stmts {
			stmts[i] = f.stmt(c)
		}
		return Block(stmts...)
	case IfData:
		d.Cond = f.hoist(d.Cond, &pre)
		d.Then = f.stmt(d.Then)
		d.Else = f.stmt(d.Else)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case ForRangeData:
		d.Start = f.hoist(d.Start, &pre)
		d.End = f.hoist(d.End, &pre)
		d.Body = f.stmt(d.Body)
		return withPrelude(pre, &Stmt{Kind: s.Kind, Data: d})
	case ForData:
		d.Body = f.stmt(d.Body)
		return &Stmt{Kind: s.Kind, Data: d}
	case WhileData:
		d.Body = f.stmt(d.Body)
		return &Stmt{Kind: s.Kind, Data: d}
	default:
		return s
	}
}

// IsBlocked reports whether s is an assignment, tensor write or field write
// whose value is a blocked tensor, i.e. a tensor whose elements are
// fixed-shape tensors rather than scalars.
func IsBlocked(s *Stmt) bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case StmtAssign, StmtTensorWrite, StmtFieldWrite:
		v, _ := WriteValue(s)
		return v != nil && IsBlockedType(v.Type)
	}
	return false
}
