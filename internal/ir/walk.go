package ir

import "fmt"

// Action tells the walker how to proceed after a callback.
type Action uint8

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Skip does not descend into the node's children.
	Skip
	// Stop ends the traversal.
	Stop
)

// Visitor holds the callbacks of an IR traversal. Nil callbacks continue.
// Traversal is preorder and never enters callee bodies.
type Visitor struct {
	Expr func(e *Expr) Action
	Stmt func(s *Stmt) Action
}

// WalkExpr traverses e. It returns false if a callback stopped the walk.
func WalkExpr(e *Expr, v Visitor) bool {
	if e == nil {
		return true
	}
	if v.Expr != nil {
		switch v.Expr(e) {
		case Stop:
			return false
		case Skip:
			return true
		}
	}
	for _, c := range ExprChildren(e) {
		if !WalkExpr(c, v) {
			return false
		}
	}
	return true
}

// WalkStmt traverses s and every expression it contains. It returns false if
// a callback stopped the walk.
func WalkStmt(s *Stmt, v Visitor) bool {
	if s == nil {
		return true
	}
	if v.Stmt != nil {
		switch v.Stmt(s) {
		case Stop:
			return false
		case Skip:
			return true
		}
	}
	exprs, stmts := StmtChildren(s)
	for _, e := range exprs {
		if !WalkExpr(e, v) {
			return false
		}
	}
	for _, c := range stmts {
		if !WalkStmt(c, v) {
			return false
		}
	}
	return true
}

// ExprChildren returns the operands of e in evaluation order.
func ExprChildren(e *Expr) []*Expr {
	switch d := e.Data.(type) {
	case LiteralData, VarData, LengthData:
		return nil
	case LoadData:
		return []*Expr{d.Buffer, d.Index}
	case FieldReadData:
		return []*Expr{d.ElementOrSet}
	case TensorReadData:
		return append([]*Expr{d.Tensor}, d.Indices...)
	case TupleReadData:
		return []*Expr{d.Tuple, d.Index}
	case IndexReadData:
		return []*Expr{d.EdgeSet}
	case UnaryData:
		return []*Expr{d.Operand}
	case BinaryData:
		return []*Expr{d.Lhs, d.Rhs}
	case CallData:
		return d.Actuals
	case IndexedTensorData:
		return []*Expr{d.Tensor}
	case IndexExprData:
		return []*Expr{d.Value}
	case MapData:
		out := []*Expr{d.Target}
		if d.Neighbors != nil {
			out = append(out, d.Neighbors)
		}
		return append(out, d.Partial...)
	default:
		panic(fmt.Sprintf("ir: %s expression carries %T payload", e.Kind, e.Data))
	}
}

// StmtChildren returns the expressions of s (in evaluation order) and its
// nested statements.
func StmtChildren(s *Stmt) ([]*Expr, []*Stmt) {
	switch d := s.Data.(type) {
	case VarDeclData, PassData, CommentData:
		return nil, nil
	case AssignData:
		return []*Expr{d.Value}, nil
	case StoreData:
		return []*Expr{d.Buffer, d.Index, d.Value}, nil
	case FieldWriteData:
		return []*Expr{d.ElementOrSet, d.Value}, nil
	case TensorWriteData:
		exprs := append([]*Expr{d.Tensor}, d.Indices...)
		return append(exprs, d.Value), nil
	case CallStmtData:
		return d.Actuals, nil
	case BlockData:
		return nil, d.Stmts
	case IfData:
		if d.Else == nil {
			return []*Expr{d.Cond}, []*Stmt{d.Then}
		}
		return []*Expr{d.Cond}, []*Stmt{d.Then, d.Else}
	case ForRangeData:
		return []*Expr{d.Start, d.End}, []*Stmt{d.Body}
	case ForData:
		return nil, []*Stmt{d.Body}
	case WhileData:
		return []*Expr{d.Cond}, []*Stmt{d.Body}
	case PrintData:
		return []*Expr{d.Expr}, nil
	default:
		panic(fmt.Sprintf("ir: %s statement carries %T payload", s.Kind, s.Data))
	}
}

// InspectExpr calls f for e and every sub-expression in preorder until f
// returns false.
func InspectExpr(e *Expr, f func(*Expr) bool) {
	WalkExpr(e, Visitor{Expr: func(e *Expr) Action {
		if !f(e) {
			return Stop
		}
		return Continue
	}})
}

// InspectStmt calls f for s and every nested statement in preorder until f
// returns false. Expressions are not visited.
func InspectStmt(s *Stmt, f func(*Stmt) bool) {
	WalkStmt(s, Visitor{Stmt: func(s *Stmt) Action {
		if !f(s) {
			return Stop
		}
		return Continue
	}})
}

// RewriteExpr rebuilds e bottom-up, replacing every sub-expression x with
// f(x) after its operands were rewritten. Unchanged subtrees are shared with
// the input; e itself is never modified.
func RewriteExpr(e *Expr, f func(*Expr) *Expr) *Expr {
	if e == nil {
		return nil
	}
	kids := ExprChildren(e)
	changed := false
	newKids := make([]*Expr, len(kids))
	for i, c := range kids {
		newKids[i] = RewriteExpr(c, f)
		if newKids[i] != c {
			changed = true
		}
	}
	out := e
	if changed {
		out = withChildren(e, newKids)
	}
	return f(out)
}

// withChildren returns a shallow copy of e with operands replaced, in the
// order ExprChildren reports them.
func withChildren(e *Expr, kids []*Expr) *Expr {
	cp := &Expr{Kind: e.Kind, Type: e.Type}
	switch d := e.Data.(type) {
	case LoadData:
		cp.Data = LoadData{Buffer: kids[0], Index: kids[1]}
	case FieldReadData:
		cp.Data = FieldReadData{ElementOrSet: kids[0], Field: d.Field}
	case TensorReadData:
		cp.Data = TensorReadData{Tensor: kids[0], Indices: kids[1:]}
	case TupleReadData:
		cp.Data = TupleReadData{Tuple: kids[0], Index: kids[1]}
	case IndexReadData:
		cp.Data = IndexReadData{EdgeSet: kids[0], Kind: d.Kind}
	case UnaryData:
		cp.Data = UnaryData{Operand: kids[0]}
	case BinaryData:
		cp.Data = BinaryData{Lhs: kids[0], Rhs: kids[1]}
	case CallData:
		cp.Data = CallData{Func: d.Func, Actuals: kids}
	case IndexedTensorData:
		cp.Data = IndexedTensorData{Tensor: kids[0], IndexVars: d.IndexVars}
	case IndexExprData:
		cp.Data = IndexExprData{ResultVars: d.ResultVars, Value: kids[0]}
	case MapData:
		m := MapData{Func: d.Func, Target: kids[0], Reduction: d.Reduction}
		rest := kids[1:]
		if d.Neighbors != nil {
			m.Neighbors = rest[0]
			rest = rest[1:]
		}
		m.Partial = rest
		cp.Data = m
	default:
		panic(fmt.Sprintf("ir: cannot rebuild %s expression", e.Kind))
	}
	return cp
}
