package hir

import "fmt"

// Handler replaces the default traversal for the kind it is registered on.
// It may call c.Descend() to run that default traversal.
type Handler func(c Cursor)

// Cursor is the view a Handler gets of the node being dispatched.
type Cursor struct {
	w *Walker
	// Node is the node being visited.
	Node *Node
	// As is the kind the node is being visited as. It differs from Node.Kind
	// when a specialization fell back to a handler of its base category.
	As Kind
}

// Descend runs the default traversal of c.Node as c.As.
func (c Cursor) Descend() {
	c.w.descend(c.Node, c.As)
}

// Walk dispatches n through the same walker.
func (c Cursor) Walk(n *Node) {
	c.w.Walk(n)
}

// Walker dispatches each node to the handler registered for its kind.
//
// Dispatch of a node of kind K:
//  1. Enter, if set, is called; returning false skips the node.
//  2. The handler for K runs, if any.
//  3. Otherwise the default for K runs. For a specialization with no own
//     children the default is to dispatch again as K.Base(), so a handler on
//     BinaryExpr sees every binary operator that has no handler of its own.
//  4. Leave, if set, is called after the node and its children.
//
// The zero Walker performs a full preorder traversal and does nothing else.
// A Walker keeps no traversal state, so distinct Walkers may traverse the
// same tree concurrently.
type Walker struct {
	Enter func(n *Node) bool
	Leave func(n *Node)

	handlers [kindCount]Handler
}

// On registers h for kind k and returns w for chaining.
func (w *Walker) On(k Kind, h Handler) *Walker {
	if !k.Valid() {
		panic(fmt.Sprintf("hir: cannot register handler for kind %d", k))
	}
	w.handlers[k] = h
	return w
}

// Walk dispatches n. A nil node is ignored.
func (w *Walker) Walk(n *Node) {
	if n == nil {
		return
	}
	if w.Enter != nil && !w.Enter(n) {
		return
	}
	w.dispatch(n, n.Kind)
	if w.Leave != nil {
		w.Leave(n)
	}
}

func (w *Walker) walkAll(nodes []*Node) {
	for _, n := range nodes {
		w.Walk(n)
	}
}

func (w *Walker) dispatch(n *Node, as Kind) {
	if as.Valid() {
		if h := w.handlers[as]; h != nil {
			h(Cursor{w: w, Node: n, As: as})
			return
		}
	}
	w.descend(n, as)
}

// descend is the default traversal. Children are visited in declaration
// order; sub-expressions come before sub-statements.
func (w *Walker) descend(n *Node, as Kind) {
	switch as {
	case KindProgram:
		w.walkAll(payload[ProgramData](n).Elems)

	case KindScalarType, KindElementTypeRef,
		KindRangeIndexSet, KindSetIndexSet, KindDynamicIndexSet,
		KindSliceParam, KindVarExpr,
		KindIntLiteral, KindFloatLiteral, KindBoolLiteral, KindStringLiteral:
		// leaves

	case KindSetType:
		d := payload[SetTypeData](n)
		w.Walk(d.Element)
		w.walkAll(d.Endpoints)
	case KindTupleType:
		w.Walk(payload[TupleTypeData](n).Element)
	case KindNonScalarTensorType:
		d := payload[TensorTypeData](n)
		w.walkAll(d.IndexSets)
		w.Walk(d.BlockType)

	case KindField:
		w.Walk(payload[FieldData](n).Type)
	case KindElementTypeDecl:
		w.walkAll(payload[ElementTypeDeclData](n).Fields)
	case KindIdentDecl:
		w.walkIdent(n)
	case KindExternDecl:
		w.Walk(payload[ExternData](n).Var)
	case KindFuncDecl:
		w.walkFunc(n)
	case KindVarDecl:
		w.walkVar(n)

	case KindStmtBlock:
		w.walkAll(payload[BlockData](n).Stmts)
	case KindWhileStmt:
		w.walkWhile(n)
	case KindIfStmt:
		d := payload[IfData](n)
		w.Walk(d.Cond)
		w.Walk(d.Then)
		if d.Else != nil {
			w.Walk(d.Else)
		}
	case KindIndexSetDomain:
		w.Walk(payload[IndexSetDomainData](n).Set)
	case KindRangeDomain:
		d := payload[RangeDomainData](n)
		w.Walk(d.Lower)
		w.Walk(d.Upper)
	case KindForStmt:
		d := payload[ForData](n)
		w.Walk(d.Domain)
		w.Walk(d.Body)
	case KindPrintStmt:
		w.Walk(payload[PrintData](n).Expr)
	case KindExprStmt:
		w.walkExprStmt(n)
	case KindAssignStmt:
		w.walkAll(payload[AssignData](n).Lhs)
		w.dispatch(n, KindExprStmt)
	case KindTest:
		d := payload[TestData](n)
		w.walkAll(d.Args)
		w.Walk(d.Expected)

	case KindExprParam:
		w.Walk(payload[ExprParamData](n).Expr)
	case KindMapExpr:
		w.walkAll(payload[MapData](n).PartialActuals)
	case KindUnaryExpr:
		w.walkUnary(n)
	case KindBinaryExpr:
		w.walkBinary(n)
	case KindNaryExpr:
		w.walkNary(n)
	case KindTensorReadExpr:
		d := payload[TensorReadData](n)
		w.Walk(d.Tensor)
		w.walkAll(d.Indices)
	case KindFieldReadExpr:
		w.Walk(payload[FieldReadData](n).SetOrElem)
	case KindDenseNDTensorLiteral:
		w.walkAll(payload[TensorLiteralData](n).Elems)

	case KindArgument, KindProcDecl, KindConstDecl, KindDoWhileStmt,
		KindNotExpr, KindNegExpr, KindTransposeExpr,
		KindOrExpr, KindAndExpr, KindXorExpr,
		KindAddExpr, KindSubExpr, KindMulExpr, KindDivExpr,
		KindElwiseMulExpr, KindElwiseDivExpr, KindExpExpr,
		KindEqExpr, KindCallExpr:
		w.dispatch(n, as.Base())

	default:
		panic(fmt.Sprintf("hir: unknown node kind %d", as))
	}
}

func (w *Walker) walkIdent(n *Node) {
	d, ok := AsIdent(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no ident payload", n.Kind))
	}
	w.Walk(d.Type)
}

func (w *Walker) walkFunc(n *Node) {
	d, ok := AsFunc(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no func payload", n.Kind))
	}
	w.walkAll(d.Args)
	w.walkAll(d.Results)
	w.Walk(d.Body)
}

func (w *Walker) walkVar(n *Node) {
	d, ok := AsVar(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no var payload", n.Kind))
	}
	w.Walk(d.Var)
	if d.Init != nil {
		w.Walk(d.Init)
	}
}

func (w *Walker) walkWhile(n *Node) {
	d, ok := AsWhile(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no loop payload", n.Kind))
	}
	w.Walk(d.Cond)
	w.Walk(d.Body)
}

func (w *Walker) walkExprStmt(n *Node) {
	d, ok := AsExprStmt(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no expression payload", n.Kind))
	}
	w.Walk(d.Expr)
}

func (w *Walker) walkUnary(n *Node) {
	d, ok := AsUnary(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no unary payload", n.Kind))
	}
	w.Walk(d.Operand)
}

func (w *Walker) walkBinary(n *Node) {
	d, ok := AsBinary(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no binary payload", n.Kind))
	}
	w.Walk(d.Lhs)
	w.Walk(d.Rhs)
}

func (w *Walker) walkNary(n *Node) {
	d, ok := AsNary(n)
	if !ok {
		panic(fmt.Sprintf("hir: %s node has no operand payload", n.Kind))
	}
	w.walkAll(d.Operands)
}

// Inspect traverses the tree rooted at n in preorder, calling f for each
// node. If f returns false the children of that node are skipped.
func Inspect(n *Node, f func(*Node) bool) {
	w := &Walker{Enter: f}
	w.Walk(n)
}

// Children returns the direct children of n in default traversal order.
func Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	w := &Walker{Enter: func(c *Node) bool {
		out = append(out, c)
		return false
	}}
	w.dispatch(n, n.Kind)
	return out
}
