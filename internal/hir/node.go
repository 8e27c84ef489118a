// Package hir provides the high-level intermediate representation of a
// tessera program.
//
// HIR is the syntax-level tree produced by the parser. Every node is a Kind
// tag plus a kind-specific payload; payloads of specializations embed the
// payload of their base category so shared fields have one definition.
// Each parent exclusively owns its children, so the tree is acyclic and
// Clone is a plain structural recursion.
//
// Passes over HIR are written with a Walker (see walk.go), overriding only
// the kinds they care about.
package hir

import "fmt"

// Pos is a source position. The zero value means unknown.
type Pos struct {
	Line uint32
	Col  uint32
}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool { return p.Line != 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is a single HIR node.
type Node struct {
	Kind Kind
	Pos  Pos
	Data Data // Kind-specific payload
}

// Data is the interface for kind-specific payloads.
type Data interface {
	nodeData()
}

// ScalarKind enumerates the scalar component types.
type ScalarKind uint8

const (
	ScalarInt ScalarKind = iota
	ScalarFloat
	ScalarBool
	ScalarComplex
	ScalarString
)

func (s ScalarKind) String() string {
	switch s {
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	case ScalarComplex:
		return "complex"
	case ScalarString:
		return "string"
	default:
		return "unknown"
	}
}

// CompareOp is one comparison in a chained EqExpr.
type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op CompareOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// ProgramData holds data for KindProgram.
type ProgramData struct {
	Elems []*Node
}

func (ProgramData) nodeData() {}

// ScalarTypeData holds data for KindScalarType.
type ScalarTypeData struct {
	Scalar ScalarKind
}

func (ScalarTypeData) nodeData() {}

// ElementTypeRefData holds data for KindElementTypeRef.
type ElementTypeRefData struct {
	Name string
}

func (ElementTypeRefData) nodeData() {}

// SetTypeData holds data for KindSetType.
// Endpoints are the incident vertex set types of a hypergraph edge set.
type SetTypeData struct {
	Element   *Node
	Endpoints []*Node
}

func (SetTypeData) nodeData() {}

// TupleTypeData holds data for KindTupleType.
type TupleTypeData struct {
	Element *Node
	Length  int
}

func (TupleTypeData) nodeData() {}

// TensorTypeData holds data for KindNonScalarTensorType.
type TensorTypeData struct {
	IndexSets  []*Node
	BlockType  *Node
	Transposed bool
}

func (TensorTypeData) nodeData() {}

// RangeIndexSetData holds data for KindRangeIndexSet.
type RangeIndexSetData struct {
	Extent int
}

func (RangeIndexSetData) nodeData() {}

// SetIndexSetData holds data for KindSetIndexSet.
type SetIndexSetData struct {
	Set string
}

func (SetIndexSetData) nodeData() {}

// LeafData is the payload of kinds with no fields (DynamicIndexSet, SliceParam).
type LeafData struct{}

func (LeafData) nodeData() {}

// FieldData holds data for KindField.
type FieldData struct {
	Name string
	Type *Node
}

func (FieldData) nodeData() {}

// ElementTypeDeclData holds data for KindElementTypeDecl.
type ElementTypeDeclData struct {
	Name   string
	Fields []*Node
}

func (ElementTypeDeclData) nodeData() {}

// IdentData holds data for KindIdentDecl.
type IdentData struct {
	Name string
	Type *Node
}

func (IdentData) nodeData() {}

func (d IdentData) ident() IdentData { return d }

// ArgumentData holds data for KindArgument.
type ArgumentData struct {
	IdentData
	InOut bool
}

// ExternData holds data for KindExternDecl.
type ExternData struct {
	Var *Node
}

func (ExternData) nodeData() {}

// FuncData holds data for KindFuncDecl and KindProcDecl.
type FuncData struct {
	Name     string
	Args     []*Node
	Results  []*Node
	Body     *Node
	Exported bool
}

func (FuncData) nodeData() {}

func (d FuncData) fn() FuncData { return d }

// VarData holds data for KindVarDecl and KindConstDecl.
type VarData struct {
	Var  *Node
	Init *Node // nil if none
}

func (VarData) nodeData() {}

func (d VarData) decl() VarData { return d }

// BlockData holds data for KindStmtBlock.
type BlockData struct {
	Stmts []*Node
}

func (BlockData) nodeData() {}

// WhileData holds data for KindWhileStmt and KindDoWhileStmt.
type WhileData struct {
	Cond *Node
	Body *Node
}

func (WhileData) nodeData() {}

func (d WhileData) loop() WhileData { return d }

// IfData holds data for KindIfStmt.
type IfData struct {
	Cond *Node
	Then *Node
	Else *Node // nil if no else branch
}

func (IfData) nodeData() {}

// IndexSetDomainData holds data for KindIndexSetDomain.
type IndexSetDomainData struct {
	Set *Node
}

func (IndexSetDomainData) nodeData() {}

// RangeDomainData holds data for KindRangeDomain.
type RangeDomainData struct {
	Lower *Node
	Upper *Node
}

func (RangeDomainData) nodeData() {}

// ForData holds data for KindForStmt.
type ForData struct {
	Var    string
	Domain *Node
	Body   *Node
}

func (ForData) nodeData() {}

// PrintData holds data for KindPrintStmt.
type PrintData struct {
	Expr *Node
}

func (PrintData) nodeData() {}

// ExprStmtData holds data for KindExprStmt.
type ExprStmtData struct {
	Expr *Node
}

func (ExprStmtData) nodeData() {}

func (d ExprStmtData) exprStmt() ExprStmtData { return d }

// AssignData holds data for KindAssignStmt. The embedded Expr is the rhs.
type AssignData struct {
	ExprStmtData
	Lhs []*Node
}

// TestData holds data for KindTest.
type TestData struct {
	Func     string
	Args     []*Node
	Expected *Node
}

func (TestData) nodeData() {}

// ExprParamData holds data for KindExprParam.
type ExprParamData struct {
	Expr *Node
}

func (ExprParamData) nodeData() {}

// MapData holds data for KindMapExpr.
type MapData struct {
	Func           string
	Target         string
	Reduction      string // empty when the map has no reduction
	PartialActuals []*Node
}

func (MapData) nodeData() {}

// UnaryData holds data for the unary family.
type UnaryData struct {
	Operand *Node
}

func (UnaryData) nodeData() {}

func (d UnaryData) unary() UnaryData { return d }

// BinaryData holds data for the binary family.
type BinaryData struct {
	Lhs *Node
	Rhs *Node
}

func (BinaryData) nodeData() {}

func (d BinaryData) binary() BinaryData { return d }

// NaryData holds data for KindNaryExpr.
type NaryData struct {
	Operands []*Node
}

func (NaryData) nodeData() {}

func (d NaryData) nary() NaryData { return d }

// EqData holds data for KindEqExpr: Ops[i] compares Operands[i] and Operands[i+1].
type EqData struct {
	NaryData
	Ops []CompareOp
}

// CallData holds data for KindCallExpr.
type CallData struct {
	NaryData
	Func string
}

// TensorReadData holds data for KindTensorReadExpr.
type TensorReadData struct {
	Tensor  *Node
	Indices []*Node
}

func (TensorReadData) nodeData() {}

// FieldReadData holds data for KindFieldReadExpr.
type FieldReadData struct {
	SetOrElem *Node
	Field     string
}

func (FieldReadData) nodeData() {}

// VarExprData holds data for KindVarExpr.
type VarExprData struct {
	Name string
}

func (VarExprData) nodeData() {}

// IntLiteralData holds data for KindIntLiteral.
type IntLiteralData struct {
	Value int64
}

func (IntLiteralData) nodeData() {}

// FloatLiteralData holds data for KindFloatLiteral.
type FloatLiteralData struct {
	Value float64
}

func (FloatLiteralData) nodeData() {}

// BoolLiteralData holds data for KindBoolLiteral.
type BoolLiteralData struct {
	Value bool
}

func (BoolLiteralData) nodeData() {}

// StringLiteralData holds data for KindStringLiteral.
type StringLiteralData struct {
	Value string
}

func (StringLiteralData) nodeData() {}

// TensorLiteralData holds data for KindDenseNDTensorLiteral.
// Elems are scalar literals or nested tensor literals.
type TensorLiteralData struct {
	Elems      []*Node
	Transposed bool
}

func (TensorLiteralData) nodeData() {}

// Base category accessors. Each succeeds for the base kind and for every
// specialization that embeds its payload.

// AsIdent returns the IdentDecl payload of an IdentDecl or Argument node.
func AsIdent(n *Node) (IdentData, bool) {
	c, ok := n.Data.(interface{ ident() IdentData })
	if !ok {
		return IdentData{}, false
	}
	return c.ident(), true
}

// AsFunc returns the payload of a FuncDecl or ProcDecl node.
func AsFunc(n *Node) (FuncData, bool) {
	c, ok := n.Data.(interface{ fn() FuncData })
	if !ok {
		return FuncData{}, false
	}
	return c.fn(), true
}

// AsVar returns the payload of a VarDecl or ConstDecl node.
func AsVar(n *Node) (VarData, bool) {
	c, ok := n.Data.(interface{ decl() VarData })
	if !ok {
		return VarData{}, false
	}
	return c.decl(), true
}

// AsWhile returns the payload of a WhileStmt or DoWhileStmt node.
func AsWhile(n *Node) (WhileData, bool) {
	c, ok := n.Data.(interface{ loop() WhileData })
	if !ok {
		return WhileData{}, false
	}
	return c.loop(), true
}

// AsExprStmt returns the expression-statement part of an ExprStmt or AssignStmt.
func AsExprStmt(n *Node) (ExprStmtData, bool) {
	c, ok := n.Data.(interface{ exprStmt() ExprStmtData })
	if !ok {
		return ExprStmtData{}, false
	}
	return c.exprStmt(), true
}

// AsUnary returns the payload of any unary-family node.
func AsUnary(n *Node) (UnaryData, bool) {
	c, ok := n.Data.(interface{ unary() UnaryData })
	if !ok {
		return UnaryData{}, false
	}
	return c.unary(), true
}

// AsBinary returns the payload of any binary-family node.
func AsBinary(n *Node) (BinaryData, bool) {
	c, ok := n.Data.(interface{ binary() BinaryData })
	if !ok {
		return BinaryData{}, false
	}
	return c.binary(), true
}

// AsNary returns the operand list of any n-ary-family node.
func AsNary(n *Node) (NaryData, bool) {
	c, ok := n.Data.(interface{ nary() NaryData })
	if !ok {
		return NaryData{}, false
	}
	return c.nary(), true
}

// payload returns n.Data as T, panicking when the kind and payload disagree.
func payload[T Data](n *Node) T {
	d, ok := n.Data.(T)
	if !ok {
		panic(fmt.Sprintf("hir: %s node carries %T payload", n.Kind, n.Data))
	}
	return d
}
