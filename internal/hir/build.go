package hir

import "fmt"

// Constructors for well-formed nodes. Family constructors panic when given a
// kind outside the family; that is a bug in the caller, not bad input.

func mustFamily(k, base Kind) {
	if k.Base() != base {
		panic(fmt.Sprintf("hir: %s is not a %s", k, base))
	}
}

// NewProgram creates a program from top-level elements.
func NewProgram(elems ...*Node) *Node {
	return &Node{Kind: KindProgram, Data: ProgramData{Elems: elems}}
}

// NewScalarType creates a scalar type node.
func NewScalarType(s ScalarKind) *Node {
	return &Node{Kind: KindScalarType, Data: ScalarTypeData{Scalar: s}}
}

// NewElementTypeRef creates a reference to a named element type.
func NewElementTypeRef(name string) *Node {
	return &Node{Kind: KindElementTypeRef, Data: ElementTypeRefData{Name: name}}
}

// NewSetType creates a set type; endpoints make it an edge set.
func NewSetType(element *Node, endpoints ...*Node) *Node {
	return &Node{Kind: KindSetType, Data: SetTypeData{Element: element, Endpoints: endpoints}}
}

// NewTupleType creates a tuple type of fixed arity.
func NewTupleType(element *Node, length int) *Node {
	return &Node{Kind: KindTupleType, Data: TupleTypeData{Element: element, Length: length}}
}

// NewTensorType creates a non-scalar tensor type.
func NewTensorType(indexSets []*Node, blockType *Node) *Node {
	return &Node{Kind: KindNonScalarTensorType, Data: TensorTypeData{IndexSets: indexSets, BlockType: blockType}}
}

// NewRangeIndexSet creates a fixed-extent index set.
func NewRangeIndexSet(extent int) *Node {
	return &Node{Kind: KindRangeIndexSet, Data: RangeIndexSetData{Extent: extent}}
}

// NewSetIndexSet creates an index set ranging over a named set.
func NewSetIndexSet(set string) *Node {
	return &Node{Kind: KindSetIndexSet, Data: SetIndexSetData{Set: set}}
}

// NewDynamicIndexSet creates an index set whose extent is known at runtime.
func NewDynamicIndexSet() *Node {
	return &Node{Kind: KindDynamicIndexSet, Data: LeafData{}}
}

// NewField creates an element field.
func NewField(name string, typ *Node) *Node {
	return &Node{Kind: KindField, Data: FieldData{Name: name, Type: typ}}
}

// NewElementTypeDecl creates an element type declaration.
func NewElementTypeDecl(name string, fields ...*Node) *Node {
	return &Node{Kind: KindElementTypeDecl, Data: ElementTypeDeclData{Name: name, Fields: fields}}
}

// NewIdentDecl creates a typed identifier declaration.
func NewIdentDecl(name string, typ *Node) *Node {
	return &Node{Kind: KindIdentDecl, Data: IdentData{Name: name, Type: typ}}
}

// NewArgument creates a function argument.
func NewArgument(name string, typ *Node, inout bool) *Node {
	return &Node{Kind: KindArgument, Data: ArgumentData{IdentData: IdentData{Name: name, Type: typ}, InOut: inout}}
}

// NewExternDecl wraps an identifier declaration as an extern.
func NewExternDecl(v *Node) *Node {
	return &Node{Kind: KindExternDecl, Data: ExternData{Var: v}}
}

// NewFuncDecl creates a FuncDecl or ProcDecl.
func NewFuncDecl(kind Kind, name string, args, results []*Node, body *Node) *Node {
	mustFamily(kind, KindFuncDecl)
	return &Node{Kind: kind, Data: FuncData{Name: name, Args: args, Results: results, Body: body}}
}

// NewVarDecl creates a VarDecl or ConstDecl. init may be nil.
func NewVarDecl(kind Kind, v, init *Node) *Node {
	mustFamily(kind, KindVarDecl)
	return &Node{Kind: kind, Data: VarData{Var: v, Init: init}}
}

// NewBlock creates a statement block.
func NewBlock(stmts ...*Node) *Node {
	return &Node{Kind: KindStmtBlock, Data: BlockData{Stmts: stmts}}
}

// NewWhile creates a WhileStmt or DoWhileStmt.
func NewWhile(kind Kind, cond, body *Node) *Node {
	mustFamily(kind, KindWhileStmt)
	return &Node{Kind: kind, Data: WhileData{Cond: cond, Body: body}}
}

// NewIf creates an if statement. elseBody may be nil.
func NewIf(cond, then, elseBody *Node) *Node {
	return &Node{Kind: KindIfStmt, Data: IfData{Cond: cond, Then: then, Else: elseBody}}
}

// NewIndexSetDomain creates a loop domain over an index set.
func NewIndexSetDomain(set *Node) *Node {
	return &Node{Kind: KindIndexSetDomain, Data: IndexSetDomainData{Set: set}}
}

// NewRangeDomain creates a loop domain over [lower, upper).
func NewRangeDomain(lower, upper *Node) *Node {
	return &Node{Kind: KindRangeDomain, Data: RangeDomainData{Lower: lower, Upper: upper}}
}

// NewFor creates a for statement.
func NewFor(v string, domain, body *Node) *Node {
	return &Node{Kind: KindForStmt, Data: ForData{Var: v, Domain: domain, Body: body}}
}

// NewPrint creates a print statement.
func NewPrint(expr *Node) *Node {
	return &Node{Kind: KindPrintStmt, Data: PrintData{Expr: expr}}
}

// NewExprStmt creates an expression statement.
func NewExprStmt(expr *Node) *Node {
	return &Node{Kind: KindExprStmt, Data: ExprStmtData{Expr: expr}}
}

// NewAssign creates an assignment of rhs to the lhs targets.
func NewAssign(lhs []*Node, rhs *Node) *Node {
	return &Node{Kind: KindAssignStmt, Data: AssignData{ExprStmtData: ExprStmtData{Expr: rhs}, Lhs: lhs}}
}

// NewTest creates a test case asserting fn(args...) == expected.
func NewTest(fn string, args []*Node, expected *Node) *Node {
	return &Node{Kind: KindTest, Data: TestData{Func: fn, Args: args, Expected: expected}}
}

// NewExprParam wraps an expression as an actual or index parameter.
func NewExprParam(expr *Node) *Node {
	return &Node{Kind: KindExprParam, Data: ExprParamData{Expr: expr}}
}

// NewSliceParam creates a ':' index parameter.
func NewSliceParam() *Node {
	return &Node{Kind: KindSliceParam, Data: LeafData{}}
}

// NewMap creates a map expression applying fn over target.
func NewMap(fn, target, reduction string, partialActuals ...*Node) *Node {
	return &Node{Kind: KindMapExpr, Data: MapData{
		Func:           fn,
		Target:         target,
		Reduction:      reduction,
		PartialActuals: partialActuals,
	}}
}

// NewUnary creates a unary-family expression.
func NewUnary(kind Kind, operand *Node) *Node {
	mustFamily(kind, KindUnaryExpr)
	return &Node{Kind: kind, Data: UnaryData{Operand: operand}}
}

// NewBinary creates a binary-family expression.
func NewBinary(kind Kind, lhs, rhs *Node) *Node {
	mustFamily(kind, KindBinaryExpr)
	return &Node{Kind: kind, Data: BinaryData{Lhs: lhs, Rhs: rhs}}
}

// NewNary creates a plain n-ary expression.
func NewNary(operands ...*Node) *Node {
	return &Node{Kind: KindNaryExpr, Data: NaryData{Operands: operands}}
}

// NewEq creates a chained comparison; len(ops) must be len(operands)-1.
func NewEq(ops []CompareOp, operands ...*Node) *Node {
	if len(operands) != len(ops)+1 {
		panic(fmt.Sprintf("hir: %d comparisons for %d operands", len(ops), len(operands)))
	}
	return &Node{Kind: KindEqExpr, Data: EqData{NaryData: NaryData{Operands: operands}, Ops: ops}}
}

// NewCall creates a call of fn with the given actuals.
func NewCall(fn string, args ...*Node) *Node {
	return &Node{Kind: KindCallExpr, Data: CallData{NaryData: NaryData{Operands: args}, Func: fn}}
}

// NewTensorRead creates a tensor read with index parameters.
func NewTensorRead(tensor *Node, indices ...*Node) *Node {
	return &Node{Kind: KindTensorReadExpr, Data: TensorReadData{Tensor: tensor, Indices: indices}}
}

// NewFieldRead creates a field read on a set or element.
func NewFieldRead(setOrElem *Node, field string) *Node {
	return &Node{Kind: KindFieldReadExpr, Data: FieldReadData{SetOrElem: setOrElem, Field: field}}
}

// NewVarExpr creates a variable reference.
func NewVarExpr(name string) *Node {
	return &Node{Kind: KindVarExpr, Data: VarExprData{Name: name}}
}

// NewInt creates an integer literal.
func NewInt(v int64) *Node {
	return &Node{Kind: KindIntLiteral, Data: IntLiteralData{Value: v}}
}

// NewFloat creates a float literal.
func NewFloat(v float64) *Node {
	return &Node{Kind: KindFloatLiteral, Data: FloatLiteralData{Value: v}}
}

// NewBool creates a boolean literal.
func NewBool(v bool) *Node {
	return &Node{Kind: KindBoolLiteral, Data: BoolLiteralData{Value: v}}
}

// NewString creates a string literal.
func NewString(v string) *Node {
	return &Node{Kind: KindStringLiteral, Data: StringLiteralData{Value: v}}
}

// NewTensorLiteral creates a dense tensor literal.
func NewTensorLiteral(elems ...*Node) *Node {
	return &Node{Kind: KindDenseNDTensorLiteral, Data: TensorLiteralData{Elems: elems}}
}
