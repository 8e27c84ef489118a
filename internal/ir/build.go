package ir

import "fmt"

// Expression and statement constructors. They compute result types the way
// the lowering stage assigns them.

// IntLit creates an integer literal.
func IntLit(v int64) *Expr {
	return &Expr{Kind: ExprLiteral, Type: ScalarType{Kind: Int}, Data: LiteralData{Int: v}}
}

// FloatLit creates a float literal.
func FloatLit(v float64) *Expr {
	return &Expr{Kind: ExprLiteral, Type: ScalarType{Kind: Float}, Data: LiteralData{Float: v}}
}

// BoolLit creates a boolean literal.
func BoolLit(v bool) *Expr {
	return &Expr{Kind: ExprLiteral, Type: ScalarType{Kind: Boolean}, Data: LiteralData{Bool: v}}
}

// StringLit creates a string literal.
func StringLit(v string) *Expr {
	return &Expr{Kind: ExprLiteral, Type: ScalarType{Kind: String}, Data: LiteralData{Str: v}}
}

// TensorLit creates a dense tensor literal of type t with row-major values.
func TensorLit(t *TensorType, values ...float64) *Expr {
	return &Expr{Kind: ExprLiteral, Type: t, Data: LiteralData{Values: values}}
}

// Ref creates a reference to v.
func Ref(v *Var) *Expr {
	return &Expr{Kind: ExprVar, Type: v.Type, Data: VarData{Var: v}}
}

// Unary creates a negation or logical not.
func Unary(kind ExprKind, x *Expr) *Expr {
	if !kind.IsUnary() {
		panic(fmt.Sprintf("ir: %s is not a unary operator", kind))
	}
	return &Expr{Kind: kind, Type: x.Type, Data: UnaryData{Operand: x}}
}

// Binary creates a binary operator. Comparisons and logical operators are
// boolean; arithmetic takes the type of its tensor operand, if any.
func Binary(kind ExprKind, lhs, rhs *Expr) *Expr {
	if !kind.IsBinary() {
		panic(fmt.Sprintf("ir: %s is not a binary operator", kind))
	}
	var t Type
	switch kind {
	case ExprAdd, ExprSub, ExprMul, ExprDiv:
		t = lhs.Type
		if _, ok := rhs.Type.(*TensorType); ok {
			if _, lok := lhs.Type.(*TensorType); !lok {
				t = rhs.Type
			}
		}
	default:
		t = ScalarType{Kind: Boolean}
	}
	return &Expr{Kind: kind, Type: t, Data: BinaryData{Lhs: lhs, Rhs: rhs}}
}

// Call creates a call expression. Its type is the first result of f.
func Call(f *Func, actuals ...*Expr) *Expr {
	var t Type
	if len(f.Results) > 0 {
		t = f.Results[0].Type
	}
	return &Expr{Kind: ExprCall, Type: t, Data: CallData{Func: f, Actuals: actuals}}
}

// FieldRead reads field of an element or set.
func FieldRead(elemOrSet *Expr, field string, t Type) *Expr {
	return &Expr{Kind: ExprFieldRead, Type: t, Data: FieldReadData{ElementOrSet: elemOrSet, Field: field}}
}

// TensorRead reads tensor at explicit indices.
func TensorRead(tensor *Expr, indices ...*Expr) *Expr {
	var t Type = ScalarType{Kind: Float}
	if tt, ok := tensor.Type.(*TensorType); ok {
		t = tt.BlockType()
	}
	return &Expr{Kind: ExprTensorRead, Type: t, Data: TensorReadData{Tensor: tensor, Indices: indices}}
}

// Load reads buffer[index]; t is the element type.
func Load(buffer, index *Expr, t Type) *Expr {
	return &Expr{Kind: ExprLoad, Type: t, Data: LoadData{Buffer: buffer, Index: index}}
}

// TupleRead reads one component of a tuple of elements.
func TupleRead(tuple, index *Expr) *Expr {
	var t Type
	if tt, ok := tuple.Type.(*TupleType); ok {
		t = tt.Element
	}
	return &Expr{Kind: ExprTupleRead, Type: t, Data: TupleReadData{Tuple: tuple, Index: index}}
}

// IndexRead reads the endpoints or neighbors index of an edge set.
func IndexRead(edgeSet *Expr, kind string) *Expr {
	t := Tensor(Int, Domain(Dynamic()))
	return &Expr{Kind: ExprIndexRead, Type: t, Data: IndexReadData{EdgeSet: edgeSet, Kind: kind}}
}

// Length creates the size of an index set.
func Length(s IndexSet) *Expr {
	return &Expr{Kind: ExprLength, Type: ScalarType{Kind: Int}, Data: LengthData{Set: s}}
}

// Indexed indexes tensor by index variables.
func Indexed(tensor *Expr, vars ...*IndexVar) *Expr {
	var t Type = ScalarType{Kind: componentOf(tensor.Type)}
	if tt, ok := tensor.Type.(*TensorType); ok {
		t = tt.BlockType()
	}
	return &Expr{Kind: ExprIndexedTensor, Type: t, Data: IndexedTensorData{Tensor: tensor, IndexVars: vars}}
}

// IndexExpression creates an index expression over result. The type is a
// tensor over the result variables' domains, or a scalar when result is empty.
func IndexExpression(result []*IndexVar, value *Expr) *Expr {
	comp := componentOf(value.Type)
	var t Type = ScalarType{Kind: comp}
	if len(result) > 0 {
		dims := make([]IndexDomain, len(result))
		for i, v := range result {
			dims[i] = v.Domain
		}
		t = &TensorType{Component: comp, Dims: dims}
	}
	return &Expr{Kind: ExprIndexExpr, Type: t, Data: IndexExprData{ResultVars: result, Value: value}}
}

// MapOver applies f to every element of target.
func MapOver(f *Func, target *Expr, reduction ReductionOp, partial ...*Expr) *Expr {
	var t Type
	if len(f.Results) > 0 {
		t = f.Results[0].Type
	}
	return &Expr{Kind: ExprMap, Type: t, Data: MapData{Func: f, Target: target, Partial: partial, Reduction: reduction}}
}

func componentOf(t Type) ScalarKind {
	switch t := t.(type) {
	case ScalarType:
		return t.Kind
	case *TensorType:
		return t.Component
	default:
		return Float
	}
}

// Assign creates v = value.
func Assign(v *Var, value *Expr) *Stmt {
	return &Stmt{Kind: StmtAssign, Data: AssignData{Var: v, Value: value}}
}

// AddAssign creates v += value.
func AddAssign(v *Var, value *Expr) *Stmt {
	return &Stmt{Kind: StmtAssign, Data: AssignData{Var: v, Value: value, Compound: CompoundAdd}}
}

// Decl declares v.
func Decl(v *Var) *Stmt {
	return &Stmt{Kind: StmtVarDecl, Data: VarDeclData{Var: v}}
}

// FieldWrite creates elemOrSet.field = value.
func FieldWrite(elemOrSet *Expr, field string, value *Expr) *Stmt {
	return &Stmt{Kind: StmtFieldWrite, Data: FieldWriteData{ElementOrSet: elemOrSet, Field: field, Value: value}}
}

// TensorWrite creates tensor(indices...) = value.
func TensorWrite(tensor *Expr, indices []*Expr, value *Expr) *Stmt {
	return &Stmt{Kind: StmtTensorWrite, Data: TensorWriteData{Tensor: tensor, Indices: indices, Value: value}}
}

// Store creates buffer[index] = value.
func Store(buffer, index, value *Expr) *Stmt {
	return &Stmt{Kind: StmtStore, Data: StoreData{Buffer: buffer, Index: index, Value: value}}
}

// CallStmt creates results = callee(actuals...).
func CallStmt(results []*Var, callee *Func, actuals ...*Expr) *Stmt {
	return &Stmt{Kind: StmtCall, Data: CallStmtData{Results: results, Callee: callee, Actuals: actuals}}
}

// Block creates a statement block.
func Block(stmts ...*Stmt) *Stmt {
	return &Stmt{Kind: StmtBlock, Data: BlockData{Stmts: stmts}}
}

// If creates a conditional; elseBody may be nil.
func If(cond *Expr, then, elseBody *Stmt) *Stmt {
	return &Stmt{Kind: StmtIf, Data: IfData{Cond: cond, Then: then, Else: elseBody}}
}

// ForRange loops v over [start, end).
func ForRange(v *Var, start, end *Expr, body *Stmt) *Stmt {
	return &Stmt{Kind: StmtForRange, Data: ForRangeData{Var: v, Start: start, End: end, Body: body}}
}

// For loops v over the domain.
func For(v *Var, domain IndexSet, body *Stmt) *Stmt {
	return &Stmt{Kind: StmtFor, Data: ForData{Var: v, Domain: domain, Body: body}}
}

// While loops while cond holds.
func While(cond *Expr, body *Stmt) *Stmt {
	return &Stmt{Kind: StmtWhile, Data: WhileData{Cond: cond, Body: body}}
}

// Print prints e.
func Print(e *Expr) *Stmt {
	return &Stmt{Kind: StmtPrint, Data: PrintData{Expr: e}}
}

// Pass is the empty statement.
func Pass() *Stmt {
	return &Stmt{Kind: StmtPass, Data: PassData{}}
}

// Comment creates a comment statement.
func Comment(text string) *Stmt {
	return &Stmt{Kind: StmtComment, Data: CommentData{Text: text}}
}
