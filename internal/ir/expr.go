package ir

// ExprKind enumerates IR expression kinds.
type ExprKind uint8

const (
	// ExprLiteral is a scalar or dense tensor constant.
	ExprLiteral ExprKind = iota
	// ExprVar references a variable.
	ExprVar
	// ExprLoad reads a buffer element.
	ExprLoad
	// ExprFieldRead reads a field of an element or set.
	ExprFieldRead
	// ExprTensorRead reads a tensor at explicit indices.
	ExprTensorRead
	// ExprTupleRead reads a tuple component.
	ExprTupleRead
	// ExprIndexRead reads the endpoint index of an edge set.
	ExprIndexRead
	// ExprLength is the size of an index set.
	ExprLength
	ExprNeg
	ExprNot
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
	ExprEq
	ExprNe
	ExprGt
	ExprLt
	ExprGe
	ExprLe
	ExprAnd
	ExprOr
	ExprXor
	// ExprCall calls a function.
	ExprCall
	// ExprIndexedTensor indexes a tensor expression by index variables.
	ExprIndexedTensor
	// ExprIndexExpr is an index expression: result variables and a value.
	ExprIndexExpr
	// ExprMap applies a function over the elements of a set.
	ExprMap
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVar:
		return "Var"
	case ExprLoad:
		return "Load"
	case ExprFieldRead:
		return "FieldRead"
	case ExprTensorRead:
		return "TensorRead"
	case ExprTupleRead:
		return "TupleRead"
	case ExprIndexRead:
		return "IndexRead"
	case ExprLength:
		return "Length"
	case ExprNeg:
		return "Neg"
	case ExprNot:
		return "Not"
	case ExprAdd:
		return "Add"
	case ExprSub:
		return "Sub"
	case ExprMul:
		return "Mul"
	case ExprDiv:
		return "Div"
	case ExprEq:
		return "Eq"
	case ExprNe:
		return "Ne"
	case ExprGt:
		return "Gt"
	case ExprLt:
		return "Lt"
	case ExprGe:
		return "Ge"
	case ExprLe:
		return "Le"
	case ExprAnd:
		return "And"
	case ExprOr:
		return "Or"
	case ExprXor:
		return "Xor"
	case ExprCall:
		return "Call"
	case ExprIndexedTensor:
		return "IndexedTensor"
	case ExprIndexExpr:
		return "IndexExpr"
	case ExprMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// IsUnary reports whether k takes a single operand.
func (k ExprKind) IsUnary() bool { return k == ExprNeg || k == ExprNot }

// IsBinary reports whether k takes two operands.
func (k ExprKind) IsBinary() bool { return k >= ExprAdd && k <= ExprXor }

// Expr is an IR expression with its type.
type Expr struct {
	Kind ExprKind
	Type Type
	Data ExprData // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// Var is a named variable. Identity is by pointer.
type Var struct {
	Name string
	Type Type
}

// NewVar creates a variable.
func NewVar(name string, t Type) *Var { return &Var{Name: name, Type: t} }

func (v *Var) String() string { return v.Name }

// LiteralData holds data for ExprLiteral. Tensor literals store their
// scalars in row-major order in Values.
type LiteralData struct {
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Values []float64
}

func (LiteralData) exprData() {}

// VarData holds data for ExprVar.
type VarData struct {
	Var *Var
}

func (VarData) exprData() {}

// LoadData holds data for ExprLoad.
type LoadData struct {
	Buffer *Expr
	Index  *Expr
}

func (LoadData) exprData() {}

// FieldReadData holds data for ExprFieldRead.
type FieldReadData struct {
	ElementOrSet *Expr
	Field        string
}

func (FieldReadData) exprData() {}

// TensorReadData holds data for ExprTensorRead.
type TensorReadData struct {
	Tensor  *Expr
	Indices []*Expr
}

func (TensorReadData) exprData() {}

// TupleReadData holds data for ExprTupleRead.
type TupleReadData struct {
	Tuple *Expr
	Index *Expr
}

func (TupleReadData) exprData() {}

// IndexReadData holds data for ExprIndexRead.
type IndexReadData struct {
	EdgeSet *Expr
	Kind    string // "endpoints" or "neighbors"
}

func (IndexReadData) exprData() {}

// LengthData holds data for ExprLength.
type LengthData struct {
	Set IndexSet
}

func (LengthData) exprData() {}

// UnaryData holds data for ExprNeg and ExprNot.
type UnaryData struct {
	Operand *Expr
}

func (UnaryData) exprData() {}

// BinaryData holds data for arithmetic, comparison and logical operators.
type BinaryData struct {
	Lhs *Expr
	Rhs *Expr
}

func (BinaryData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Func    *Func
	Actuals []*Expr
}

func (CallData) exprData() {}

// IndexedTensorData holds data for ExprIndexedTensor.
type IndexedTensorData struct {
	Tensor    *Expr
	IndexVars []*IndexVar
}

func (IndexedTensorData) exprData() {}

// IndexExprData holds data for ExprIndexExpr.
type IndexExprData struct {
	ResultVars []*IndexVar
	Value      *Expr
}

func (IndexExprData) exprData() {}

// MapData holds data for ExprMap.
type MapData struct {
	Func      *Func
	Target    *Expr
	Neighbors *Expr // nil when the map is over a vertex set
	Partial   []*Expr
	Reduction ReductionOp
}

func (MapData) exprData() {}
