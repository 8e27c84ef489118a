package ir

// StmtKind enumerates IR statement kinds.
type StmtKind uint8

const (
	// StmtVarDecl declares a local variable.
	StmtVarDecl StmtKind = iota
	// StmtAssign assigns to a variable.
	StmtAssign
	// StmtStore writes a buffer element.
	StmtStore
	// StmtFieldWrite writes a field of an element or set.
	StmtFieldWrite
	// StmtTensorWrite writes a tensor at explicit indices.
	StmtTensorWrite
	// StmtCall calls a function and binds its results.
	StmtCall
	// StmtBlock is an ordered statement list.
	StmtBlock
	// StmtIf is a conditional.
	StmtIf
	// StmtForRange loops over an integer range.
	StmtForRange
	// StmtFor loops over an index set.
	StmtFor
	// StmtWhile loops while a condition holds.
	StmtWhile
	// StmtPrint prints a value.
	StmtPrint
	// StmtPass does nothing.
	StmtPass
	// StmtComment carries a comment into generated code.
	StmtComment
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtVarDecl:
		return "VarDecl"
	case StmtAssign:
		return "Assign"
	case StmtStore:
		return "Store"
	case StmtFieldWrite:
		return "FieldWrite"
	case StmtTensorWrite:
		return "TensorWrite"
	case StmtCall:
		return "Call"
	case StmtBlock:
		return "Block"
	case StmtIf:
		return "If"
	case StmtForRange:
		return "ForRange"
	case StmtFor:
		return "For"
	case StmtWhile:
		return "While"
	case StmtPrint:
		return "Print"
	case StmtPass:
		return "Pass"
	case StmtComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// IsWrite reports whether k stores a computed value.
func (k StmtKind) IsWrite() bool {
	switch k {
	case StmtAssign, StmtStore, StmtFieldWrite, StmtTensorWrite:
		return true
	}
	return false
}

// CompoundOp is the operator of a compound assignment (a += b).
type CompoundOp uint8

const (
	CompoundNone CompoundOp = iota
	CompoundAdd
)

func (op CompoundOp) String() string {
	if op == CompoundAdd {
		return "+="
	}
	return "="
}

// Stmt represents an IR statement.
type Stmt struct {
	Kind StmtKind
	Data StmtData // Kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// VarDeclData holds data for StmtVarDecl.
type VarDeclData struct {
	Var *Var
}

func (VarDeclData) stmtData() {}

// AssignData holds data for StmtAssign.
type AssignData struct {
	Var      *Var
	Value    *Expr
	Compound CompoundOp
}

func (AssignData) stmtData() {}

// StoreData holds data for StmtStore.
type StoreData struct {
	Buffer   *Expr
	Index    *Expr
	Value    *Expr
	Compound CompoundOp
}

func (StoreData) stmtData() {}

// FieldWriteData holds data for StmtFieldWrite.
type FieldWriteData struct {
	ElementOrSet *Expr
	Field        string
	Value        *Expr
	Compound     CompoundOp
}

func (FieldWriteData) stmtData() {}

// TensorWriteData holds data for StmtTensorWrite.
type TensorWriteData struct {
	Tensor   *Expr
	Indices  []*Expr
	Value    *Expr
	Compound CompoundOp
}

func (TensorWriteData) stmtData() {}

// CallStmtData holds data for StmtCall.
type CallStmtData struct {
	Results []*Var
	Callee  *Func
	Actuals []*Expr
}

func (CallStmtData) stmtData() {}

// BlockData holds data for StmtBlock.
type BlockData struct {
	Stmts []*Stmt
}

func (BlockData) stmtData() {}

// IfData holds data for StmtIf.
type IfData struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt // nil if no else branch
}

func (IfData) stmtData() {}

// ForRangeData holds data for StmtForRange.
type ForRangeData struct {
	Var   *Var
	Start *Expr
	End   *Expr
	Body  *Stmt
}

func (ForRangeData) stmtData() {}

// ForData holds data for StmtFor.
type ForData struct {
	Var    *Var
	Domain IndexSet
	Body   *Stmt
}

func (ForData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Stmt
}

func (WhileData) stmtData() {}

// PrintData holds data for StmtPrint.
type PrintData struct {
	Expr *Expr
}

func (PrintData) stmtData() {}

// PassData holds data for StmtPass.
type PassData struct{}

func (PassData) stmtData() {}

// CommentData holds data for StmtComment.
type CommentData struct {
	Text string
}

func (CommentData) stmtData() {}

// WriteValue returns the value stored by a write statement.
func WriteValue(s *Stmt) (*Expr, bool) {
	if s == nil {
		return nil, false
	}
	switch d := s.Data.(type) {
	case AssignData:
		return d.Value, true
	case StoreData:
		return d.Value, true
	case FieldWriteData:
		return d.Value, true
	case TensorWriteData:
		return d.Value, true
	}
	return nil, false
}
