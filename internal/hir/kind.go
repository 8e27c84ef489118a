package hir

// Kind enumerates HIR node kinds.
// The set is closed: every kind has a String name, a base category and a
// default traversal in walk.go.
type Kind uint8

const (
	// KindInvalid is the zero kind and never appears in a well-formed tree.
	KindInvalid Kind = iota

	// KindProgram is the root: an ordered list of top-level elements.
	KindProgram

	// Types.
	KindScalarType
	KindElementTypeRef
	KindSetType
	KindTupleType
	KindNonScalarTensorType
	KindRangeIndexSet
	KindSetIndexSet
	KindDynamicIndexSet

	// Declarations.
	KindField
	KindElementTypeDecl
	KindIdentDecl
	KindArgument
	KindExternDecl
	KindFuncDecl
	KindProcDecl
	KindVarDecl
	KindConstDecl

	// Statements.
	KindStmtBlock
	KindWhileStmt
	KindDoWhileStmt
	KindIfStmt
	KindIndexSetDomain
	KindRangeDomain
	KindForStmt
	KindPrintStmt
	KindExprStmt
	KindAssignStmt
	KindTest

	// Expressions.
	KindExprParam
	KindSliceParam
	KindMapExpr
	KindUnaryExpr
	KindNotExpr
	KindNegExpr
	KindTransposeExpr
	KindBinaryExpr
	KindOrExpr
	KindAndExpr
	KindXorExpr
	KindAddExpr
	KindSubExpr
	KindMulExpr
	KindDivExpr
	KindElwiseMulExpr
	KindElwiseDivExpr
	KindExpExpr
	KindNaryExpr
	KindEqExpr
	KindCallExpr
	KindTensorReadExpr
	KindFieldReadExpr
	KindVarExpr
	KindIntLiteral
	KindFloatLiteral
	KindBoolLiteral
	KindStringLiteral
	KindDenseNDTensorLiteral

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:              "Invalid",
	KindProgram:              "Program",
	KindScalarType:           "ScalarType",
	KindElementTypeRef:       "ElementTypeRef",
	KindSetType:              "SetType",
	KindTupleType:            "TupleType",
	KindNonScalarTensorType:  "NonScalarTensorType",
	KindRangeIndexSet:        "RangeIndexSet",
	KindSetIndexSet:          "SetIndexSet",
	KindDynamicIndexSet:      "DynamicIndexSet",
	KindField:                "Field",
	KindElementTypeDecl:      "ElementTypeDecl",
	KindIdentDecl:            "IdentDecl",
	KindArgument:             "Argument",
	KindExternDecl:           "ExternDecl",
	KindFuncDecl:             "FuncDecl",
	KindProcDecl:             "ProcDecl",
	KindVarDecl:              "VarDecl",
	KindConstDecl:            "ConstDecl",
	KindStmtBlock:            "StmtBlock",
	KindWhileStmt:            "WhileStmt",
	KindDoWhileStmt:          "DoWhileStmt",
	KindIfStmt:               "IfStmt",
	KindIndexSetDomain:       "IndexSetDomain",
	KindRangeDomain:          "RangeDomain",
	KindForStmt:              "ForStmt",
	KindPrintStmt:            "PrintStmt",
	KindExprStmt:             "ExprStmt",
	KindAssignStmt:           "AssignStmt",
	KindTest:                 "Test",
	KindExprParam:            "ExprParam",
	KindSliceParam:           "SliceParam",
	KindMapExpr:              "MapExpr",
	KindUnaryExpr:            "UnaryExpr",
	KindNotExpr:              "NotExpr",
	KindNegExpr:              "NegExpr",
	KindTransposeExpr:        "TransposeExpr",
	KindBinaryExpr:           "BinaryExpr",
	KindOrExpr:               "OrExpr",
	KindAndExpr:              "AndExpr",
	KindXorExpr:              "XorExpr",
	KindAddExpr:              "AddExpr",
	KindSubExpr:              "SubExpr",
	KindMulExpr:              "MulExpr",
	KindDivExpr:              "DivExpr",
	KindElwiseMulExpr:        "ElwiseMulExpr",
	KindElwiseDivExpr:        "ElwiseDivExpr",
	KindExpExpr:              "ExpExpr",
	KindNaryExpr:             "NaryExpr",
	KindEqExpr:               "EqExpr",
	KindCallExpr:             "CallExpr",
	KindTensorReadExpr:       "TensorReadExpr",
	KindFieldReadExpr:        "FieldReadExpr",
	KindVarExpr:              "VarExpr",
	KindIntLiteral:           "IntLiteral",
	KindFloatLiteral:         "FloatLiteral",
	KindBoolLiteral:          "BoolLiteral",
	KindStringLiteral:        "StringLiteral",
	KindDenseNDTensorLiteral: "DenseNDTensorLiteral",
}

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Valid reports whether k names a member of the taxonomy.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Base returns the category a specialization delegates to.
// Kinds that are not specializations are their own base.
func (k Kind) Base() Kind {
	switch k {
	case KindArgument:
		return KindIdentDecl
	case KindProcDecl:
		return KindFuncDecl
	case KindConstDecl:
		return KindVarDecl
	case KindDoWhileStmt:
		return KindWhileStmt
	case KindAssignStmt:
		return KindExprStmt
	case KindNotExpr, KindNegExpr, KindTransposeExpr:
		return KindUnaryExpr
	case KindOrExpr, KindAndExpr, KindXorExpr,
		KindAddExpr, KindSubExpr, KindMulExpr, KindDivExpr,
		KindElwiseMulExpr, KindElwiseDivExpr, KindExpExpr:
		return KindBinaryExpr
	case KindEqExpr, KindCallExpr:
		return KindNaryExpr
	default:
		return k
	}
}

// IsType reports whether k is a type node.
func (k Kind) IsType() bool {
	return k >= KindScalarType && k <= KindDynamicIndexSet
}

// IsDecl reports whether k is a declaration node.
func (k Kind) IsDecl() bool {
	return k >= KindField && k <= KindConstDecl
}

// IsStmt reports whether k is a statement node.
func (k Kind) IsStmt() bool {
	return k >= KindStmtBlock && k <= KindTest
}

// IsExpr reports whether k is an expression node.
func (k Kind) IsExpr() bool {
	return k >= KindExprParam && k <= KindDenseNDTensorLiteral
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindProgram; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
