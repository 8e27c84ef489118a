package hir

import (
	"fmt"
	"slices"
)

// Clone returns a deep copy of the tree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{Kind: n.Kind, Pos: n.Pos, Data: cloneData(n.Data)}
}

func cloneAll(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

func cloneData(d Data) Data {
	switch d := d.(type) {
	case ProgramData:
		return ProgramData{Elems: cloneAll(d.Elems)}
	case ScalarTypeData, ElementTypeRefData, RangeIndexSetData, SetIndexSetData,
		LeafData, VarExprData, IntLiteralData, FloatLiteralData, BoolLiteralData, StringLiteralData:
		return d
	case SetTypeData:
		return SetTypeData{Element: Clone(d.Element), Endpoints: cloneAll(d.Endpoints)}
	case TupleTypeData:
		return TupleTypeData{Element: Clone(d.Element), Length: d.Length}
	case TensorTypeData:
		return TensorTypeData{IndexSets: cloneAll(d.IndexSets), BlockType: Clone(d.BlockType), Transposed: d.Transposed}
	case FieldData:
		return FieldData{Name: d.Name, Type: Clone(d.Type)}
	case ElementTypeDeclData:
		return ElementTypeDeclData{Name: d.Name, Fields: cloneAll(d.Fields)}
	case IdentData:
		return cloneIdent(d)
	case ArgumentData:
		return ArgumentData{IdentData: cloneIdent(d.IdentData), InOut: d.InOut}
	case ExternData:
		return ExternData{Var: Clone(d.Var)}
	case FuncData:
		return FuncData{
			Name:     d.Name,
			Args:     cloneAll(d.Args),
			Results:  cloneAll(d.Results),
			Body:     Clone(d.Body),
			Exported: d.Exported,
		}
	case VarData:
		return VarData{Var: Clone(d.Var), Init: Clone(d.Init)}
	case BlockData:
		return BlockData{Stmts: cloneAll(d.Stmts)}
	case WhileData:
		return WhileData{Cond: Clone(d.Cond), Body: Clone(d.Body)}
	case IfData:
		return IfData{Cond: Clone(d.Cond), Then: Clone(d.Then), Else: Clone(d.Else)}
	case IndexSetDomainData:
		return IndexSetDomainData{Set: Clone(d.Set)}
	case RangeDomainData:
		return RangeDomainData{Lower: Clone(d.Lower), Upper: Clone(d.Upper)}
	case ForData:
		return ForData{Var: d.Var, Domain: Clone(d.Domain), Body: Clone(d.Body)}
	case PrintData:
		return PrintData{Expr: Clone(d.Expr)}
	case ExprStmtData:
		return ExprStmtData{Expr: Clone(d.Expr)}
	case AssignData:
		return AssignData{ExprStmtData: ExprStmtData{Expr: Clone(d.Expr)}, Lhs: cloneAll(d.Lhs)}
	case TestData:
		return TestData{Func: d.Func, Args: cloneAll(d.Args), Expected: Clone(d.Expected)}
	case ExprParamData:
		return ExprParamData{Expr: Clone(d.Expr)}
	case MapData:
		return MapData{Func: d.Func, Target: d.Target, Reduction: d.Reduction, PartialActuals: cloneAll(d.PartialActuals)}
	case UnaryData:
		return UnaryData{Operand: Clone(d.Operand)}
	case BinaryData:
		return BinaryData{Lhs: Clone(d.Lhs), Rhs: Clone(d.Rhs)}
	case NaryData:
		return NaryData{Operands: cloneAll(d.Operands)}
	case EqData:
		return EqData{NaryData: NaryData{Operands: cloneAll(d.Operands)}, Ops: slices.Clone(d.Ops)}
	case CallData:
		return CallData{NaryData: NaryData{Operands: cloneAll(d.Operands)}, Func: d.Func}
	case TensorReadData:
		return TensorReadData{Tensor: Clone(d.Tensor), Indices: cloneAll(d.Indices)}
	case FieldReadData:
		return FieldReadData{SetOrElem: Clone(d.SetOrElem), Field: d.Field}
	case TensorLiteralData:
		return TensorLiteralData{Elems: cloneAll(d.Elems), Transposed: d.Transposed}
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("hir: cannot clone %T", d))
	}
}

func cloneIdent(d IdentData) IdentData {
	return IdentData{Name: d.Name, Type: Clone(d.Type)}
}
