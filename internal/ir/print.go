package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tessera/internal/textutil"
)

// Fprint writes every function of p to w, separated by blank lines.
func Fprint(w io.Writer, p *Program) error {
	for i, f := range p.Funcs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, FuncString(f)); err != nil {
			return err
		}
	}
	return nil
}

// FuncString renders f with its body, ending in a newline.
func FuncString(f *Func) string {
	var sb strings.Builder
	if f.Kind != FuncInternal {
		sb.WriteString(f.Kind.String())
		sb.WriteString(" ")
	}
	fmt.Fprintf(&sb, "func %s(%s)", f.Name, varList(f.Args))
	if len(f.Results) > 0 {
		fmt.Fprintf(&sb, " -> (%s)", varList(f.Results))
	}
	sb.WriteString("\n")
	if f.Body != nil {
		sb.WriteString(textutil.Indent(StmtString(f.Body), 2))
		sb.WriteString("end\n")
	}
	return sb.String()
}

func varList(vars []*Var) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = fmt.Sprintf("%s : %s", v.Name, typeString(v.Type))
	}
	return strings.Join(parts, ", ")
}

func typeString(t Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

func (s *Stmt) String() string { return StmtString(s) }

// StmtString renders s, one line per simple statement, ending in a newline.
func StmtString(s *Stmt) string {
	if s == nil {
		return ""
	}
	switch d := s.Data.(type) {
	case VarDeclData:
		return fmt.Sprintf("var %s : %s;\n", d.Var.Name, typeString(d.Var.Type))
	case AssignData:
		return fmt.Sprintf("%s %s %s;\n", d.Var.Name, d.Compound, ExprString(d.Value))
	case StoreData:
		return fmt.Sprintf("%s[%s] %s %s;\n", ExprString(d.Buffer), ExprString(d.Index), d.Compound, ExprString(d.Value))
	case FieldWriteData:
		return fmt.Sprintf("%s.%s %s %s;\n", ExprString(d.ElementOrSet), d.Field, d.Compound, ExprString(d.Value))
	case TensorWriteData:
		return fmt.Sprintf("%s(%s) %s %s;\n", ExprString(d.Tensor), exprList(d.Indices), d.Compound, ExprString(d.Value))
	case CallStmtData:
		call := fmt.Sprintf("%s(%s)", d.Callee.Name, exprList(d.Actuals))
		if len(d.Results) == 0 {
			return call + ";\n"
		}
		names := make([]string, len(d.Results))
		for i, r := range d.Results {
			names[i] = r.Name
		}
		return fmt.Sprintf("%s = %s;\n", strings.Join(names, ", "), call)
	case BlockData:
		var sb strings.Builder
		for _, c := range d.Stmts {
			sb.WriteString(StmtString(c))
		}
		return sb.String()
	case IfData:
		var sb strings.Builder
		fmt.Fprintf(&sb, "if %s\n", ExprString(d.Cond))
		sb.WriteString(textutil.Indent(StmtString(d.Then), 2))
		if d.Else != nil {
			sb.WriteString("else\n")
			sb.WriteString(textutil.Indent(StmtString(d.Else), 2))
		}
		sb.WriteString("end\n")
		return sb.String()
	case ForRangeData:
		return loop(fmt.Sprintf("for %s in %s:%s", d.Var.Name, ExprString(d.Start), ExprString(d.End)), d.Body)
	case ForData:
		return loop(fmt.Sprintf("for %s in %s", d.Var.Name, d.Domain), d.Body)
	case WhileData:
		return loop("while "+ExprString(d.Cond), d.Body)
	case PrintData:
		return fmt.Sprintf("print %s;\n", ExprString(d.Expr))
	case PassData:
		return "pass;\n"
	case CommentData:
		return "% " + d.Text + "\n"
	default:
		return fmt.Sprintf("<%s>\n", s.Kind)
	}
}

func loop(head string, body *Stmt) string {
	return head + "\n" + textutil.Indent(StmtString(body), 2) + "end\n"
}

func (e *Expr) String() string { return ExprString(e) }

// ExprString renders e on one line.
func ExprString(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch d := e.Data.(type) {
	case LiteralData:
		return literalString(e, d)
	case VarData:
		return d.Var.Name
	case LoadData:
		return fmt.Sprintf("%s[%s]", ExprString(d.Buffer), ExprString(d.Index))
	case FieldReadData:
		return fmt.Sprintf("%s.%s", ExprString(d.ElementOrSet), d.Field)
	case TensorReadData:
		return fmt.Sprintf("%s(%s)", ExprString(d.Tensor), exprList(d.Indices))
	case TupleReadData:
		return fmt.Sprintf("%s(%s)", ExprString(d.Tuple), ExprString(d.Index))
	case IndexReadData:
		return fmt.Sprintf("%s.%s", ExprString(d.EdgeSet), d.Kind)
	case LengthData:
		return fmt.Sprintf("length(%s)", d.Set)
	case UnaryData:
		if e.Kind == ExprNot {
			return "not " + ExprString(d.Operand)
		}
		return "-" + ExprString(d.Operand)
	case BinaryData:
		return fmt.Sprintf("(%s %s %s)", ExprString(d.Lhs), binaryOp(e.Kind), ExprString(d.Rhs))
	case CallData:
		return fmt.Sprintf("%s(%s)", d.Func.Name, exprList(d.Actuals))
	case IndexedTensorData:
		return fmt.Sprintf("%s(%s)", ExprString(d.Tensor), indexVarList(d.IndexVars))
	case IndexExprData:
		return fmt.Sprintf("(%s) %s", indexVarList(d.ResultVars), ExprString(d.Value))
	case MapData:
		s := fmt.Sprintf("map %s to %s", d.Func.Name, ExprString(d.Target))
		if len(d.Partial) > 0 {
			s = fmt.Sprintf("map %s(%s) to %s", d.Func.Name, exprList(d.Partial), ExprString(d.Target))
		}
		if d.Neighbors != nil {
			s += " with " + ExprString(d.Neighbors)
		}
		if d.Reduction != ReduceNone {
			s += " reduce " + d.Reduction.String()
		}
		return s
	default:
		return fmt.Sprintf("<%s>", e.Kind)
	}
}

func literalString(e *Expr, d LiteralData) string {
	switch t := e.Type.(type) {
	case *TensorType:
		parts := make([]string, len(d.Values))
		for i, v := range d.Values {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ScalarType:
		switch t.Kind {
		case Int:
			return strconv.FormatInt(d.Int, 10)
		case Boolean:
			return strconv.FormatBool(d.Bool)
		case String:
			return strconv.Quote(d.Str)
		}
	}
	return strconv.FormatFloat(d.Float, 'g', -1, 64)
}

func binaryOp(k ExprKind) string {
	switch k {
	case ExprAdd:
		return "+"
	case ExprSub:
		return "-"
	case ExprMul:
		return "*"
	case ExprDiv:
		return "/"
	case ExprEq:
		return "=="
	case ExprNe:
		return "!="
	case ExprGt:
		return ">"
	case ExprLt:
		return "<"
	case ExprGe:
		return ">="
	case ExprLe:
		return "<="
	case ExprAnd:
		return "and"
	case ExprOr:
		return "or"
	case ExprXor:
		return "xor"
	default:
		return "?"
	}
}

func exprList(es []*Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = ExprString(e)
	}
	return strings.Join(parts, ",")
}

func indexVarList(vs []*IndexVar) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}
