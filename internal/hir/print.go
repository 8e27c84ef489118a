package hir

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps HIR trees as indented text, one node per line.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the tree rooted at n to w.
func Dump(w io.Writer, n *Node) error {
	return NewPrinter(w).Print(n)
}

// Print writes the tree rooted at n.
func (p *Printer) Print(n *Node) error {
	walker := &Walker{
		Enter: func(n *Node) bool {
			p.printf("%s%s\n", strings.Repeat("  ", p.indent), Label(n))
			p.indent++
			return true
		},
		Leave: func(*Node) {
			p.indent--
		},
	}
	walker.Walk(n)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Label renders the kind of n together with its non-child fields.
func Label(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	k := n.Kind.String()
	switch d := n.Data.(type) {
	case ScalarTypeData:
		return k + " " + d.Scalar.String()
	case ElementTypeRefData:
		return k + " " + d.Name
	case TupleTypeData:
		return fmt.Sprintf("%s *%d", k, d.Length)
	case TensorTypeData:
		if d.Transposed {
			return k + " '"
		}
	case RangeIndexSetData:
		return fmt.Sprintf("%s %d", k, d.Extent)
	case SetIndexSetData:
		return k + " " + d.Set
	case FieldData:
		return k + " " + d.Name
	case ElementTypeDeclData:
		return k + " " + d.Name
	case IdentData:
		return k + " " + d.Name
	case ArgumentData:
		if d.InOut {
			return k + " inout " + d.Name
		}
		return k + " " + d.Name
	case FuncData:
		if d.Exported {
			return k + " export " + d.Name
		}
		return k + " " + d.Name
	case ForData:
		return k + " " + d.Var
	case TestData:
		return k + " " + d.Func
	case MapData:
		s := fmt.Sprintf("%s %s to %s", k, d.Func, d.Target)
		if d.Reduction != "" {
			s += " reduce " + d.Reduction
		}
		return s
	case EqData:
		ops := make([]string, len(d.Ops))
		for i, op := range d.Ops {
			ops[i] = op.String()
		}
		return k + " " + strings.Join(ops, " ")
	case CallData:
		return k + " " + d.Func
	case FieldReadData:
		return k + " ." + d.Field
	case VarExprData:
		return k + " " + d.Name
	case IntLiteralData:
		return fmt.Sprintf("%s %d", k, d.Value)
	case FloatLiteralData:
		return fmt.Sprintf("%s %g", k, d.Value)
	case BoolLiteralData:
		return fmt.Sprintf("%s %t", k, d.Value)
	case StringLiteralData:
		return fmt.Sprintf("%s %q", k, d.Value)
	case TensorLiteralData:
		if d.Transposed {
			return k + " '"
		}
	}
	return k
}
