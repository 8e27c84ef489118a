package irfile

import (
	"fmt"

	"tessera/internal/ir"
)

// scope resolves names inside one function body. Variables are
// function-scoped: a decl or loop makes the name visible to every later
// statement.
type scope struct {
	d     *decoder
	vars  map[string]*ir.Var
	ivars map[string]*ir.IndexVar
}

func (s *scope) variable(name string) (*ir.Var, error) {
	v, ok := s.vars[ident(name)]
	if !ok {
		return nil, unknown("variable", name)
	}
	return v, nil
}

func (s *scope) indexVars(names []string) ([]*ir.IndexVar, error) {
	out := make([]*ir.IndexVar, len(names))
	for i, n := range names {
		v, ok := s.ivars[ident(n)]
		if !ok {
			return nil, unknown("index variable", n)
		}
		out[i] = v
	}
	return out, nil
}

func (s *scope) callee(name string) (*ir.Func, error) {
	f, ok := s.d.funcs[ident(name)]
	if !ok {
		return nil, unknown("function", name)
	}
	return f, nil
}

var binaryOps = map[string]ir.ExprKind{
	"+":   ir.ExprAdd,
	"-":   ir.ExprSub,
	"*":   ir.ExprMul,
	"/":   ir.ExprDiv,
	"==":  ir.ExprEq,
	"!=":  ir.ExprNe,
	">":   ir.ExprGt,
	"<":   ir.ExprLt,
	">=":  ir.ExprGe,
	"<=":  ir.ExprLe,
	"and": ir.ExprAnd,
	"or":  ir.ExprOr,
	"xor": ir.ExprXor,
}

func (s *scope) exprs(list []*Expr) ([]*ir.Expr, error) {
	out := make([]*ir.Expr, len(list))
	for i, e := range list {
		x, err := s.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (s *scope) expr(e *Expr) (*ir.Expr, error) {
	if e == nil {
		return nil, bad("missing expression")
	}
	out, err := s.exprForm(e)
	if err != nil {
		return nil, err
	}
	if e.Type != nil && e.Tensor == nil {
		t, err := s.d.typ(e.Type)
		if err != nil {
			return nil, err
		}
		out.Type = t
	}
	return out, nil
}

func (s *scope) one(list []*Expr, what string) (*ir.Expr, error) {
	if len(list) != 1 {
		return nil, bad("%s takes one index, got %d", what, len(list))
	}
	return s.expr(list[0])
}

func (s *scope) exprForm(e *Expr) (*ir.Expr, error) {
	switch {
	case e.Int != nil:
		return ir.IntLit(*e.Int), nil
	case e.Float != nil:
		return ir.FloatLit(*e.Float), nil
	case e.Bool != nil:
		return ir.BoolLit(*e.Bool), nil
	case e.Str != nil:
		return ir.StringLit(*e.Str), nil
	case e.Tensor != nil:
		t, err := s.d.typ(e.Type)
		if err != nil {
			return nil, fmt.Errorf("tensor literal: %w", err)
		}
		tt, ok := t.(*ir.TensorType)
		if !ok {
			return nil, bad("tensor literal of type %s", t)
		}
		if size, fixed := literalSize(tt); fixed && size != len(e.Tensor) {
			return nil, bad("tensor literal of type %s has %d values", tt, len(e.Tensor))
		}
		return ir.TensorLit(tt, e.Tensor...), nil
	case e.Var != "":
		v, err := s.variable(e.Var)
		if err != nil {
			return nil, err
		}
		return ir.Ref(v), nil
	case e.Op != "":
		return s.operator(e)
	case e.Call != "":
		f, err := s.callee(e.Call)
		if err != nil {
			return nil, err
		}
		args, err := s.exprs(e.Args)
		if err != nil {
			return nil, err
		}
		return ir.Call(f, args...), nil
	case e.Field != "":
		of, err := s.expr(e.Of)
		if err != nil {
			return nil, err
		}
		field := ident(e.Field)
		if e.Type != nil {
			return ir.FieldRead(of, field, nil), nil
		}
		t, err := fieldType(of, field)
		if err != nil {
			return nil, err
		}
		return ir.FieldRead(of, field, t), nil
	case e.Read != nil:
		t, err := s.expr(e.Read)
		if err != nil {
			return nil, err
		}
		at, err := s.exprs(e.At)
		if err != nil {
			return nil, err
		}
		return ir.TensorRead(t, at...), nil
	case e.Load != nil:
		buf, err := s.expr(e.Load)
		if err != nil {
			return nil, err
		}
		idx, err := s.one(e.At, "load")
		if err != nil {
			return nil, err
		}
		return ir.Load(buf, idx, ir.ScalarType{Kind: ir.Float}), nil
	case e.Tuple != nil:
		tup, err := s.expr(e.Tuple)
		if err != nil {
			return nil, err
		}
		idx, err := s.one(e.At, "tuple read")
		if err != nil {
			return nil, err
		}
		return ir.TupleRead(tup, idx), nil
	case e.IndexRead != nil:
		if e.Kind != "endpoints" && e.Kind != "neighbors" {
			return nil, bad("index read kind %q (expected endpoints|neighbors)", e.Kind)
		}
		set, err := s.expr(e.IndexRead)
		if err != nil {
			return nil, err
		}
		return ir.IndexRead(set, e.Kind), nil
	case e.Length != "":
		set, err := level(e.Length)
		if err != nil {
			return nil, err
		}
		return ir.Length(set), nil
	case e.Indexed != nil:
		t, err := s.expr(e.Indexed)
		if err != nil {
			return nil, err
		}
		vars, err := s.indexVars(e.Vars)
		if err != nil {
			return nil, err
		}
		return ir.Indexed(t, vars...), nil
	case e.Value != nil:
		result, err := s.indexVars(e.Result)
		if err != nil {
			return nil, err
		}
		value, err := s.expr(e.Value)
		if err != nil {
			return nil, err
		}
		return ir.IndexExpression(result, value), nil
	case e.Map != "":
		return s.mapExpr(e)
	}
	return nil, bad("expression has no recognised form")
}

func literalSize(t *ir.TensorType) (int, bool) {
	size := 1
	for _, d := range t.Dims {
		n, ok := d.Size()
		if !ok {
			return 0, false
		}
		size *= n
	}
	return size, true
}

func (s *scope) operator(e *Expr) (*ir.Expr, error) {
	args, err := s.exprs(e.Args)
	if err != nil {
		return nil, err
	}
	switch {
	case len(args) == 1 && (e.Op == "-" || e.Op == "neg"):
		return ir.Unary(ir.ExprNeg, args[0]), nil
	case len(args) == 1 && e.Op == "not":
		return ir.Unary(ir.ExprNot, args[0]), nil
	case len(args) == 2:
		if k, ok := binaryOps[e.Op]; ok {
			return ir.Binary(k, args[0], args[1]), nil
		}
	}
	return nil, bad("operator %q with %d operands", e.Op, len(args))
}

func (s *scope) mapExpr(e *Expr) (*ir.Expr, error) {
	f, err := s.callee(e.Map)
	if err != nil {
		return nil, err
	}
	target, err := s.expr(e.To)
	if err != nil {
		return nil, err
	}
	partial, err := s.exprs(e.Partial)
	if err != nil {
		return nil, err
	}
	op, err := ir.ParseReductionOp(e.Reduce)
	if err != nil {
		return nil, err
	}
	out := ir.MapOver(f, target, op, partial...)
	if e.With != nil {
		nb, err := s.expr(e.With)
		if err != nil {
			return nil, err
		}
		d := out.Data.(ir.MapData)
		d.Neighbors = nb
		out.Data = d
	}
	return out, nil
}

// fieldType is the type of reading field from of. Reading from a set yields
// a tensor over the set whose blocks are the field's type.
func fieldType(of *ir.Expr, field string) (ir.Type, error) {
	switch t := of.Type.(type) {
	case *ir.ElementType:
		f, ok := t.Field(field)
		if !ok {
			return nil, unknown("field", t.Name+"."+field)
		}
		return f.Type, nil
	case *ir.SetType:
		f, ok := t.Element.Field(field)
		if !ok {
			return nil, unknown("field", t.Element.Name+"."+field)
		}
		set := ir.Dynamic()
		if v, ok := of.Data.(ir.VarData); ok {
			set = ir.Named(v.Var.Name)
		}
		return liftOverSet(set, f.Type)
	}
	return nil, bad("field %s read from %v", field, of.Type)
}

func liftOverSet(set ir.IndexSet, t ir.Type) (ir.Type, error) {
	switch t := t.(type) {
	case ir.ScalarType:
		return ir.Tensor(t.Kind, ir.Domain(set)), nil
	case *ir.TensorType:
		if len(t.Dims) == 1 {
			levels := append([]ir.IndexSet{set}, t.Dims[0].Sets...)
			return ir.Tensor(t.Component, ir.Domain(levels...)), nil
		}
	}
	return nil, bad("set field of type %s needs an explicit type", t)
}
