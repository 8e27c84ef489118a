package irfile

import (
	"fmt"

	"tessera/internal/ir"
)

func compound(s string) (ir.CompoundOp, error) {
	switch s {
	case "", "=":
		return ir.CompoundNone, nil
	case "+=":
		return ir.CompoundAdd, nil
	}
	return ir.CompoundNone, bad("compound operator %q", s)
}

func (s *scope) block(list []*Stmt) (*ir.Stmt, error) {
	stmts := make([]*ir.Stmt, 0, len(list))
	for i, st := range list {
		out, err := s.stmt(st)
		if err != nil {
			return nil, fmt.Errorf("stmt %d: %w", i, err)
		}
		stmts = append(stmts, out)
	}
	return ir.Block(stmts...), nil
}

func (s *scope) declare(v *ir.Var) error {
	if _, dup := s.vars[v.Name]; dup {
		return bad("variable %s declared twice", v.Name)
	}
	s.vars[v.Name] = v
	return nil
}

func (s *scope) stmt(st *Stmt) (*ir.Stmt, error) {
	if st == nil {
		return nil, bad("missing statement")
	}
	op, err := compound(st.Compound)
	if err != nil {
		return nil, err
	}
	switch {
	case st.Decl != nil:
		vars, err := s.d.vars([]*Var{st.Decl})
		if err != nil {
			return nil, err
		}
		if err := s.declare(vars[0]); err != nil {
			return nil, err
		}
		return ir.Decl(vars[0]), nil

	case st.Assign != "":
		v, err := s.variable(st.Assign)
		if err != nil {
			return nil, err
		}
		val, err := s.expr(st.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Stmt{Kind: ir.StmtAssign, Data: ir.AssignData{Var: v, Value: val, Compound: op}}, nil

	case st.Store != nil:
		buf, err := s.expr(st.Store)
		if err != nil {
			return nil, err
		}
		idx, err := s.one(st.At, "store")
		if err != nil {
			return nil, err
		}
		val, err := s.expr(st.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Stmt{Kind: ir.StmtStore, Data: ir.StoreData{Buffer: buf, Index: idx, Value: val, Compound: op}}, nil

	case st.FieldWrite != nil:
		if st.Field == "" {
			return nil, bad("field write without a field")
		}
		target, err := s.expr(st.FieldWrite)
		if err != nil {
			return nil, err
		}
		val, err := s.expr(st.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Stmt{Kind: ir.StmtFieldWrite, Data: ir.FieldWriteData{
			ElementOrSet: target, Field: ident(st.Field), Value: val, Compound: op,
		}}, nil

	case st.Write != nil:
		t, err := s.expr(st.Write)
		if err != nil {
			return nil, err
		}
		at, err := s.exprs(st.At)
		if err != nil {
			return nil, err
		}
		val, err := s.expr(st.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Stmt{Kind: ir.StmtTensorWrite, Data: ir.TensorWriteData{Tensor: t, Indices: at, Value: val, Compound: op}}, nil

	case st.Call != "":
		f, err := s.callee(st.Call)
		if err != nil {
			return nil, err
		}
		args, err := s.exprs(st.Args)
		if err != nil {
			return nil, err
		}
		results := make([]*ir.Var, len(st.Results))
		for i, r := range st.Results {
			if results[i], err = s.variable(r); err != nil {
				return nil, err
			}
		}
		return ir.CallStmt(results, f, args...), nil

	case st.If != nil:
		cond, err := s.expr(st.If)
		if err != nil {
			return nil, err
		}
		then, err := s.block(st.Then)
		if err != nil {
			return nil, fmt.Errorf("then: %w", err)
		}
		var els *ir.Stmt
		if len(st.Else) > 0 {
			if els, err = s.block(st.Else); err != nil {
				return nil, fmt.Errorf("else: %w", err)
			}
		}
		return ir.If(cond, then, els), nil

	case st.For != "":
		return s.loop(st)

	case st.While != nil:
		cond, err := s.expr(st.While)
		if err != nil {
			return nil, err
		}
		body, err := s.block(st.Do)
		if err != nil {
			return nil, err
		}
		return ir.While(cond, body), nil

	case st.Print != nil:
		e, err := s.expr(st.Print)
		if err != nil {
			return nil, err
		}
		return ir.Print(e), nil

	case st.Pass:
		return ir.Pass(), nil

	case st.Comment != nil:
		return ir.Comment(*st.Comment), nil
	}
	return nil, bad("statement has no recognised form")
}

// loop decodes both loop forms: "in" iterates an index set, "from"/"until"
// an integer range. The loop variable stays visible after the loop.
func (s *scope) loop(st *Stmt) (*ir.Stmt, error) {
	name := ident(st.For)
	v, ok := s.vars[name]
	if !ok {
		v = ir.NewVar(name, ir.ScalarType{Kind: ir.Int})
		s.vars[name] = v
	}
	if st.In != "" {
		set, err := level(st.In)
		if err != nil {
			return nil, err
		}
		body, err := s.block(st.Do)
		if err != nil {
			return nil, err
		}
		return ir.For(v, set, body), nil
	}
	if st.From == nil || st.Until == nil {
		return nil, bad("loop over %s needs in, or from and until", name)
	}
	start, err := s.expr(st.From)
	if err != nil {
		return nil, err
	}
	end, err := s.expr(st.Until)
	if err != nil {
		return nil, err
	}
	body, err := s.block(st.Do)
	if err != nil {
		return nil, err
	}
	return ir.ForRange(v, start, end, body), nil
}
