package ir

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Callees returns the functions called directly by f, once each, in the
// order their call sites appear in f's body.
func Callees(f *Func) []*Func {
	if f == nil || f.Body == nil {
		return nil
	}
	var out []*Func
	seen := make(map[*Func]struct{})
	add := func(g *Func) {
		if g == nil {
			return
		}
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	WalkStmt(f.Body, Visitor{
		Stmt: func(s *Stmt) Action {
			if d, ok := s.Data.(CallStmtData); ok {
				add(d.Callee)
			}
			return Continue
		},
		Expr: func(e *Expr) Action {
			switch d := e.Data.(type) {
			case CallData:
				add(d.Func)
			case MapData:
				add(d.Func)
			}
			return Continue
		},
	})
	return out
}

// GetCallTree returns f followed by every function transitively reachable
// from it through calls. Each function appears once, at the position it is
// first discovered by a depth-first, left-to-right walk of call sites: a
// callee is listed before its own callees are explored. Functions already
// listed are not re-entered, so recursion terminates.
func GetCallTree(f *Func) []*Func {
	if f == nil {
		return nil
	}
	var order []*Func
	visited := make(map[*Func]struct{})
	var visit func(g *Func)
	visit = func(g *Func) {
		if _, ok := visited[g]; ok {
			return
		}
		visited[g] = struct{}{}
		order = append(order, g)
		for _, c := range Callees(g) {
			visit(c)
		}
	}
	visit(f)
	return order
}

// Reachable returns the set of program function indices reachable from the
// given entry points.
func (p *Program) Reachable(entries ...*Func) (*bitset.BitSet, error) {
	set := bitset.New(uint(len(p.Funcs)))
	for _, entry := range entries {
		for _, g := range GetCallTree(entry) {
			i := p.Index(g)
			if i < 0 {
				return nil, fmt.Errorf("function %s called from %s is not part of the program", g.Name, entry.Name)
			}
			set.Set(uint(i))
		}
	}
	return set, nil
}

// Unreachable returns the functions of p, in program order, that no entry
// point can reach.
func (p *Program) Unreachable(entries ...*Func) ([]*Func, error) {
	set, err := p.Reachable(entries...)
	if err != nil {
		return nil, err
	}
	var out []*Func
	for i, f := range p.Funcs {
		if !set.Test(uint(i)) {
			out = append(out, f)
		}
	}
	return out, nil
}
