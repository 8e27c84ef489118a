package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fn(name string) *Func { return &Func{Name: name, Body: Block()} }

func calls(f *Func, callees ...*Func) {
	stmts := make([]*Stmt, len(callees))
	for i, c := range callees {
		stmts[i] = CallStmt(nil, c)
	}
	f.Body = Block(stmts...)
}

func funcNames(fs []*Func) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestGetCallTreeChain(t *testing.T) {
	main, a, b := fn("main"), fn("a"), fn("b")
	calls(main, a)
	calls(a, b)
	assert.Equal(t, []string{"main", "a", "b"}, funcNames(GetCallTree(main)))
	assert.Equal(t, []string{"b"}, funcNames(GetCallTree(b)))
}

func TestGetCallTreeRecursion(t *testing.T) {
	p, q := fn("p"), fn("q")
	calls(p, q)
	calls(q, p)
	assert.Equal(t, []string{"p", "q"}, funcNames(GetCallTree(p)))
	assert.Equal(t, []string{"q", "p"}, funcNames(GetCallTree(q)))

	self := fn("self")
	calls(self, self)
	assert.Equal(t, []string{"self"}, funcNames(GetCallTree(self)))
}

func TestGetCallTreePreorder(t *testing.T) {
	main, a, b, c := fn("main"), fn("a"), fn("b"), fn("c")
	calls(main, a, c, a)
	calls(a, b)
	calls(c, b)
	assert.Equal(t, []string{"main", "a", "b", "c"}, funcNames(GetCallTree(main)))
	assert.Equal(t, []string{"a", "c"}, funcNames(Callees(main)))
}

func TestCallsInsideExpressions(t *testing.T) {
	r := NewVar("r", ScalarType{Kind: Float})
	g := &Func{Name: "g", Kind: FuncExternal, Results: []*Var{r}}
	h := &Func{Name: "h", Kind: FuncExternal, Results: []*Var{r}}
	x := NewVar("x", ScalarType{Kind: Float})
	springs := NewVar("springs", &SetType{Element: &ElementType{Name: "Spring"}})

	main := fn("main")
	main.Body = Block(
		Assign(x, Call(g)),
		If(BoolLit(true), Block(Assign(x, MapOver(h, Ref(springs), ReduceSum))), nil),
	)
	assert.Equal(t, []string{"main", "g", "h"}, funcNames(GetCallTree(main)))
}

func TestGetCallTreeEdges(t *testing.T) {
	assert.Nil(t, GetCallTree(nil))
	ext := &Func{Name: "sqrt", Kind: FuncIntrinsic}
	assert.Equal(t, []string{"sqrt"}, funcNames(GetCallTree(ext)))
}

func TestUnreachable(t *testing.T) {
	main, a, b, orphan := fn("main"), fn("a"), fn("b"), fn("orphan")
	calls(main, a)
	calls(a, b)
	calls(orphan, b)
	p := &Program{Funcs: []*Func{main, a, b, orphan}}

	set, err := p.Reachable(main)
	require.NoError(t, err)
	assert.Equal(t, uint(3), set.Count())

	dead, err := p.Unreachable(main)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, funcNames(dead))

	dead, err = p.Unreachable(main, orphan)
	require.NoError(t, err)
	assert.Empty(t, dead)
}

func TestReachableRejectsForeignCallee(t *testing.T) {
	main, stray := fn("main"), fn("stray")
	calls(main, stray)
	p := &Program{Funcs: []*Func{main}}
	_, err := p.Reachable(main)
	assert.ErrorContains(t, err, "function stray called from main is not part of the program")
}
