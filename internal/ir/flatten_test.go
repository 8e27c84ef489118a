package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFlattened(t *testing.T) {
	mat := Tensor(Float, n3, n3)
	c := NewVar("C", mat)
	d := NewVar("D", mat)
	s := NewVar("s", ScalarType{Kind: Float})

	i := NewFreeVar("i", n3)
	w := NewFreeVar("w", n3)
	x := NewVar("x", Tensor(Float, n3))
	inner := IndexExpression([]*IndexVar{w}, Indexed(Ref(x), w))
	nested := IndexExpression([]*IndexVar{i}, Binary(ExprAdd, Indexed(Ref(x), i), Indexed(inner, i)))

	tests := []struct {
		name string
		stmt *Stmt
		want bool
	}{
		{"single index expression", Assign(c, matmul()), true},
		{"no index expression", Assign(s, FloatLit(1)), true},
		{"one per statement", Block(Assign(c, matmul()), Assign(d, matmul())), true},
		{"two in one value", Assign(c, Binary(ExprAdd, matmul(), matmul())), false},
		{"printed", Print(matmul()), false},
		{"nested", Assign(NewVar("y", Tensor(Float, n3)), nested), false},
		{"inside loop", While(BoolLit(true), Block(Assign(c, Binary(ExprAdd, matmul(), Ref(d))))), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFlattened(tt.stmt))
		})
	}
}

func TestFlattenHoistsIndexExpressions(t *testing.T) {
	x := NewVar("X", Tensor(Float, n3, n3))
	orig := Assign(x, Binary(ExprAdd, matmul(), matmul()))
	before := StmtString(orig)

	out := Flatten(orig)
	require.True(t, IsFlattened(out))
	assert.Equal(t, StmtBlock, out.Kind)

	want := "var tmp0 : tensor[3,3](float);\n" +
		"tmp0 = (i,j) (A(i,+k) * B(+k,j));\n" +
		"var tmp1 : tensor[3,3](float);\n" +
		"tmp1 = (i,j) (A(i,+k) * B(+k,j));\n" +
		"X = (tmp0 + tmp1);\n"
	assert.Equal(t, want, StmtString(out))
	assert.Equal(t, before, StmtString(orig), "input must not change")
}

func TestFlattenKeepsTopLevelIndexExpression(t *testing.T) {
	i := NewFreeVar("i", n3)
	w := NewFreeVar("w", n3)
	x := NewVar("x", Tensor(Float, n3))
	y := NewVar("y", Tensor(Float, n3))
	inner := IndexExpression([]*IndexVar{w}, Indexed(Ref(x), w))
	outer := IndexExpression([]*IndexVar{i}, Binary(ExprAdd, Indexed(Ref(x), i), Indexed(inner, i)))

	out := Flatten(Assign(y, outer))
	require.True(t, IsFlattened(out))
	stmts := out.Data.(BlockData).Stmts
	require.Len(t, stmts, 3)
	assert.Equal(t, StmtVarDecl, stmts[0].Kind)
	last, ok := WriteValue(stmts[2])
	require.True(t, ok)
	assert.Equal(t, ExprIndexExpr, last.Kind)
	assert.Equal(t, "y = (i) (x(i) + tmp0(i));\n", StmtString(stmts[2]))
}

func TestFlattenAvoidsNamesInUse(t *testing.T) {
	i := NewFreeVar("i", n3)
	w := NewFreeVar("w", n3)
	x := NewVar("tmp0", Tensor(Float, n3))
	y := NewVar("y", Tensor(Float, n3))
	arg := NewVar("tmp1", Tensor(Float, n3))
	inner := IndexExpression([]*IndexVar{w}, Indexed(Ref(x), w))
	outer := IndexExpression([]*IndexVar{i}, Binary(ExprAdd, Indexed(Ref(x), i), Indexed(inner, i)))

	out := Flatten(Assign(y, outer), arg)
	stmts := out.Data.(BlockData).Stmts
	require.Len(t, stmts, 3)
	assert.Equal(t, "var tmp2 : tensor[3](float);\n", StmtString(stmts[0]))
	assert.Equal(t, "y = (i) (tmp0(i) + tmp2(i));\n", StmtString(stmts[2]))
}

func TestFlattenIsIdempotent(t *testing.T) {
	c := NewVar("C", Tensor(Float, n3, n3))
	flat := Block(Assign(c, matmul()), Print(Ref(c)))
	assert.Same(t, flat, Flatten(flat))

	once := Flatten(Assign(c, Binary(ExprMul, matmul(), matmul())))
	assert.Same(t, once, Flatten(once))
}

func TestFlattenNestedStatements(t *testing.T) {
	c := NewVar("C", Tensor(Float, n3, n3))
	i := NewVar("i", ScalarType{Kind: Int})
	s := ForRange(i, IntLit(0), IntLit(2), Block(
		If(BoolLit(true), Block(Print(matmul())), Block(Assign(c, Binary(ExprSub, Ref(c), matmul())))),
	))
	out := Flatten(s)
	assert.True(t, IsFlattened(out))
	assert.Equal(t, StmtForRange, out.Kind)
}
