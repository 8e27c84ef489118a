package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexDomain(t *testing.T) {
	d := Domain(Range(2), Range(3))
	size, ok := d.Size()
	require.True(t, ok)
	assert.Equal(t, 6, size)
	assert.Equal(t, "2x3", d.String())
	assert.True(t, d.Equal(Domain(Range(2), Range(3))))
	assert.False(t, d.Equal(Domain(Range(2))))

	_, ok = Domain(Named("points")).Size()
	assert.False(t, ok)
	_, ok = Domain().Size()
	assert.False(t, ok)
	assert.Equal(t, "points", Domain(Named("points")).String())
	assert.Equal(t, "*", Dynamic().String())
}

func TestTypeStrings(t *testing.T) {
	point := &ElementType{Name: "Point", Fields: []Field{{Name: "x", Type: Tensor(Float, n3)}}}
	assert.Equal(t, "set{Point}", (&SetType{Element: point}).String())
	assert.Equal(t, "set{Point}(points,points)", (&SetType{Element: point, Endpoints: []string{"points", "points"}}).String())
	assert.Equal(t, "(Point*2)", (&TupleType{Element: point, Size: 2}).String())

	col := Tensor(Float, n3)
	col.ColumnVector = true
	assert.Equal(t, "tensor[3](float)'", col.String())

	f, ok := point.Field("x")
	require.True(t, ok)
	assert.Equal(t, "tensor[3](float)", f.Type.String())
	_, ok = point.Field("y")
	assert.False(t, ok)
}

func TestIndexVar(t *testing.T) {
	assert.Equal(t, "i", NewFreeVar("i", n3).String())
	assert.Equal(t, "+k", NewReductionVar("k", n3, ReduceSum).String())
	assert.Equal(t, "max:m", NewReductionVar("m", n3, ReduceMax).String())
	assert.Panics(t, func() { NewReductionVar("k", n3, ReduceNone) })
}

func TestParseReductionOp(t *testing.T) {
	for in, want := range map[string]ReductionOp{
		"":        ReduceNone,
		"+":       ReduceSum,
		"sum":     ReduceSum,
		"product": ReduceProduct,
		"min":     ReduceMin,
		"max":     ReduceMax,
	} {
		got, err := ParseReductionOp(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseReductionOp("avg")
	assert.ErrorContains(t, err, `unknown reduction operator "avg"`)
}

func TestParseFuncKind(t *testing.T) {
	k, err := ParseFuncKind("external")
	require.NoError(t, err)
	assert.Equal(t, FuncExternal, k)
	_, err = ParseFuncKind("inline")
	assert.Error(t, err)
}

func TestProgramLookup(t *testing.T) {
	a, b := fn("a"), fn("b")
	p := &Program{Funcs: []*Func{a, b}}
	got, ok := p.Lookup("b")
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, 1, p.Index(b))
	assert.Equal(t, -1, p.Index(fn("b")))
}

func TestBuilderTypes(t *testing.T) {
	vec := NewVar("v", Tensor(Float, n3))
	s := NewVar("s", ScalarType{Kind: Float})
	assert.Equal(t, Tensor(Float, n3), Binary(ExprMul, Ref(s), Ref(vec)).Type)
	assert.Equal(t, ScalarType{Kind: Boolean}, Binary(ExprLt, Ref(s), FloatLit(0)).Type)
	assert.Equal(t, ScalarType{Kind: Float}, IndexExpression(nil, FloatLit(1)).Type)
	assert.Panics(t, func() { Binary(ExprNeg, Ref(s), Ref(s)) })
	assert.Panics(t, func() { Unary(ExprAdd, Ref(s)) })
}
