package irfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/ir"
)

func printed(t *testing.T, p *ir.Program) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ir.Fprint(&buf, p))
	return buf.String()
}

func decodeYAML(t *testing.T, src string) (*ir.Program, error) {
	t.Helper()
	f, err := Unmarshal([]byte(src), FormatYAML)
	require.NoError(t, err)
	return Decode(f)
}

func TestLoadMatmul(t *testing.T) {
	prog, err := Load(filepath.Join("testdata", "matmul.yaml"))
	require.NoError(t, err)

	want := "func matmul(A : tensor[3,3](float), B : tensor[3,3](float)) -> (C : tensor[3,3](float))\n" +
		"  C = (i,j) (A(i,+k) * B(+k,j));\n" +
		"end\n"
	assert.Equal(t, want, printed(t, prog))

	f, ok := prog.Lookup("matmul")
	require.True(t, ok)
	v, ok := ir.WriteValue(f.Body.Data.(ir.BlockData).Stmts[0])
	require.True(t, ok)
	free := ir.GetFreeVars(v)
	red := ir.GetReductionVars(v)
	require.Len(t, free, 2)
	require.Len(t, red, 1)
	assert.Equal(t, "i", free[0].Name)
	assert.Equal(t, "j", free[1].Name)
	assert.Equal(t, "k", red[0].Name)
	assert.True(t, ir.IsFlattened(f.Body))
}

func TestLoadSprings(t *testing.T) {
	prog, err := Load(filepath.Join("testdata", "springs.yaml"))
	require.NoError(t, err)

	want := `func force(s : Spring, p : (Point*2)) -> (r : float)
  r = (s.k * (p(1).x - p(0).x));
end

func step(points : set{Point}, springs : set{Spring}(points,points))
  var F : tensor[points](float);
  F = map force to springs reduce +;
  points.f = F;
  for n in 0:length(points)
    % visit
    if (F(n) > 0.5)
      print "big";
    else
      pass;
    end
  end
end

func main(points : set{Point}, springs : set{Spring}(points,points))
  step(points,springs);
end
`
	assert.Equal(t, want, printed(t, prog))

	main, ok := prog.Lookup("main")
	require.True(t, ok)
	var tree []string
	for _, f := range ir.GetCallTree(main) {
		tree = append(tree, f.Name)
	}
	assert.Equal(t, []string{"main", "step", "force"}, tree)
}

func TestMsgpackRoundTrip(t *testing.T) {
	for _, name := range []string{"matmul.yaml", "springs.yaml"} {
		t.Run(name, func(t *testing.T) {
			f, err := ReadFile(filepath.Join("testdata", name))
			require.NoError(t, err)
			orig, err := Decode(f)
			require.NoError(t, err)

			data, err := Marshal(f, FormatMsgpack)
			require.NoError(t, err)
			back, err := Unmarshal(data, FormatMsgpack)
			require.NoError(t, err)
			assert.Equal(t, SchemaVersion, back.Version)
			prog, err := Decode(back)
			require.NoError(t, err)
			assert.Equal(t, printed(t, orig), printed(t, prog))
		})
	}
}

func TestWriteFile(t *testing.T) {
	f, err := ReadFile(filepath.Join("testdata", "springs.yaml"))
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "springs.mpk")
	require.NoError(t, WriteFile(out, f))

	prog, err := Load(out)
	require.NoError(t, err)
	orig, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, printed(t, orig), printed(t, prog))

	yamlOut := filepath.Join(t.TempDir(), "springs.yml")
	require.NoError(t, WriteFile(yamlOut, f))
	data, err := os.ReadFile(yamlOut)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "version: 1\n"))
}

func TestFormatFor(t *testing.T) {
	cases := map[string]Format{
		"a.yaml":    FormatYAML,
		"a.YML":     FormatYAML,
		"a.msgpack": FormatMsgpack,
		"a.mpk":     FormatMsgpack,
		"a.mp":      FormatMsgpack,
	}
	for path, want := range cases {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFor("a.json")
	assert.Error(t, err)
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := Unmarshal([]byte("version: 1\nfuncs: []\nextra: true\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Unmarshal(nil, FormatYAML)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "newer version",
			src:  "version: 9\nfuncs: []\n",
			want: ErrVersion,
		},
		{
			name: "unknown variable",
			src: `version: 1
funcs:
  - name: f
    body:
      - print: {var: nope}
`,
			want: ErrUnknownSymbol,
		},
		{
			name: "unknown function",
			src: `version: 1
funcs:
  - name: f
    body:
      - call: g
`,
			want: ErrUnknownSymbol,
		},
		{
			name: "unknown index variable",
			src: `version: 1
funcs:
  - name: f
    args: [{name: A, type: {tensor: {component: float, dims: [["3"]]}}}]
    body:
      - print: {indexed: {var: A}, vars: [i]}
`,
			want: ErrUnknownSymbol,
		},
		{
			name: "empty statement",
			src: `version: 1
funcs:
  - name: f
    body:
      - {}
`,
			want: ErrBadShape,
		},
		{
			name: "null function",
			src:  "version: 1\nfuncs:\n  - ~\n",
			want: ErrBadShape,
		},
		{
			name: "null element",
			src:  "version: 1\nelements:\n  - ~\nfuncs: []\n",
			want: ErrBadShape,
		},
		{
			name: "null field",
			src:  "version: 1\nelements:\n  - name: Point\n    fields: [~]\nfuncs: []\n",
			want: ErrBadShape,
		},
		{
			name: "null argument",
			src:  "version: 1\nfuncs:\n  - name: f\n    args: [~]\n",
			want: ErrBadShape,
		},
		{
			name: "null index variable",
			src:  "version: 1\nfuncs:\n  - name: f\n    indexvars: [~]\n",
			want: ErrBadShape,
		},
		{
			name: "null statement",
			src:  "version: 1\nfuncs:\n  - name: f\n    body: [~]\n",
			want: ErrBadShape,
		},
		{
			name: "literal size mismatch",
			src: `version: 1
funcs:
  - name: f
    body:
      - print: {tensor: [1, 2], type: {tensor: {component: float, dims: [["3"]]}}}
`,
			want: ErrBadShape,
		},
		{
			name: "external with body",
			src: `version: 1
funcs:
  - name: f
    kind: external
    body:
      - pass: true
`,
			want: ErrBadShape,
		},
		{
			name: "duplicate declaration",
			src: `version: 1
funcs:
  - name: f
    body:
      - decl: {name: x, type: {scalar: int}}
      - decl: {name: x, type: {scalar: int}}
`,
			want: ErrBadShape,
		},
		{
			name: "bad compound",
			src: `version: 1
funcs:
  - name: f
    results: [{name: x, type: {scalar: int}}]
    body:
      - assign: x
        compound: "*="
        value: {int: 1}
`,
			want: ErrBadShape,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeYAML(t, tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeJoinsFunctionErrors(t *testing.T) {
	src := `version: 1
funcs:
  - name: f
    body:
      - print: {var: a}
  - name: g
    body:
      - print: {var: b}
`
	_, err := decodeYAML(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "func f:")
	assert.Contains(t, err.Error(), "func g:")
}

func TestNamesAreNormalized(t *testing.T) {
	src := "version: 1\nfuncs:\n" +
		"  - name: \"caf\u00e9\"\n" +
		"  - name: main\n    body:\n      - call: \"cafe\u0301\"\n"
	prog, err := decodeYAML(t, src)
	require.NoError(t, err)
	main, ok := prog.Lookup("main")
	require.True(t, ok)
	tree := ir.GetCallTree(main)
	require.Len(t, tree, 2)
	assert.Same(t, prog.Funcs[0], tree[1])
}

func TestSetFieldReadIsLifted(t *testing.T) {
	src := `version: 1
elements:
  - name: Point
    fields:
      - {name: x, type: {scalar: float}}
      - {name: v, type: {tensor: {component: float, dims: [["2"]]}}}
funcs:
  - name: f
    args: [{name: points, type: {set: {element: Point}}}]
    body:
      - print: {field: x, of: {var: points}}
      - print: {field: v, of: {var: points}}
`
	prog, err := decodeYAML(t, src)
	require.NoError(t, err)
	stmts := prog.Funcs[0].Body.Data.(ir.BlockData).Stmts
	x := stmts[0].Data.(ir.PrintData).Expr
	v := stmts[1].Data.(ir.PrintData).Expr
	assert.Equal(t, "tensor[points](float)", x.Type.String())
	assert.Equal(t, "tensor[points](tensor[2](float))", v.Type.String())
	assert.True(t, ir.IsBlockedType(v.Type))
}

func TestLoopForms(t *testing.T) {
	src := `version: 1
funcs:
  - name: f
    args: [{name: points, type: {scalar: int}}]
    body:
      - for: p
        in: points
        do:
          - print: {var: p}
      - while: {bool: false}
        do:
          - pass: true
`
	prog, err := decodeYAML(t, src)
	require.NoError(t, err)
	want := "func f(points : int)\n" +
		"  for p in points\n" +
		"    print p;\n" +
		"  end\n" +
		"  while false\n" +
		"    pass;\n" +
		"  end\n" +
		"end\n"
	assert.Equal(t, want, printed(t, prog))

	_, err = decodeYAML(t, "version: 1\nfuncs:\n  - name: g\n    body:\n      - for: i\n        do: []\n")
	assert.ErrorIs(t, err, ErrBadShape)
}
