// Package irfile reads and writes serialized IR programs.
//
// A program image lists element types and functions. Expressions and
// statements are maps whose discriminating key names the form, e.g.
//
//	- assign: C
//	  value:
//	    result: [i, j]
//	    value: {op: "*", args: [{indexed: {var: A}, vars: [i, k]}, {indexed: {var: B}, vars: [k, j]}]}
//
// The same structure is stored as YAML for people and msgpack for tools.
package irfile

// SchemaVersion is written into every image; Decode rejects newer images.
const SchemaVersion = 1

type File struct {
	Version  int        `yaml:"version" msgpack:"version"`
	Elements []*Element `yaml:"elements,omitempty" msgpack:"elements,omitempty"`
	Funcs    []*Func    `yaml:"funcs" msgpack:"funcs"`
}

type Element struct {
	Name   string `yaml:"name" msgpack:"name"`
	Fields []*Var `yaml:"fields,omitempty" msgpack:"fields,omitempty"`
}

// Type is a one-of: exactly one field is set.
type Type struct {
	Scalar  string  `yaml:"scalar,omitempty" msgpack:"scalar,omitempty"`
	Tensor  *Tensor `yaml:"tensor,omitempty" msgpack:"tensor,omitempty"`
	Element string  `yaml:"element,omitempty" msgpack:"element,omitempty"`
	Set     *Set    `yaml:"set,omitempty" msgpack:"set,omitempty"`
	Tuple   *Tuple  `yaml:"tuple,omitempty" msgpack:"tuple,omitempty"`
}

// Tensor lists one domain per dimension; a domain lists its levels, outer
// first. A level is an extent ("3"), a set name, or "*" for dynamic.
type Tensor struct {
	Component string     `yaml:"component" msgpack:"component"`
	Dims      [][]string `yaml:"dims" msgpack:"dims"`
	Column    bool       `yaml:"column,omitempty" msgpack:"column,omitempty"`
}

type Set struct {
	Element   string   `yaml:"element" msgpack:"element"`
	Endpoints []string `yaml:"endpoints,omitempty" msgpack:"endpoints,omitempty"`
}

type Tuple struct {
	Element string `yaml:"element" msgpack:"element"`
	Size    uint64 `yaml:"size" msgpack:"size"`
}

type Var struct {
	Name string `yaml:"name" msgpack:"name"`
	Type *Type  `yaml:"type" msgpack:"type"`
}

type IndexVar struct {
	Name   string   `yaml:"name" msgpack:"name"`
	Domain []string `yaml:"domain" msgpack:"domain"`
	Reduce string   `yaml:"reduce,omitempty" msgpack:"reduce,omitempty"`
}

type Func struct {
	Name      string      `yaml:"name" msgpack:"name"`
	Kind      string      `yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Args      []*Var      `yaml:"args,omitempty" msgpack:"args,omitempty"`
	Results   []*Var      `yaml:"results,omitempty" msgpack:"results,omitempty"`
	IndexVars []*IndexVar `yaml:"indexvars,omitempty" msgpack:"indexvars,omitempty"`
	Body      []*Stmt     `yaml:"body,omitempty" msgpack:"body,omitempty"`
}

// Expr is a one-of keyed by its first non-empty discriminator:
// int, float, bool, string, tensor, var, op, call, field, read, load, tuple,
// indexread, length, indexed, result (with value), map.
type Expr struct {
	Int    *int64    `yaml:"int,omitempty" msgpack:"int,omitempty"`
	Float  *float64  `yaml:"float,omitempty" msgpack:"float,omitempty"`
	Bool   *bool     `yaml:"bool,omitempty" msgpack:"bool,omitempty"`
	Str    *string   `yaml:"string,omitempty" msgpack:"string,omitempty"`
	Tensor []float64 `yaml:"tensor,omitempty" msgpack:"tensor,omitempty"`
	Var    string    `yaml:"var,omitempty" msgpack:"var,omitempty"`

	Op   string  `yaml:"op,omitempty" msgpack:"op,omitempty"`
	Call string  `yaml:"call,omitempty" msgpack:"call,omitempty"`
	Args []*Expr `yaml:"args,omitempty" msgpack:"args,omitempty"`

	Field     string  `yaml:"field,omitempty" msgpack:"field,omitempty"`
	Of        *Expr   `yaml:"of,omitempty" msgpack:"of,omitempty"`
	Read      *Expr   `yaml:"read,omitempty" msgpack:"read,omitempty"`
	Load      *Expr   `yaml:"load,omitempty" msgpack:"load,omitempty"`
	Tuple     *Expr   `yaml:"tuple,omitempty" msgpack:"tuple,omitempty"`
	At        []*Expr `yaml:"at,omitempty" msgpack:"at,omitempty"`
	IndexRead *Expr   `yaml:"indexread,omitempty" msgpack:"indexread,omitempty"`
	Kind      string  `yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Length    string  `yaml:"length,omitempty" msgpack:"length,omitempty"`

	Indexed *Expr    `yaml:"indexed,omitempty" msgpack:"indexed,omitempty"`
	Vars    []string `yaml:"vars,omitempty" msgpack:"vars,omitempty"`
	Result  []string `yaml:"result,omitempty" msgpack:"result,omitempty"`
	Value   *Expr    `yaml:"value,omitempty" msgpack:"value,omitempty"`

	Map     string  `yaml:"map,omitempty" msgpack:"map,omitempty"`
	To      *Expr   `yaml:"to,omitempty" msgpack:"to,omitempty"`
	With    *Expr   `yaml:"with,omitempty" msgpack:"with,omitempty"`
	Partial []*Expr `yaml:"partial,omitempty" msgpack:"partial,omitempty"`
	Reduce  string  `yaml:"reduce,omitempty" msgpack:"reduce,omitempty"`

	// Type overrides the inferred type.
	Type *Type `yaml:"type,omitempty" msgpack:"type,omitempty"`
}

// Stmt is a one-of keyed like Expr: decl, assign, store, fieldwrite, write,
// call, if, for, while, print, pass, comment.
type Stmt struct {
	Decl       *Var    `yaml:"decl,omitempty" msgpack:"decl,omitempty"`
	Assign     string  `yaml:"assign,omitempty" msgpack:"assign,omitempty"`
	Store      *Expr   `yaml:"store,omitempty" msgpack:"store,omitempty"`
	FieldWrite *Expr   `yaml:"fieldwrite,omitempty" msgpack:"fieldwrite,omitempty"`
	Field      string  `yaml:"field,omitempty" msgpack:"field,omitempty"`
	Write      *Expr   `yaml:"write,omitempty" msgpack:"write,omitempty"`
	At         []*Expr `yaml:"at,omitempty" msgpack:"at,omitempty"`
	Value      *Expr   `yaml:"value,omitempty" msgpack:"value,omitempty"`
	Compound   string  `yaml:"compound,omitempty" msgpack:"compound,omitempty"`

	Call    string   `yaml:"call,omitempty" msgpack:"call,omitempty"`
	Args    []*Expr  `yaml:"args,omitempty" msgpack:"args,omitempty"`
	Results []string `yaml:"results,omitempty" msgpack:"results,omitempty"`

	If   *Expr   `yaml:"if,omitempty" msgpack:"if,omitempty"`
	Then []*Stmt `yaml:"then,omitempty" msgpack:"then,omitempty"`
	Else []*Stmt `yaml:"else,omitempty" msgpack:"else,omitempty"`

	For   string  `yaml:"for,omitempty" msgpack:"for,omitempty"`
	In    string  `yaml:"in,omitempty" msgpack:"in,omitempty"`
	From  *Expr   `yaml:"from,omitempty" msgpack:"from,omitempty"`
	Until *Expr   `yaml:"until,omitempty" msgpack:"until,omitempty"`
	While *Expr   `yaml:"while,omitempty" msgpack:"while,omitempty"`
	Do    []*Stmt `yaml:"do,omitempty" msgpack:"do,omitempty"`

	Print   *Expr   `yaml:"print,omitempty" msgpack:"print,omitempty"`
	Pass    bool    `yaml:"pass,omitempty" msgpack:"pass,omitempty"`
	Comment *string `yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}
