package irfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"tessera/internal/ir"
)

var (
	// ErrVersion reports an image written by a newer schema.
	ErrVersion = errors.New("unsupported schema version")
	// ErrUnknownSymbol reports a reference to an undeclared name.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrBadShape reports a structurally invalid image.
	ErrBadShape = errors.New("invalid shape")
)

func unknown(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownSymbol, kind, name)
}

func bad(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadShape, fmt.Sprintf(format, args...))
}

// ident normalizes a name to NFC so that visually equal identifiers written
// by different tools refer to the same symbol.
func ident(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

type decoder struct {
	elements map[string]*ir.ElementType
	funcs    map[string]*ir.Func
}

// Decode converts an image into an IR program. Every function is decoded;
// failures are joined and returned together.
func Decode(f *File) (*ir.Program, error) {
	if f.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d (newest known is %d)", ErrVersion, f.Version, SchemaVersion)
	}
	d := &decoder{
		elements: make(map[string]*ir.ElementType),
		funcs:    make(map[string]*ir.Func),
	}
	if err := d.declareElements(f.Elements); err != nil {
		return nil, err
	}

	prog := &ir.Program{}
	var errs []error
	for i, fd := range f.Funcs {
		if fd == nil {
			errs = append(errs, bad("function %d is empty", i))
			continue
		}
		fn, err := d.declareFunc(fd)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		prog.Funcs = append(prog.Funcs, fn)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	for i, fd := range f.Funcs {
		if err := d.defineFunc(fd, prog.Funcs[i]); err != nil {
			errs = append(errs, fmt.Errorf("func %s: %w", prog.Funcs[i].Name, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return prog, nil
}

func (d *decoder) declareElements(elems []*Element) error {
	for i, e := range elems {
		if e == nil {
			return bad("element %d is empty", i)
		}
		name := ident(e.Name)
		if name == "" {
			return bad("element without a name")
		}
		if _, dup := d.elements[name]; dup {
			return bad("element %s declared twice", name)
		}
		d.elements[name] = &ir.ElementType{Name: name}
	}
	for _, e := range elems {
		et := d.elements[ident(e.Name)]
		for i, f := range e.Fields {
			if f == nil {
				return bad("element %s field %d is empty", et.Name, i)
			}
			t, err := d.typ(f.Type)
			if err != nil {
				return fmt.Errorf("element %s field %s: %w", et.Name, f.Name, err)
			}
			et.Fields = append(et.Fields, ir.Field{Name: ident(f.Name), Type: t})
		}
	}
	return nil
}

func (d *decoder) declareFunc(fd *Func) (*ir.Func, error) {
	name := ident(fd.Name)
	if name == "" {
		return nil, bad("function without a name")
	}
	if _, dup := d.funcs[name]; dup {
		return nil, bad("function %s declared twice", name)
	}
	kind, err := ir.ParseFuncKind(fd.Kind)
	if err != nil {
		return nil, fmt.Errorf("func %s: %w", name, err)
	}
	args, err := d.vars(fd.Args)
	if err != nil {
		return nil, fmt.Errorf("func %s args: %w", name, err)
	}
	results, err := d.vars(fd.Results)
	if err != nil {
		return nil, fmt.Errorf("func %s results: %w", name, err)
	}
	fn := &ir.Func{Name: name, Kind: kind, Args: args, Results: results}
	d.funcs[name] = fn
	return fn, nil
}

func (d *decoder) vars(list []*Var) ([]*ir.Var, error) {
	out := make([]*ir.Var, 0, len(list))
	for i, v := range list {
		if v == nil {
			return nil, bad("variable %d is empty", i)
		}
		t, err := d.typ(v.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.Name, err)
		}
		out = append(out, ir.NewVar(ident(v.Name), t))
	}
	return out, nil
}

func (d *decoder) defineFunc(fd *Func, fn *ir.Func) error {
	if fn.Kind != ir.FuncInternal {
		if len(fd.Body) > 0 {
			return bad("%s function has a body", fn.Kind)
		}
		return nil
	}
	s := &scope{
		d:     d,
		vars:  make(map[string]*ir.Var),
		ivars: make(map[string]*ir.IndexVar),
	}
	for _, v := range fn.Args {
		s.vars[v.Name] = v
	}
	for _, v := range fn.Results {
		s.vars[v.Name] = v
	}
	for i, iv := range fd.IndexVars {
		if iv == nil {
			return bad("index variable %d is empty", i)
		}
		v, err := d.indexVar(iv)
		if err != nil {
			return err
		}
		if _, dup := s.ivars[v.Name]; dup {
			return bad("index variable %s declared twice", v.Name)
		}
		s.ivars[v.Name] = v
	}
	body, err := s.block(fd.Body)
	if err != nil {
		return err
	}
	fn.Body = body
	return nil
}

func (d *decoder) indexVar(iv *IndexVar) (*ir.IndexVar, error) {
	name := ident(iv.Name)
	dom, err := domain(iv.Domain)
	if err != nil {
		return nil, fmt.Errorf("index variable %s: %w", name, err)
	}
	op, err := ir.ParseReductionOp(iv.Reduce)
	if err != nil {
		return nil, fmt.Errorf("index variable %s: %w", name, err)
	}
	if op == ir.ReduceNone {
		return ir.NewFreeVar(name, dom), nil
	}
	return ir.NewReductionVar(name, dom, op), nil
}

func scalarKind(s string) (ir.ScalarKind, error) {
	switch s {
	case "int":
		return ir.Int, nil
	case "float":
		return ir.Float, nil
	case "bool":
		return ir.Boolean, nil
	case "complex":
		return ir.Complex, nil
	case "string":
		return ir.String, nil
	}
	return ir.Float, bad("unknown scalar kind %q", s)
}

func level(s string) (ir.IndexSet, error) {
	s = ident(s)
	switch {
	case s == "":
		return ir.IndexSet{}, bad("empty index set")
	case s == "*":
		return ir.Dynamic(), nil
	case s[0] >= '0' && s[0] <= '9':
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return ir.IndexSet{}, bad("extent %q: %v", s, err)
		}
		n, err := safecast.Conv[int](u)
		if err != nil {
			return ir.IndexSet{}, bad("extent %q: %v", s, err)
		}
		return ir.Range(n), nil
	}
	return ir.Named(s), nil
}

func domain(levels []string) (ir.IndexDomain, error) {
	if len(levels) == 0 {
		return ir.IndexDomain{}, bad("empty domain")
	}
	sets := make([]ir.IndexSet, len(levels))
	for i, l := range levels {
		set, err := level(l)
		if err != nil {
			return ir.IndexDomain{}, err
		}
		sets[i] = set
	}
	return ir.Domain(sets...), nil
}

func (d *decoder) element(name string) (*ir.ElementType, error) {
	el, ok := d.elements[ident(name)]
	if !ok {
		return nil, unknown("element", name)
	}
	return el, nil
}

func (d *decoder) typ(t *Type) (ir.Type, error) {
	if t == nil {
		return nil, bad("missing type")
	}
	switch {
	case t.Scalar != "":
		k, err := scalarKind(t.Scalar)
		if err != nil {
			return nil, err
		}
		return ir.ScalarType{Kind: k}, nil
	case t.Tensor != nil:
		k, err := scalarKind(t.Tensor.Component)
		if err != nil {
			return nil, err
		}
		if len(t.Tensor.Dims) == 0 {
			return nil, bad("tensor without dimensions")
		}
		dims := make([]ir.IndexDomain, len(t.Tensor.Dims))
		for i, lv := range t.Tensor.Dims {
			if dims[i], err = domain(lv); err != nil {
				return nil, err
			}
		}
		return &ir.TensorType{Component: k, Dims: dims, ColumnVector: t.Tensor.Column}, nil
	case t.Element != "":
		return d.element(t.Element)
	case t.Set != nil:
		el, err := d.element(t.Set.Element)
		if err != nil {
			return nil, err
		}
		eps := make([]string, len(t.Set.Endpoints))
		for i, e := range t.Set.Endpoints {
			eps[i] = ident(e)
		}
		if len(eps) == 0 {
			eps = nil
		}
		return &ir.SetType{Element: el, Endpoints: eps}, nil
	case t.Tuple != nil:
		el, err := d.element(t.Tuple.Element)
		if err != nil {
			return nil, err
		}
		n, err := safecast.Conv[int](t.Tuple.Size)
		if err != nil {
			return nil, bad("tuple size: %v", err)
		}
		return &ir.TupleType{Element: el, Size: n}, nil
	}
	return nil, bad("type has no recognised form")
}
