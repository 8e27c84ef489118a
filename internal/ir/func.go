package ir

import "fmt"

// FuncKind distinguishes how a function is provided.
type FuncKind uint8

const (
	// FuncInternal has an IR body.
	FuncInternal FuncKind = iota
	// FuncExternal is provided by the host program.
	FuncExternal
	// FuncIntrinsic is built into the runtime.
	FuncIntrinsic
)

func (k FuncKind) String() string {
	switch k {
	case FuncInternal:
		return "internal"
	case FuncExternal:
		return "external"
	case FuncIntrinsic:
		return "intrinsic"
	default:
		return "unknown"
	}
}

// ParseFuncKind converts a string to a FuncKind.
func ParseFuncKind(s string) (FuncKind, error) {
	switch s {
	case "", "internal":
		return FuncInternal, nil
	case "external":
		return FuncExternal, nil
	case "intrinsic":
		return FuncIntrinsic, nil
	default:
		return FuncInternal, fmt.Errorf("unknown function kind %q", s)
	}
}

// Func is an IR function. Only internal functions have a Body.
type Func struct {
	Name    string
	Kind    FuncKind
	Args    []*Var
	Results []*Var
	Body    *Stmt
}

func (f *Func) String() string { return f.Name }

// Program is the set of functions of one compilation.
type Program struct {
	Funcs []*Func
}

// Lookup returns the function with the given name.
func (p *Program) Lookup(name string) (*Func, bool) {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Index returns the position of f in p.Funcs, or -1.
func (p *Program) Index(f *Func) int {
	for i, g := range p.Funcs {
		if g == f {
			return i
		}
	}
	return -1
}
