package ir

import "fmt"

// ReductionOp is the associative operator that aggregates a reduction variable.
type ReductionOp uint8

const (
	// ReduceNone marks a free variable.
	ReduceNone ReductionOp = iota
	ReduceSum
	ReduceProduct
	ReduceMin
	ReduceMax
)

func (op ReductionOp) String() string {
	switch op {
	case ReduceNone:
		return ""
	case ReduceSum:
		return "+"
	case ReduceProduct:
		return "*"
	case ReduceMin:
		return "min"
	case ReduceMax:
		return "max"
	default:
		return "?"
	}
}

// ParseReductionOp converts a textual operator to a ReductionOp.
func ParseReductionOp(s string) (ReductionOp, error) {
	switch s {
	case "", "none":
		return ReduceNone, nil
	case "+", "sum":
		return ReduceSum, nil
	case "*", "product":
		return ReduceProduct, nil
	case "min":
		return ReduceMin, nil
	case "max":
		return ReduceMax, nil
	default:
		return ReduceNone, fmt.Errorf("unknown reduction operator %q", s)
	}
}

// IndexVar is a named index ranging over a domain. Identity is by pointer:
// two IndexVars with the same name are different variables.
//
// A variable is free when Op is ReduceNone and a reduction variable
// otherwise. The kind is fixed for the variable's whole scope.
type IndexVar struct {
	Name   string
	Domain IndexDomain
	Op     ReductionOp
}

// NewFreeVar creates a free index variable.
func NewFreeVar(name string, domain IndexDomain) *IndexVar {
	return &IndexVar{Name: name, Domain: domain}
}

// NewReductionVar creates a reduction variable aggregated by op.
func NewReductionVar(name string, domain IndexDomain, op ReductionOp) *IndexVar {
	if op == ReduceNone {
		panic(fmt.Sprintf("ir: reduction variable %s needs an operator", name))
	}
	return &IndexVar{Name: name, Domain: domain, Op: op}
}

// IsFree reports whether v appears unsummed in the result.
func (v *IndexVar) IsFree() bool { return v.Op == ReduceNone }

// IsReduction reports whether v is aggregated across its domain.
func (v *IndexVar) IsReduction() bool { return v.Op != ReduceNone }

func (v *IndexVar) String() string {
	if v.IsReduction() {
		if v.Op == ReduceSum {
			return "+" + v.Name
		}
		return v.Op.String() + ":" + v.Name
	}
	return v.Name
}
