package ir

import (
	"fmt"
	"strings"
)

// Type is an IR value type.
type Type interface {
	fmt.Stringer
	irType()
}

// ScalarKind enumerates scalar component types.
type ScalarKind uint8

const (
	Int ScalarKind = iota
	Float
	Boolean
	Complex
	String
)

func (k ScalarKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "bool"
	case Complex:
		return "complex"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// ScalarType is a single scalar value.
type ScalarType struct {
	Kind ScalarKind
}

func (ScalarType) irType() {}

func (t ScalarType) String() string { return t.Kind.String() }

// IndexSetKind distinguishes index set variants.
type IndexSetKind uint8

const (
	// RangeSet is a fixed extent [0, Extent).
	RangeSet IndexSetKind = iota
	// NamedSet ranges over the elements of a set.
	NamedSet
	// DynamicSet has an extent only known at runtime.
	DynamicSet
)

// IndexSet is one level of an index domain.
type IndexSet struct {
	Kind   IndexSetKind
	Extent int
	Set    string
}

// Range returns a fixed-extent index set.
func Range(extent int) IndexSet { return IndexSet{Kind: RangeSet, Extent: extent} }

// Named returns an index set over the named set.
func Named(set string) IndexSet { return IndexSet{Kind: NamedSet, Set: set} }

// Dynamic returns a runtime-sized index set.
func Dynamic() IndexSet { return IndexSet{Kind: DynamicSet} }

func (s IndexSet) String() string {
	switch s.Kind {
	case RangeSet:
		return fmt.Sprint(s.Extent)
	case NamedSet:
		return s.Set
	default:
		return "*"
	}
}

// IndexDomain is the list of nested index sets of one tensor dimension,
// outermost first. A domain with more than one level describes blocks.
type IndexDomain struct {
	Sets []IndexSet
}

// Domain builds an IndexDomain from its levels.
func Domain(sets ...IndexSet) IndexDomain { return IndexDomain{Sets: sets} }

func (d IndexDomain) String() string {
	parts := make([]string, len(d.Sets))
	for i, s := range d.Sets {
		parts[i] = s.String()
	}
	return strings.Join(parts, "x")
}

// Size returns the number of scalar positions of the domain when every level
// has a fixed extent.
func (d IndexDomain) Size() (int, bool) {
	if len(d.Sets) == 0 {
		return 0, false
	}
	size := 1
	for _, s := range d.Sets {
		if s.Kind != RangeSet {
			return 0, false
		}
		size *= s.Extent
	}
	return size, true
}

// Equal reports whether both domains have identical levels.
func (d IndexDomain) Equal(o IndexDomain) bool {
	if len(d.Sets) != len(o.Sets) {
		return false
	}
	for i := range d.Sets {
		if d.Sets[i] != o.Sets[i] {
			return false
		}
	}
	return true
}

// TensorType is a tensor with one IndexDomain per dimension.
type TensorType struct {
	Component    ScalarKind
	Dims         []IndexDomain
	ColumnVector bool
}

func (*TensorType) irType() {}

// Tensor builds a tensor type over the given dimensions.
func Tensor(component ScalarKind, dims ...IndexDomain) *TensorType {
	return &TensorType{Component: component, Dims: dims}
}

// Order returns the number of dimensions.
func (t *TensorType) Order() int { return len(t.Dims) }

// IsBlocked reports whether the elements of t are themselves tensors.
func (t *TensorType) IsBlocked() bool {
	for _, d := range t.Dims {
		if len(d.Sets) > 1 {
			return true
		}
	}
	return false
}

// BlockType returns the type of one element of t: the scalar component for
// an unblocked tensor, otherwise the tensor of the inner levels.
func (t *TensorType) BlockType() Type {
	if !t.IsBlocked() {
		return ScalarType{Kind: t.Component}
	}
	inner := make([]IndexDomain, 0, len(t.Dims))
	for _, d := range t.Dims {
		if len(d.Sets) > 1 {
			inner = append(inner, IndexDomain{Sets: d.Sets[1:]})
		}
	}
	return &TensorType{Component: t.Component, Dims: inner}
}

// OuterDims returns the outermost level of each dimension.
func (t *TensorType) OuterDims() []IndexSet {
	out := make([]IndexSet, 0, len(t.Dims))
	for _, d := range t.Dims {
		if len(d.Sets) > 0 {
			out = append(out, d.Sets[0])
		}
	}
	return out
}

func (t *TensorType) String() string {
	outer := t.OuterDims()
	parts := make([]string, len(outer))
	for i, s := range outer {
		parts[i] = s.String()
	}
	s := fmt.Sprintf("tensor[%s](%s)", strings.Join(parts, ","), t.BlockType())
	if t.ColumnVector {
		s += "'"
	}
	return s
}

// Field is a named field of an element type.
type Field struct {
	Name string
	Type Type
}

// ElementType is a user-declared element (vertex or edge) type.
type ElementType struct {
	Name   string
	Fields []Field
}

func (*ElementType) irType() {}

func (t *ElementType) String() string { return t.Name }

// Field returns the field with the given name.
func (t *ElementType) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SetType is a set of elements; Endpoints are named for edge sets.
type SetType struct {
	Element   *ElementType
	Endpoints []string
}

func (*SetType) irType() {}

func (t *SetType) String() string {
	if len(t.Endpoints) == 0 {
		return fmt.Sprintf("set{%s}", t.Element)
	}
	return fmt.Sprintf("set{%s}(%s)", t.Element, strings.Join(t.Endpoints, ","))
}

// TupleType is a fixed-arity tuple of elements.
type TupleType struct {
	Element *ElementType
	Size    int
}

func (*TupleType) irType() {}

func (t *TupleType) String() string { return fmt.Sprintf("(%s*%d)", t.Element, t.Size) }

// IsBlockedType reports whether t is a blocked tensor type.
func IsBlockedType(t Type) bool {
	tt, ok := t.(*TensorType)
	return ok && tt.IsBlocked()
}
