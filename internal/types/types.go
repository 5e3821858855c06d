// Package types holds the shared type representation and scoped symbol
// tables used by both the semantic analyzer and the IR generator. It has no
// dependency on either: it is pure data plus the structural operations that
// fall out of the data (equality, string rendering, numeric rank,
// assignability).
package types

import (
	"fmt"
	"strings"
)

// BaseKind is the base kind of an Alir type.
type BaseKind int

const (
	Unknown BaseKind = iota
	Auto
	Void
	Bool
	Char
	Short
	Int
	Long
	LongLong
	Float
	Double
	LongDouble
	String
	Class
	Enum
)

var baseKindNames = map[BaseKind]string{
	Unknown:    "unknown",
	Auto:       "auto",
	Void:       "void",
	Bool:       "bool",
	Char:       "char",
	Short:      "short",
	Int:        "int",
	Long:       "long",
	LongLong:   "long long",
	Float:      "float",
	Double:     "double",
	LongDouble: "long double",
	String:     "string",
	Class:      "class",
	Enum:       "enum",
}

func (k BaseKind) String() string {
	if s, ok := baseKindNames[k]; ok {
		return s
	}
	return "invalid"
}

// numericRank orders the numeric base kinds from narrowest to widest:
// arithmetic between two numeric operands picks the wider rank. Non-numeric
// kinds rank 0 and never win a widening comparison.
var numericRank = map[BaseKind]int{
	Short:      1,
	Int:        2,
	Long:       3,
	LongLong:   4,
	Float:      5,
	Double:     6,
	LongDouble: 7,
}

// FuncSig is the function-pointer designator a Type may carry.
type FuncSig struct {
	Return *Type
	Params []Type
}

func (f *FuncSig) equals(o *FuncSig) bool {
	if f == nil || o == nil {
		return f == o
	}
	if len(f.Params) != len(o.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return f.Return.Equals(*o.Return)
}

func (f *FuncSig) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(*)(%s)", f.Return.String(), strings.Join(parts, ", "))
}

// Type is a value type in the Alir type system: a base kind, a pointer
// depth, an optional fixed array size, an unsigned flag (integers only),
// a class/enum name (present iff Base is Class or Enum), and an optional
// function-pointer designator.
//
// Invariant: Name is non-empty iff Base is Class or Enum. ArraySize and
// PointerDepth compose from the variable outward: int[4]* is PointerDepth=1
// wrapping ArraySize=4 of Int — represented here as a single flat Type since
// Alir does not nest arrays of arrays; see ElementType/PointerTo below for
// how generators peel one level at a time.
type Type struct {
	Base         BaseKind
	PointerDepth int
	ArraySize    int // 0 = not an array
	Unsigned     bool
	Name         string // class/enum name
	Func         *FuncSig
}

// Scalar constructors for the common cases.

func NewScalar(base BaseKind) Type { return Type{Base: base} }

func NewClass(name string) Type { return Type{Base: Class, Name: name} }

func NewEnum(name string) Type { return Type{Base: Enum, Name: name} }

// PointerTo returns t with one extra level of indirection.
func (t Type) PointerTo() Type {
	n := t
	n.PointerDepth++
	return n
}

// Deref returns t with one level of indirection removed. Panics if t is not
// a pointer; callers (IR verifier, l-value lowering) must check IsPointer
// first.
func (t Type) Deref() Type {
	if t.PointerDepth == 0 {
		panic("types: Deref of non-pointer type " + t.String())
	}
	n := t
	n.PointerDepth--
	return n
}

// ElementType returns the element type of a fixed-size array, with the
// array-ness stripped.
func (t Type) ElementType() Type {
	n := t
	n.ArraySize = 0
	return n
}

func (t Type) IsPointer() bool { return t.PointerDepth > 0 }
func (t Type) IsArray() bool   { return t.ArraySize > 0 }
func (t Type) IsVoid() bool    { return t.Base == Void && t.PointerDepth == 0 }
func (t Type) IsUnknown() bool { return t.Base == Unknown }
func (t Type) IsAuto() bool    { return t.Base == Auto }

func (t Type) IsScalarNumeric() bool {
	_, ok := numericRank[t.Base]
	return (ok || t.Base == Char) && t.PointerDepth == 0 && t.ArraySize == 0
}

func (t Type) IsIntegerKind() bool {
	switch t.Base {
	case Short, Int, Long, LongLong, Char:
		return true
	}
	return false
}

func (t Type) IsFloatingKind() bool {
	switch t.Base {
	case Float, Double, LongDouble:
		return true
	}
	return false
}

// Rank returns the numeric widening rank (higher = wider), or 0 for
// non-numeric types. Used by the semantic analyzer to pick the result type
// of a mixed-kind arithmetic operator.
func (t Type) Rank() int {
	if t.PointerDepth > 0 || t.ArraySize > 0 {
		return 0
	}
	if t.Base == Char {
		return numericRank[Int] // char participates in arithmetic as an int-rank value
	}
	return numericRank[t.Base]
}

// Equals reports structural equality: same base kind, pointer depth, array
// size, unsigned flag, and class/enum name.
func (t Type) Equals(o Type) bool {
	if t.Base != o.Base || t.PointerDepth != o.PointerDepth ||
		t.ArraySize != o.ArraySize || t.Unsigned != o.Unsigned || t.Name != o.Name {
		return false
	}
	return t.Func.equals(o.Func)
}

func (t Type) String() string {
	var b strings.Builder
	if t.Unsigned {
		b.WriteString("unsigned ")
	}
	switch t.Base {
	case Class, Enum:
		b.WriteString(t.Name)
	default:
		b.WriteString(t.Base.String())
	}
	if t.Func != nil {
		b.WriteString(" ")
		b.WriteString(t.Func.String())
	}
	if t.ArraySize > 0 {
		fmt.Fprintf(&b, "[%d]", t.ArraySize)
	}
	for i := 0; i < t.PointerDepth; i++ {
		b.WriteString("*")
	}
	return b.String()
}
