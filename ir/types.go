package ir

import "fmt"

type Kind int

const (
	UnresolvedKind Kind = iota
	IntKind
	FloatKind
	PtrKind
)

// Type is the interface for all value types carried by IR nodes.
type Type interface {
	String() string
	Kind() Kind
}

// Common concrete types (aliases) for readability.
// These are value-typed singletons; using them in maps/keys is safe since
// Int and Float are comparable by value.
var (
	I32 Type = Int{Width: 32}
	I64 Type = Int{Width: 64}
	F32 Type = Float{Width: 32}
	F64 Type = Float{Width: 64}
)

// Int represents an integer type with a given bit width.
type Int struct {
	Width uint32 // e.g. 8, 16, 32, 64
}

func (i Int) String() string {
	return fmt.Sprintf("i%d", i.Width)
}

func (i Int) Kind() Kind {
	return IntKind
}

// Float represents a floating-point type with a given precision.
type Float struct {
	Width uint32 // e.g. 32, 64
}

func (f Float) String() string {
	return fmt.Sprintf("f%d", f.Width)
}

func (f Float) Kind() Kind {
	return FloatKind
}

// Ptr represents a pointer type to some element type.
type Ptr struct {
	Elem Type // The type of the element being pointed to.
}

func (p Ptr) String() string {
	return fmt.Sprintf("ptr_%s", p.Elem.String())
}

func (p Ptr) Kind() Kind {
	return PtrKind
}

// TypedValue is one constant lane: a type tag plus its payload.
// Int carries IntKind payloads, Float carries FloatKind payloads.
type TypedValue struct {
	Type  Type
	Int   int64
	Float float64
}

func NewInt(t Type, v int64) TypedValue {
	if t.Kind() != IntKind {
		panic(fmt.Sprintf("NewInt: %s is not an integer type", t))
	}
	return TypedValue{Type: t, Int: v}
}

func NewFloat(t Type, v float64) TypedValue {
	if t.Kind() != FloatKind {
		panic(fmt.Sprintf("NewFloat: %s is not a float type", t))
	}
	return TypedValue{Type: t, Float: v}
}

// IsI32 reports whether the value is a 32-bit signed integer.
func (v TypedValue) IsI32() bool {
	return v.Type == I32
}

func (v TypedValue) String() string {
	switch v.Type.Kind() {
	case IntKind:
		return fmt.Sprintf("%d", v.Int)
	case FloatKind:
		return fmt.Sprintf("%g", v.Float)
	default:
		return v.Type.String()
	}
}
