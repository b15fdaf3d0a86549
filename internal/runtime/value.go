// Package runtime defines the values manipulated by the msk interpreter
// and the scope chain that binds names to them.
package runtime

import (
	"math"
	"strconv"
)

// Kind describes the kind of a value.
type Kind int

const (
	KindNil Kind = iota
	KindFloat
	KindBool
	KindString
	KindFunction
)

var kindNames = [...]string{
	KindNil:      "nil",
	KindFloat:    "number",
	KindBool:     "boolean",
	KindString:   "string",
	KindFunction: "function",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a runtime value: Float, Bool, String, Nil or *Function.
// Values are immutable; copying a Value shares strings and functions.
type Value interface {
	Kind() Kind
	String() string // display form, as written by print
	aValue()        // marker method to restrict implementations
}

// Float is a 64-bit floating point number, the only numeric type.
type Float float64

// Bool is a boolean.
type Bool bool

// String is an immutable string.
type String string

type nilValue struct{}

// Nil is the single nil value.
var Nil Value = nilValue{}

func (Float) Kind() Kind    { return KindFloat }
func (Bool) Kind() Kind     { return KindBool }
func (String) Kind() Kind   { return KindString }
func (nilValue) Kind() Kind { return KindNil }

func (Float) aValue()    {}
func (Bool) aValue()     {}
func (String) aValue()   {}
func (nilValue) aValue() {}

// String formats f with the fewest digits that round-trip and never uses
// an exponent: 7, 2.5, -5, 0.1.
func (f Float) String() string {
	n := float64(f)
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (s String) String() string { return string(s) }

func (nilValue) String() string { return "nil" }

// Truthy reports whether v counts as true in a condition.
// Only nil and false are falsy; 0 and "" are truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, nilValue:
		return false
	case Bool:
		return bool(v)
	}
	return true
}

// Equal reports whether a and b are equal. Only two numbers, two strings
// or two booleans can be equal; any other pairing, including nil with nil
// and any pairing with a function, is unequal. Equal never fails.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Float:
		b, ok := b.(Float)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	}
	return false
}
