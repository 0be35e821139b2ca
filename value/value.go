// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package value defines the tree-shaped model of a decoded JSON datum, a
// decoder that assembles values from parse events, typed path-tracked
// accessors over values, and an encoder back to JSON text.
//
// A Value is one of eight variants: Null, Bool, String, Int, Double,
// *Decimal, *Object, or Array. Values are immutable once constructed and may
// be freely shared across goroutines without synchronization.
package value

// Kind identifies the variant of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt
	KindDouble
	KindDecimal
	KindObject
	KindArray
)

var kindStr = [...]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindString:  "string",
	KindInt:     "int64",
	KindDouble:  "double",
	KindDecimal: "decimal",
	KindObject:  "object",
	KindArray:   "array",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The set of variants is closed: a Value
// is exactly one of Null, Bool, String, Int, Double, *Decimal, *Object, or
// Array.
type Value interface {
	// Kind reports the variant of the value.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// Null represents the JSON null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return KindNull }

// Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return KindBool }

// String is a string value.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return KindString }

// Int is an integer value in the signed 64-bit range.
type Int int64

// Kind satisfies the Value interface.
func (Int) Kind() Kind { return KindInt }

// Double is an IEEE 754 double-precision floating-point value.
type Double float64

// Kind satisfies the Value interface.
func (Double) Kind() Kind { return KindDouble }

// An Array is an ordered sequence of values.
type Array []Value

// Kind satisfies the Value interface.
func (Array) Kind() Kind { return KindArray }

// At returns the element at offset i, or (nil, false) if i is out of bounds.
func (a Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i], true
}

// Equal reports whether a and b are structurally equal: the same variant with
// equal contents. Object equality is order-independent; array equality is
// order-dependent; Decimal equality is numeric, ignoring trailing zeroes.
// Values of different numeric variants are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case Null:
		return true
	case Bool:
		return t == b.(Bool)
	case String:
		return t == b.(String)
	case Int:
		return t == b.(Int)
	case Double:
		return t == b.(Double)
	case *Decimal:
		return t.Equal(b.(*Decimal))
	case *Object:
		return t.Equal(b.(*Object))
	case Array:
		o := b.(Array)
		if len(t) != len(o) {
			return false
		}
		for i, v := range t {
			if !Equal(v, o[i]) {
				return false
			}
		}
		return true
	}
	return false
}
