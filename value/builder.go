// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"errors"
	"fmt"
)

// A Builder assembles a single Value incrementally from a sequence of calls
// describing the structure of the value: container boundaries, member keys,
// and scalars. It is the cursor protocol by which external serialization
// adapters, and the decoder itself, construct values without recursion;
// containers nest by explicit Begin and End calls and the builder holds one
// stack entry per open container.
//
// Misuse (a value in key position, an unmatched End, more than one top-level
// value) makes the builder sticky-invalid; the error is reported by Build. A
// zero Builder is ready for use.
type Builder struct {
	stk  []bframe
	root Value
	done bool
	err  error
}

type bframe struct {
	obj     *Object
	arr     Array
	key     string
	haveKey bool
}

func (f *bframe) isObject() bool { return f.obj != nil }

// BeginObject opens a new object at the current position.
func (b *Builder) BeginObject() *Builder {
	if b.checkValuePos("object") {
		b.stk = append(b.stk, bframe{obj: newObject(4)})
	}
	return b
}

// EndObject closes the innermost open container, which must be an object,
// and places it at the enclosing position.
func (b *Builder) EndObject() *Builder {
	if b.err != nil {
		return b
	}
	n := len(b.stk)
	if n == 0 || !b.stk[n-1].isObject() {
		b.fail(errors.New("unmatched end of object"))
		return b
	} else if b.stk[n-1].haveKey {
		b.fail(fmt.Errorf("key %q has no value", b.stk[n-1].key))
		return b
	}
	obj := b.stk[n-1].obj
	b.stk = b.stk[:n-1]
	b.put(obj)
	return b
}

// BeginArray opens a new array at the current position.
func (b *Builder) BeginArray() *Builder {
	if b.checkValuePos("array") {
		b.stk = append(b.stk, bframe{arr: Array{}})
	}
	return b
}

// EndArray closes the innermost open container, which must be an array, and
// places it at the enclosing position.
func (b *Builder) EndArray() *Builder {
	if b.err != nil {
		return b
	}
	n := len(b.stk)
	if n == 0 || b.stk[n-1].isObject() {
		b.fail(errors.New("unmatched end of array"))
		return b
	}
	arr := b.stk[n-1].arr
	b.stk = b.stk[:n-1]
	b.put(arr)
	return b
}

// Key sets the member key for the next value of the innermost open object.
func (b *Builder) Key(key string) *Builder {
	if b.err != nil {
		return b
	}
	n := len(b.stk)
	if n == 0 || !b.stk[n-1].isObject() {
		b.fail(fmt.Errorf("key %q outside object", key))
	} else if b.stk[n-1].haveKey {
		b.fail(fmt.Errorf("key %q follows key %q", key, b.stk[n-1].key))
	} else {
		b.stk[n-1].key = key
		b.stk[n-1].haveKey = true
	}
	return b
}

// String places a string value at the current position.
func (b *Builder) String(s string) *Builder { return b.value(String(s)) }

// Int places an integer value at the current position.
func (b *Builder) Int(z int64) *Builder { return b.value(Int(z)) }

// Double places a floating-point value at the current position.
func (b *Builder) Double(f float64) *Builder { return b.value(Double(f)) }

// Decimal places a decimal value at the current position.
func (b *Builder) Decimal(d *Decimal) *Builder { return b.value(d) }

// Bool places a Boolean value at the current position.
func (b *Builder) Bool(v bool) *Builder { return b.value(Bool(v)) }

// Null places a null at the current position.
func (b *Builder) Null() *Builder { return b.value(Null{}) }

// Value places an existing value at the current position.
func (b *Builder) Value(v Value) *Builder {
	if v == nil {
		b.fail(errors.New("nil value"))
		return b
	}
	return b.value(v)
}

// Build reports the completed value. It is an error if no value has been
// placed, a container is still open, or any call of the sequence was invalid.
func (b *Builder) Build() (Value, error) {
	if b.err != nil {
		return nil, b.err
	} else if len(b.stk) != 0 {
		return nil, errors.New("unclosed container")
	} else if !b.done {
		return nil, errors.New("no value")
	}
	return b.root, nil
}

func (b *Builder) value(v Value) *Builder {
	if b.checkValuePos(v.Kind().String()) {
		b.put(v)
	}
	return b
}

// checkValuePos reports whether a value may be placed at the current
// position, recording an error if not.
func (b *Builder) checkValuePos(what string) bool {
	if b.err != nil {
		return false
	}
	if n := len(b.stk); n != 0 {
		if b.stk[n-1].isObject() && !b.stk[n-1].haveKey {
			b.fail(fmt.Errorf("%s in key position", what))
			return false
		}
	} else if b.done {
		b.fail(fmt.Errorf("%s after complete value", what))
		return false
	}
	return true
}

// put attaches a completed value at the current position.
// Precondition: checkValuePos passed for this position.
func (b *Builder) put(v Value) {
	n := len(b.stk)
	if n == 0 {
		b.root = v
		b.done = true
		return
	}
	top := &b.stk[n-1]
	if top.isObject() {
		top.obj.set(top.key, v)
		top.key, top.haveKey = "", false
	} else {
		top.arr = append(top.arr, v)
	}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
