// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Object is a collection of key-value members with unique keys. Iteration
// and encoding preserve insertion order; lookup is by key. An Object is
// immutable once constructed.
type Object struct {
	keys []string
	m    map[string]Value
}

// NewObject constructs an object from the given members. If a key occurs more
// than once, the last occurrence wins: its value replaces the earlier one at
// the position where the key first appeared, and the earlier value is
// discarded.
func NewObject(members ...Member) *Object {
	o := newObject(len(members))
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return o
}

func newObject(hint int) *Object {
	return &Object{m: make(map[string]Value, hint)}
}

// set inserts or replaces the member named key. Only construction paths call
// this; a finished Object is never modified.
func (o *Object) set(key string, v Value) {
	if _, ok := o.m[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
}

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return KindObject }

// Len reports the number of members of o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys of o in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value of the member named key, or (nil, false) if no such
// member exists.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.m[key]
	return v, ok
}

// Find returns the value of the member named key, or nil.
func (o *Object) Find(key string) Value {
	v, _ := o.Get(key)
	return v
}

// Members returns the members of o in insertion order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	out := make([]Member, len(o.keys))
	for i, key := range o.keys {
		out[i] = Member{Key: key, Value: o.m[key]}
	}
	return out
}

// Equal reports whether o and p contain equal members. Insertion order does
// not participate in equality.
func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	} else if o.Len() == 0 {
		return true
	}
	for key, v := range o.m {
		w, ok := p.m[key]
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}
