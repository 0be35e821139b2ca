// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

// mustJSON encodes v compactly and panics on failure. The only values that
// fail to encode are non-finite doubles, which cannot be constructed by the
// parser.
func mustJSON(v Value) string {
	s, err := EncodeString(v, nil)
	if err != nil {
		panic("value: " + err.Error())
	}
	return s
}

// JSON returns the JSON encoding "null".
func (Null) JSON() string { return "null" }

// JSON returns the JSON encoding of b.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// JSON returns the JSON encoding of s.
func (s String) JSON() string { return mustJSON(s) }

// JSON returns the JSON encoding of z.
func (z Int) JSON() string { return mustJSON(z) }

// JSON returns the shortest JSON encoding that round-trips to the same
// value. It panics if d is not finite, since NaN and infinities have no JSON
// encoding.
func (d Double) JSON() string { return mustJSON(d) }

// JSON returns the JSON encoding of d, which preserves the exact stored
// digits of the value.
func (d *Decimal) JSON() string { return mustJSON(d) }

// JSON returns the compact JSON encoding of o, with members in insertion
// order.
func (o *Object) JSON() string { return mustJSON(o) }

// JSON returns the compact JSON encoding of a.
func (a Array) JSON() string { return mustJSON(a) }
