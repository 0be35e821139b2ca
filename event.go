// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

// EventKind is the type of a parse event reported by a Parser.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	NoEvent      EventKind = iota // zero value, not a valid event
	ObjectStart                   // begin object "{"
	ObjectEnd                     // end object "}"
	ArrayStart                    // begin array "["
	ArrayEnd                      // end array "]"
	StringValue                   // string value or object key (decoded)
	IntValue                      // number: integer within int64 range
	DoubleValue                   // number with fraction and/or exponent
	DecimalValue                  // number carrying its exact literal text
	BoolValue                     // constant: true or false
	NullValue                     // constant: null
)

var eventStr = [...]string{
	NoEvent:      "no event",
	ObjectStart:  "object start",
	ObjectEnd:    "object end",
	ArrayStart:   "array start",
	ArrayEnd:     "array end",
	StringValue:  "string",
	IntValue:     "integer",
	DoubleValue:  "double",
	DecimalValue: "decimal",
	BoolValue:    "bool",
	NullValue:    "null",
}

func (k EventKind) String() string {
	if int(k) >= len(eventStr) {
		return eventStr[NoEvent]
	}
	return eventStr[k]
}

// An Event is one token-level unit of the structure of the input: a container
// boundary or a scalar value. Object keys are reported as StringValue events
// in key position. Exactly one payload field is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	Str  string  // StringValue: decoded text; DecimalValue: the exact literal
	Int  int64   // IntValue
	Dbl  float64 // DoubleValue
	Bool bool    // BoolValue
}
