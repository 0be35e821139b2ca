// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/value"
	"github.com/google/go-cmp/cmp"

	gojson "github.com/goccy/go-json"
)

func TestDecodeString(t *testing.T) {
	tests := []struct {
		input string
		opts  *jtext.Options
		want  value.Value
	}{
		{`null`, nil, value.Null{}},
		{`true`, nil, value.Bool(true)},
		{`"a\tb"`, nil, value.String("a\tb")},
		{`-25`, nil, value.Int(-25)},
		{`0.5`, nil, value.Double(0.5)},
		{`[]`, nil, value.Array{}},
		{`{}`, nil, value.NewObject()},
		{` [1, "two", null] `, nil, value.Array{value.Int(1), value.String("two"), value.Null{}}},
		{`{"a": 1, "b": {"c": [true]}}`, nil, value.NewObject(
			value.Member{Key: "a", Value: value.Int(1)},
			value.Member{Key: "b", Value: value.NewObject(
				value.Member{Key: "c", Value: value.Array{value.Bool(true)}},
			)},
		)},

		// Duplicate keys: first position, last value.
		{`{"a": 1, "b": 2, "a": 3}`, nil, value.NewObject(
			value.Member{Key: "a", Value: value.Int(3)},
			value.Member{Key: "b", Value: value.Int(2)},
		)},

		// Number classification.
		{`9223372036854775807`, nil, value.Int(math.MaxInt64)},
		{`9223372036854775808`, nil, value.Double(9223372036854775808)},
		{`1.5`, &jtext.Options{UseDecimals: true}, mustDecimalV("1.5")},
		{`1.500`, &jtext.Options{UseDecimals: true}, mustDecimalV("1.500")},
	}
	for _, test := range tests {
		got, err := value.DecodeString(test.input, test.opts)
		if err != nil {
			t.Errorf("DecodeString(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if !value.Equal(got, test.want) {
			t.Errorf("DecodeString(%#q): got %v, want %v", test.input, got.JSON(), test.want.JSON())
		}
	}
}

func mustDecimalV(s string) value.Value {
	d, err := value.ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDecodeString_keyOrder(t *testing.T) {
	v, err := value.DecodeString(`{"z": 1, "a": 2, "m": 3, "z": 4}`, nil)
	if err != nil {
		t.Fatalf("DecodeString failed: %v", err)
	}
	o, err := value.GetObject(v)
	if err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, o.Keys()); diff != "" {
		t.Errorf("Keys: (-want, +got)\n%s", diff)
	}
	if z, err := o.GetInt("z"); err != nil || z != 4 {
		t.Errorf(`GetInt("z"): got (%d, %v), want (4, nil)`, z, err)
	}
}

func TestDecodeString_errors(t *testing.T) {
	tests := []struct {
		input string
		code  jtext.ErrorCode
	}{
		{``, jtext.ErrUnexpectedEOF},
		{`[1, 2`, jtext.ErrUnexpectedEOF},
		{`1 2`, jtext.ErrInvalidSyntax},
		{`{"a" 1}`, jtext.ErrInvalidSyntax},
		{`"\ud83d"`, jtext.ErrInvalidEscape},
	}
	for _, test := range tests {
		_, err := value.DecodeString(test.input, nil)
		pe, ok := err.(*jtext.ParserError)
		if !ok {
			t.Errorf("DecodeString(%#q): got error %v, want *ParserError", test.input, err)
		} else if pe.Code != test.code {
			t.Errorf("DecodeString(%#q): got code %v, want %v", test.input, pe.Code, test.code)
		}
	}
}

func TestDecode_encodings(t *testing.T) {
	// The same document in UTF-16LE with a BOM.
	const text = `{"a": [1, true]}`
	var input []byte
	input = append(input, 0xFF, 0xFE)
	for i := 0; i < len(text); i++ {
		input = append(input, text[i], 0)
	}
	got, err := value.Decode(input, nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := value.NewObject(
		value.Member{Key: "a", Value: value.Array{value.Int(1), value.Bool(true)}},
	)
	if !value.Equal(got, want) {
		t.Errorf("Decode: got %v, want %v", got.JSON(), want.JSON())
	}
}

func TestDecode_encodingMatrix(t *testing.T) {
	// The same numeric literal in every encoding form, with and without a
	// BOM, decodes to the same integer.
	type form struct {
		name string
		bom  []byte
		put  func([]byte, byte) []byte
	}
	forms := []form{
		{"UTF-8", []byte{0xEF, 0xBB, 0xBF}, func(out []byte, b byte) []byte {
			return append(out, b)
		}},
		{"UTF-16BE", []byte{0xFE, 0xFF}, func(out []byte, b byte) []byte {
			return append(out, 0, b)
		}},
		{"UTF-16LE", []byte{0xFF, 0xFE}, func(out []byte, b byte) []byte {
			return append(out, b, 0)
		}},
		{"UTF-32BE", []byte{0, 0, 0xFE, 0xFF}, func(out []byte, b byte) []byte {
			return append(out, 0, 0, 0, b)
		}},
		{"UTF-32LE", []byte{0xFF, 0xFE, 0, 0}, func(out []byte, b byte) []byte {
			return append(out, b, 0, 0, 0)
		}},
	}
	const text = "42"
	for _, f := range forms {
		for _, bom := range []bool{true, false} {
			var input []byte
			if bom {
				input = append(input, f.bom...)
			}
			for i := 0; i < len(text); i++ {
				input = f.put(input, text[i])
			}
			got, err := value.Decode(input, nil)
			if err != nil {
				t.Errorf("Decode [%s bom=%v]: unexpected error: %v", f.name, bom, err)
				continue
			}
			if !value.Equal(got, value.Int(42)) {
				t.Errorf("Decode [%s bom=%v]: got %v, want 42", f.name, bom, got.JSON())
			}
		}
	}
}

func TestDecode_empty(t *testing.T) {
	_, err := value.Decode(nil, nil)
	pe, ok := err.(*jtext.ParserError)
	if !ok || pe.Code != jtext.ErrInvalidEncoding {
		t.Errorf("Decode(nil): got %v, want invalid encoding", err)
	}
}

func TestStreamDecoder(t *testing.T) {
	d := value.NewStreamDecoder(strings.NewReader(`{"a":1}{"a":2}3`), nil)
	want := []value.Value{
		value.NewObject(value.Member{Key: "a", Value: value.Int(1)}),
		value.NewObject(value.Member{Key: "a", Value: value.Int(2)}),
		value.Int(3),
	}
	for i, w := range want {
		got, err := d.Next()
		if err != nil {
			t.Fatalf("Next %d: unexpected error: %v", i, err)
		}
		if !value.Equal(got, w) {
			t.Errorf("Next %d: got %v, want %v", i, got.JSON(), w.JSON())
		}
	}
	if v, err := d.Next(); err != io.EOF {
		t.Errorf("Next at end: got (%v, %v), want io.EOF", v, err)
	}
}

func TestStreamDecoder_terminal(t *testing.T) {
	// An error ends the stream even if more input follows.
	d := value.NewStreamDecoder(strings.NewReader(`true q true`), nil)
	if v, err := d.Next(); err != nil || !value.Equal(v, value.Bool(true)) {
		t.Fatalf("Next: got (%v, %v), want (true, nil)", v, err)
	}
	_, err := d.Next()
	pe, ok := err.(*jtext.ParserError)
	if !ok {
		t.Fatalf("Next: got error %v, want *ParserError", err)
	}
	if pe.Code != jtext.ErrInvalidSyntax || pe.Line != 0 || pe.Column != 6 {
		t.Errorf("Next: got %v, want invalid syntax at line 0, column 6", pe)
	}
	if _, err2 := d.Next(); err2 != err {
		t.Errorf("Next after error: got (%v), want (%v)", err2, err)
	}
}

func TestDecodeStream_encodings(t *testing.T) {
	// Two values in UTF-16BE without a BOM.
	const text = `1 "two"`
	var input []byte
	for i := 0; i < len(text); i++ {
		input = append(input, 0, text[i])
	}
	d := value.DecodeStream(input, nil)
	if v, err := d.Next(); err != nil || !value.Equal(v, value.Int(1)) {
		t.Fatalf("Next: got (%v, %v), want (1, nil)", v, err)
	}
	if v, err := d.Next(); err != nil || !value.Equal(v, value.String("two")) {
		t.Fatalf("Next: got (%v, %v), want (two, nil)", v, err)
	}
	if _, err := d.Next(); err != io.EOF {
		t.Errorf("Next at end: got %v, want io.EOF", err)
	}
}

// TestDecode_differential cross-checks decoding of valid documents against an
// independent JSON implementation.
func TestDecode_differential(t *testing.T) {
	inputs := []string{
		`null`,
		`[]`,
		`{}`,
		`[1, -2, 3.5, "four", true, false, null]`,
		`{"a": {"b": {"c": [1, [2, [3]]]}}}`,
		`{"text": "escapes A 😃 \t\r\n", "n": -0.25e2}`,
		`[1e10, 0.0001, 123456789]`,
	}
	// Integers widen to float64 to match the generic decoding of the
	// reference implementation.
	widen := cmp.FilterValues(func(x, y any) bool {
		_, xok := x.(int64)
		_, yok := y.(int64)
		return xok || yok
	}, cmp.Transformer("widen", func(z any) any {
		if n, ok := z.(int64); ok {
			return float64(n)
		}
		return z
	}))

	for _, input := range inputs {
		v, err := value.DecodeString(input, nil)
		if err != nil {
			t.Errorf("DecodeString(%#q): %v", input, err)
			continue
		}
		got := value.ToAny(v)

		var want any
		if err := gojson.Unmarshal([]byte(input), &want); err != nil {
			t.Fatalf("Unmarshal(%#q): %v", input, err)
		}
		if diff := cmp.Diff(want, got, widen); diff != "" {
			t.Errorf("Decode %#q: (-want, +got)\n%s", input, diff)
		}
	}
}
