// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"bytes"
	"io"
	"strings"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/charset"
)

// Decode decodes a single JSON value from raw bytes of unknown Unicode
// encoding. The encoding is detected and the text transcoded as described in
// the charset package. Trailing non-whitespace input after the value is an
// error. In case of error, the result is nil and the error has concrete type
// [*jtext.ParserError].
func Decode(data []byte, opts *jtext.Options) (Value, error) {
	text, _, err := charset.Decode(data)
	if err != nil {
		return nil, &jtext.ParserError{Code: jtext.ErrInvalidEncoding}
	}
	return decodeOne(bytes.NewReader(text), opts)
}

// DecodeString decodes a single JSON value from UTF-8 text.
func DecodeString(s string, opts *jtext.Options) (Value, error) {
	return decodeOne(strings.NewReader(s), opts)
}

func decodeOne(r io.Reader, opts *jtext.Options) (Value, error) {
	o := fixOptions(opts, false)
	p := jtext.NewParser(r, o)
	v, err := build(p)
	if err != nil {
		return nil, err
	}
	// A complete value was assembled; the next event must be clean EOF, or
	// the parser reports the trailing input.
	if _, err := p.Next(); err != io.EOF {
		return nil, err
	}
	return v, nil
}

// A StreamDecoder decodes a sequence of top-level JSON values concatenated in
// a single input with no required separator. Each call to Next returns the
// next decoded value. A StreamDecoder holds operation-local state and must
// not be shared by concurrent operations.
type StreamDecoder struct {
	p   *jtext.Parser
	err error
}

// NewStreamDecoder constructs a decoder for the sequence of values in the
// UTF-8 text from r. For input of unknown encoding, wrap the reader with
// [charset.NewReader], or see [DecodeStream].
func NewStreamDecoder(r io.Reader, opts *jtext.Options) *StreamDecoder {
	return &StreamDecoder{p: jtext.NewParser(r, fixOptions(opts, true))}
}

// DecodeStream constructs a decoder for the sequence of values in raw bytes
// of unknown Unicode encoding.
func DecodeStream(data []byte, opts *jtext.Options) *StreamDecoder {
	return NewStreamDecoder(charset.NewReader(bytes.NewReader(data)), opts)
}

// Next returns the next value of the stream, or io.EOF when the input is
// exhausted. Any other error has concrete type [*jtext.ParserError] and is
// terminal: once an error is returned the stream yields nothing further,
// even if the input contains more plausible values after the error.
func (d *StreamDecoder) Next() (Value, error) {
	if d.err != nil {
		return nil, d.err
	}
	v, err := build(d.p)
	if err != nil {
		d.err = err
		return nil, err
	}
	return v, nil
}

// fixOptions normalizes opts for a decoding operation with the given
// streaming mode.
func fixOptions(opts *jtext.Options, streaming bool) *jtext.Options {
	var o jtext.Options
	if opts != nil {
		o = *opts
	}
	o.Streaming = streaming
	return &o
}

// dframe mirrors one open container of the parser's own nesting stack, so
// that assembly never recurses regardless of input depth.
type dframe struct {
	object bool
	keyPos bool // the next string event is a member key
}

// build assembles the next top-level value from the events of p.
func build(p *jtext.Parser) (Value, error) {
	var b Builder
	var stk []dframe
	for {
		ev, err := p.Next()
		if err != nil {
			// io.EOF only occurs here with no partial value pending: the
			// parser reports unbalanced input as an error itself.
			return nil, err
		}

		switch ev.Kind {
		case jtext.ObjectStart:
			b.BeginObject()
			stk = append(stk, dframe{object: true, keyPos: true})
			continue

		case jtext.ArrayStart:
			b.BeginArray()
			stk = append(stk, dframe{})
			continue

		case jtext.ObjectEnd:
			b.EndObject()
			stk = stk[:len(stk)-1]

		case jtext.ArrayEnd:
			b.EndArray()
			stk = stk[:len(stk)-1]

		case jtext.StringValue:
			if n := len(stk); n != 0 && stk[n-1].object && stk[n-1].keyPos {
				b.Key(ev.Str)
				stk[n-1].keyPos = false
				continue
			}
			b.String(ev.Str)

		case jtext.IntValue:
			b.Int(ev.Int)

		case jtext.DoubleValue:
			b.Double(ev.Dbl)

		case jtext.DecimalValue:
			d, err := ParseDecimal(ev.Str)
			if err != nil {
				// Unreachable for parser-fed input; the literal was already
				// validated by the scanner.
				return nil, &jtext.ParserError{Code: jtext.ErrInvalidNumber}
			}
			b.Decimal(d)

		case jtext.BoolValue:
			b.Bool(ev.Bool)

		case jtext.NullValue:
			b.Null()
		}

		// A value has been completed at the current position.
		if n := len(stk); n == 0 {
			return b.Build()
		} else if stk[n-1].object {
			stk[n-1].keyPos = true
		}
	}
}
