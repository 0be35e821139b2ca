// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jtext/internal/escape"

	"go4.org/mem"
)

// EncodeOptions control the behaviour of Encode. A nil *EncodeOptions is
// ready for use and provides compact output.
type EncodeOptions struct {
	// Pretty inserts newlines and indentation proportional to nesting depth.
	Pretty bool

	// Indent is the unit of indentation in pretty mode. Empty means two
	// spaces.
	Indent string

	// EscapeSlash escapes "/" in strings, for embedding output in contexts
	// where a literal slash is significant. Control characters, quotation
	// marks, and backslashes are always escaped.
	EscapeSlash bool
}

func (o *EncodeOptions) pretty() bool {
	return o != nil && o.Pretty
}

func (o *EncodeOptions) indent() string {
	if o == nil || o.Indent == "" {
		return "  "
	}
	return o.Indent
}

func (o *EncodeOptions) escapeSlash() bool {
	return o != nil && o.EscapeSlash
}

// Encode writes the JSON encoding of v to w. Output is written incrementally
// as the value is traversed, so encoding a large value does not buffer the
// whole text. Object members are written in insertion order. Non-finite
// doubles have no JSON encoding and are an error.
func Encode(w io.Writer, v Value, opts *EncodeOptions) error {
	e := &encoder{w: w, opts: opts}
	if err := e.value(v, 0); err != nil {
		return err
	}
	return e.err
}

// EncodeString returns the JSON encoding of v as a string.
func EncodeString(v Value, opts *EncodeOptions) (string, error) {
	var sb strings.Builder
	if err := Encode(&sb, v, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type encoder struct {
	w    io.Writer
	opts *EncodeOptions
	buf  []byte // scratch for scalars
	err  error  // sticky write error
}

func (e *encoder) value(v Value, depth int) error {
	switch t := v.(type) {
	case Null:
		e.writeString("null")
	case Bool:
		e.writeString(strconv.FormatBool(bool(t)))
	case String:
		e.writeQuoted(string(t))
	case Int:
		e.buf = strconv.AppendInt(e.buf[:0], int64(t), 10)
		e.write(e.buf)
	case Double:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.New("double has no JSON encoding: " + strconv.FormatFloat(f, 'g', -1, 64))
		}
		// The shortest representation that round-trips to the same bits. An
		// integral rendering would decode as an integer, so those keep an
		// explicit fraction.
		e.buf = strconv.AppendFloat(e.buf[:0], f, 'g', -1, 64)
		if !bytes.ContainsAny(e.buf, ".eE") {
			e.buf = append(e.buf, '.', '0')
		}
		e.write(e.buf)
	case *Decimal:
		// Exact stored digits. A rendering that reads back as an in-range
		// integer literal would decode as one, so those switch to the
		// coefficient-exponent form, which preserves the stored digits too.
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				s = t.text()
			}
		}
		e.writeString(s)
	case *Object:
		return e.object(t, depth)
	case Array:
		return e.array(t, depth)
	default:
		return errors.New("cannot encode nil value")
	}
	return nil
}

func (e *encoder) object(o *Object, depth int) error {
	if o.Len() == 0 {
		e.writeString("{}")
		return nil
	}
	e.writeByte('{')
	for i, key := range o.keys {
		if i > 0 {
			e.writeByte(',')
		}
		e.newline(depth + 1)
		e.writeQuoted(key)
		e.writeByte(':')
		if e.opts.pretty() {
			e.writeByte(' ')
		}
		if err := e.value(o.m[key], depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.writeByte('}')
	return nil
}

func (e *encoder) array(a Array, depth int) error {
	if len(a) == 0 {
		e.writeString("[]")
		return nil
	}
	e.writeByte('[')
	for i, v := range a {
		if i > 0 {
			e.writeByte(',')
		}
		e.newline(depth + 1)
		if err := e.value(v, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.writeByte(']')
	return nil
}

// newline starts an indented line in pretty mode; in compact mode it writes
// nothing.
func (e *encoder) newline(depth int) {
	if !e.opts.pretty() {
		return
	}
	e.writeByte('\n')
	for range depth {
		e.writeString(e.opts.indent())
	}
}

func (e *encoder) writeQuoted(s string) {
	e.buf = escape.AppendQuoted(append(e.buf[:0], '"'), mem.S(s), e.opts.escapeSlash())
	e.write(append(e.buf, '"'))
}

func (e *encoder) write(data []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(data)
	}
}

func (e *encoder) writeString(s string) {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, s)
	}
}

func (e *encoder) writeByte(b byte) {
	e.buf = append(e.buf[:0], b)
	e.write(e.buf)
}
