// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

import (
	"errors"
	"io"
	"strconv"

	"github.com/creachadair/jtext/internal/escape"

	"go4.org/mem"
)

// Container parsing states. Objects cycle through key, colon, value and
// next-member positions; arrays through element and next-element positions.
const (
	cFirstKey  byte = iota // object: expect key or "}"
	cKey                   // object: expect key
	cColon                 // object: expect ":"
	cValue                 // object: expect member value
	cNextMem               // object: expect "," or "}"
	cFirstElem             // array: expect value or "]"
	cElem                  // array: expect value
	cNextElem              // array: expect "," or "]"
)

type pframe struct {
	object bool
	state  byte
}

// A Parser converts a scalar stream into a forward-only sequence of parse
// events. Each call to Next returns the next event of the input.  The
// sequence is single-pass and not restartable, and a Parser must not be
// shared by concurrent operations.
//
// In the default mode the input must contain exactly one top-level value; in
// streaming mode it may contain any number of top-level values concatenated
// with no required separator.
type Parser struct {
	sc    *Scanner
	opts  *Options
	stk   []pframe
	nvals int  // completed top-level values
	done  bool // clean end of input reached

	err error // sticky; once set, no further events are produced
}

// NewParser constructs a parser that consumes UTF-8 text from r. A nil opts
// value is ready for use and provides defaults.
func NewParser(r io.Reader, opts *Options) *Parser {
	sc := NewScanner(r)
	sc.SetStrict(opts.strict())
	return &Parser{sc: sc, opts: opts}
}

// Next returns the next event of the input. At the end of the input it
// returns io.EOF. Any other error has concrete type [*ParserError] and is
// sticky: after an error is reported, all subsequent calls return the same
// error, even if the underlying input contains further valid values.
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	} else if p.done {
		return Event{}, io.EOF
	}
	ev, err := p.next()
	if err != nil {
		if err == io.EOF {
			p.done = true
		} else {
			p.err = err
		}
		return Event{}, err
	}
	return ev, nil
}

func (p *Parser) next() (Event, error) {
	for {
		if err := p.sc.Next(); err == io.EOF {
			if len(p.stk) != 0 {
				return Event{}, p.fail(ErrUnexpectedEOF)
			} else if !p.opts.streaming() && p.nvals == 0 {
				return Event{}, p.fail(ErrUnexpectedEOF)
			}
			return Event{}, io.EOF
		} else if err != nil {
			return Event{}, err
		}
		tok := p.sc.Token()

		if len(p.stk) == 0 {
			// Top level: expect a value, or nothing after the first value
			// unless streaming.
			if !p.opts.streaming() && p.nvals > 0 {
				return Event{}, p.fail(ErrInvalidSyntax)
			}
			return p.beginValue(tok)
		}

		top := &p.stk[len(p.stk)-1]
		switch top.state {
		case cFirstKey, cKey:
			if tok == RBrace && top.state == cFirstKey {
				return p.endContainer(ObjectEnd)
			} else if tok != String {
				return Event{}, p.fail(ErrInvalidSyntax)
			}
			text, err := p.decodeString()
			if err != nil {
				return Event{}, err
			}
			top.state = cColon
			return Event{Kind: StringValue, Str: text}, nil

		case cColon:
			if tok != Colon {
				return Event{}, p.fail(ErrInvalidSyntax)
			}
			top.state = cValue // no event; fetch the member value

		case cValue:
			return p.beginValue(tok)

		case cNextMem:
			if tok == RBrace {
				return p.endContainer(ObjectEnd)
			} else if tok != Comma {
				return Event{}, p.fail(ErrInvalidSyntax)
			}
			top.state = cKey // no event; fetch the next key

		case cFirstElem:
			if tok == RSquare {
				return p.endContainer(ArrayEnd)
			}
			return p.beginValue(tok)

		case cElem:
			return p.beginValue(tok)

		case cNextElem:
			if tok == RSquare {
				return p.endContainer(ArrayEnd)
			} else if tok != Comma {
				return Event{}, p.fail(ErrInvalidSyntax)
			}
			top.state = cElem // no event; fetch the next element
		}
	}
}

// beginValue handles a token in value position.
func (p *Parser) beginValue(tok Token) (Event, error) {
	switch tok {
	case LBrace:
		if err := p.push(pframe{object: true, state: cFirstKey}); err != nil {
			return Event{}, err
		}
		return Event{Kind: ObjectStart}, nil

	case LSquare:
		if err := p.push(pframe{state: cFirstElem}); err != nil {
			return Event{}, err
		}
		return Event{Kind: ArrayStart}, nil

	case String:
		text, err := p.decodeString()
		if err != nil {
			return Event{}, err
		}
		p.completeValue()
		return Event{Kind: StringValue, Str: text}, nil

	case Integer, Number:
		ev, err := p.numberValue(tok)
		if err != nil {
			return Event{}, err
		}
		p.completeValue()
		return ev, nil

	case True, False:
		p.completeValue()
		return Event{Kind: BoolValue, Bool: tok == True}, nil

	case Null:
		p.completeValue()
		return Event{Kind: NullValue}, nil

	default:
		return Event{}, p.fail(ErrInvalidSyntax)
	}
}

// push enters a new container frame, enforcing the depth limit.
func (p *Parser) push(f pframe) error {
	if len(p.stk)+1 > p.opts.depthLimit() {
		return p.fail(ErrDepthExceeded)
	}
	p.stk = append(p.stk, f)
	return nil
}

// endContainer pops the current frame and reports its closing event.
func (p *Parser) endContainer(kind EventKind) (Event, error) {
	p.stk = p.stk[:len(p.stk)-1]
	p.completeValue()
	return Event{Kind: kind}, nil
}

// completeValue records that a full value has been produced at the current
// nesting position.
func (p *Parser) completeValue() {
	if len(p.stk) == 0 {
		p.nvals++
		return
	}
	top := &p.stk[len(p.stk)-1]
	if top.object {
		top.state = cNextMem
	} else {
		top.state = cNextElem
	}
}

// decodeString unquotes the current string token, resolving escapes and
// combining surrogate pairs.
func (p *Parser) decodeString() (string, error) {
	text := p.sc.Text()
	dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
	if err != nil {
		return "", p.fail(ErrInvalidEscape)
	}
	return string(dec), nil
}

// numberValue classifies the current number token. Integer literals in the
// signed 64-bit range become IntValue; everything else becomes DoubleValue,
// or DecimalValue when decimal mode is enabled.
func (p *Parser) numberValue(tok Token) (Event, error) {
	text := string(p.sc.Text())
	if tok == Integer {
		z, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return Event{Kind: IntValue, Int: z}, nil
		}
		// Out of int64 range; fall through to the inexact forms.
	}
	if p.opts.useDecimals() {
		return Event{Kind: DecimalValue, Str: text}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The scanner validated the literal shape, so only range overflow is
		// expected here; anything else is malformed input.
		return Event{}, p.fail(ErrInvalidNumber)
	}
	return Event{Kind: DoubleValue, Dbl: f}, nil
}

func (p *Parser) fail(code ErrorCode) error {
	pos := p.sc.Pos()
	return &ParserError{Code: code, Line: pos.Line, Column: pos.Column}
}
