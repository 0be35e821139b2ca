// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a stream of Unicode scalars encoded as
// UTF-8. Each call to Next advances the scanner to the next token, or reports
// an error. Input in other encodings must be transcoded first; the charset
// package provides a reader that does this.
type Scanner struct {
	r      *bufio.Reader
	strict bool         // reject lenient-corpus edge cases
	buf    bytes.Buffer // current token
	tok    Token
	err    error

	// Apparent position, in scalars consumed so far. A newline advances the
	// line and resets the column; see LineCol.
	pos      LineCol
	prev     LineCol // position before the most recent read, for unrune
	lastSize int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
// The input is treated as UTF-8 text.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// SetStrict configures the scanner to reject (true) or accept (false) lenient
// edge cases: unescaped control characters inside string values, and number
// literals with redundant leading zeroes.
func (s *Scanner) SetStrict(ok bool) { s.strict = ok }

// Next advances s to the next token of the input, or reports an error.  At
// the end of the input, Next returns io.EOF. All other errors have concrete
// type [*ParserError].
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.failRead(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(ch)
		}

		// Handle constants: true, false, null
		var want string
		switch ch {
		case 't':
			s.tok = True
			want = "true"
		case 'f':
			s.tok = False
			want = "false"
		case 'n':
			s.tok = Null
			want = "null"
		default:
			return s.fail(ErrInvalidSyntax)
		}
		if err := s.scanName(ch); err != nil {
			return err
		} else if got := s.buf.String(); got != want {
			return s.fail(ErrInvalidSyntax)
		}
		return nil // OK, token is already set
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents
// of the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Pos returns the current position of the scanner, measured in scalars
// consumed so far.
func (s *Scanner) Pos() LineCol { return s.pos }

func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	var esc bool
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.fail(ErrUnterminatedString)
		} else if err != nil {
			return s.failRead(err)
		} else if ch == open && !esc {
			s.buf.WriteRune(ch)
			s.tok = String
			return nil
		}
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.buf.WriteByte(byte(ch))
			case 'u':
				s.buf.WriteByte(byte(ch))
				if err := s.readHex4(); err != nil {
					return err
				}
			default:
				return s.fail(ErrInvalidEscape)
			}
			esc = false
		} else if ch < ' ' && s.strict {
			return s.fail(ErrInvalidSyntax)
		} else if ch > unicode.MaxRune {
			return s.fail(ErrInvalidSyntax)
		} else {
			s.buf.WriteRune(ch)
			esc = ch == '\\'
		}
	}
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := s.require(isDigit)
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of an integer.
	_, ch, err := s.readWhile(isDigit)
	atEOF := err == io.EOF
	if err != nil && !atEOF {
		return s.failRead(err)
	}

	// Redundant leading zeroes (01.2, -001) are disallowed by the grammar but
	// tolerated by much of the deployed corpus, so they are only rejected in
	// strict mode.
	if s.strict && hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.fail(ErrInvalidNumber)
	}
	if atEOF {
		s.tok = Integer
		return nil
	}

	// If a decimal point follows, consume a fractional part.
	var isFloat bool
	if ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if nr == 0 {
			return s.fail(ErrInvalidNumber)
		} else if err == io.EOF {
			s.tok = Number
			return nil
		} else if err != nil {
			return s.failRead(err)
		}
		isFloat = true
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		if isFloat {
			s.tok = Number
		} else {
			s.tok = Integer
		}
		return nil
	}

	s.buf.WriteRune(ch)
	ch, err = s.require(isExpStart)
	if err != nil {
		return err
	}
	s.buf.WriteRune(ch)
	nr, _, err := s.readWhile(isDigit)
	if nr == 0 && (ch == '-' || ch == '+') {
		// It's OK to have no digits if the previous rune was not a sign,
		// otherwise we have to have at least one.
		return s.fail(ErrInvalidNumber)
	} else if err == io.EOF {
		s.tok = Number
		return nil
	} else if err != nil {
		return s.failRead(err)
	}
	s.unrune()
	s.tok = Number
	return nil
}

func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.failRead(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	if err != nil {
		s.lastSize = 0
		return ch, err
	}
	s.prev = s.pos
	s.lastSize = nb
	if ch == '\n' {
		s.pos.Line++
		s.pos.Column = 0
	} else {
		s.pos.Column++
	}
	return ch, nil
}

func (s *Scanner) unrune() {
	if s.lastSize == 0 {
		return
	}
	s.pos = s.prev
	s.lastSize = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or reports an
// invalid-number error.
func (s *Scanner) require(f func(rune) bool) (rune, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.fail(ErrUnexpectedEOF)
	} else if err != nil {
		return 0, s.failRead(err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.fail(ErrInvalidNumber)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a
// rune not matching f is found. The first non-matching rune (if any) is
// returned. It is the caller's responsibility to unread this rune, if
// desired. The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err == io.EOF {
			return s.fail(ErrUnterminatedString)
		} else if err != nil {
			return s.failRead(err)
		} else if !isHexDigit(ch) {
			return s.fail(ErrInvalidEscape)
		}
		s.buf.WriteRune(ch)
	}
	return nil
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(code ErrorCode) error {
	return s.setErr(&ParserError{Code: code, Line: s.pos.Line, Column: s.pos.Column})
}

// failRead records a failure of the underlying reader, preserving the cause.
func (s *Scanner) failRead(err error) error {
	return s.setErr(&ParserError{Code: ErrReadFailed, Line: s.pos.Line, Column: s.pos.Column, Err: err})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the grammar.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
