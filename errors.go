// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

import "fmt"

// An ErrorCode identifies the category of a parse failure.
type ErrorCode byte

// Constants defining the valid ErrorCode values.
const (
	ErrUnexpectedEOF      ErrorCode = iota // input ended inside a value
	ErrInvalidSyntax                       // malformed input at position
	ErrInvalidEscape                       // invalid or truncated string escape
	ErrInvalidNumber                       // malformed number literal
	ErrUnterminatedString                  // input ended inside a string
	ErrInvalidEncoding                     // undetectable or empty input encoding
	ErrDepthExceeded                       // nesting depth limit exceeded
	ErrReadFailed                          // reading the input failed
)

var errorStr = [...]string{
	ErrUnexpectedEOF:      "unexpected end of input",
	ErrInvalidSyntax:      "invalid syntax",
	ErrInvalidEscape:      "invalid escape sequence",
	ErrInvalidNumber:      "invalid number literal",
	ErrUnterminatedString: "unterminated string",
	ErrInvalidEncoding:    "invalid encoding",
	ErrDepthExceeded:      "exceeded depth limit",
	ErrReadFailed:         "input read failed",
}

func (c ErrorCode) String() string {
	if int(c) >= len(errorStr) {
		return "unknown error"
	}
	return errorStr[c]
}

// ParserError is the concrete type of errors reported by the scanner and
// parser. Line and Column give the number of scalars consumed when the error
// was detected; both are 0-based. For ErrReadFailed, Err carries the error
// reported by the underlying reader.
type ParserError struct {
	Code   ErrorCode
	Line   int
	Column int
	Err    error // underlying cause, or nil
}

// Error satisfies the error interface.
func (e *ParserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v (line %d, column %d)", e.Code, e.Err, e.Line, e.Column)
	}
	return fmt.Sprintf("%v (line %d, column %d)", e.Code, e.Line, e.Column)
}

// Unwrap supports errors.Is and errors.As on the underlying cause.
func (e *ParserError) Unwrap() error { return e.Err }
