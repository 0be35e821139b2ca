// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A high
// surrogate escape must be immediately followed by a matching low surrogate
// escape, and the pair is combined into a single scalar. Unquote reports an
// error for an incomplete escape sequence, an unknown escape character, or an
// unpaired or mismatched surrogate escape.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	putRune := func(r rune) {
		var buf [6]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dec = append(dec, b)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := parseHex4(src)
			if err != nil {
				return nil, err
			}
			src = rest
			switch {
			case utf16.IsSurrogate(v):
				if v >= 0xDC00 {
					return nil, fmt.Errorf("unpaired low surrogate %q", v)
				}
				lo, rest, err := parseLowSurrogate(src)
				if err != nil {
					return nil, err
				}
				src = rest
				putRune(utf16.DecodeRune(v, lo))
			default:
				putRune(v)
			}
		default:
			return nil, fmt.Errorf("unknown escape %q", b)
		}

		// Look for the next escape sequence, and if one is not found we can
		// blit the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// parseLowSurrogate consumes a "\uXXXX" escape denoting a low surrogate from
// the front of src, reporting an error if one is not present.
func parseLowSurrogate(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 2 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, errors.New("unpaired high surrogate")
	}
	v, rest, err := parseHex4(src.SliceFrom(2))
	if err != nil {
		return 0, src, err
	}
	if v < 0xDC00 || v > 0xDFFF {
		return 0, src, fmt.Errorf("mismatched surrogate pair ending %q", v)
	}
	return v, rest, nil
}

// parseHex4 decodes exactly four hex digits from the front of src and returns
// the remainder of src.
func parseHex4(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, src, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, src.SliceFrom(4), nil
}
