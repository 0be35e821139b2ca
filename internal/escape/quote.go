// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a JSON string value, adding the enclosing double
// quotation marks. Control characters, quotes, and backslashes are always
// escaped; a forward slash is escaped only if escapeSlash is true. All other
// scalars are emitted as raw UTF-8, except the line and paragraph separators
// which are escaped for compatibility with embedding in scripts.
func Quote(src mem.RO, escapeSlash bool) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	buf = AppendQuoted(buf, src, escapeSlash)
	return append(buf, '"')
}

// AppendQuoted appends the escaped contents of src to buf without the
// enclosing quotation marks, and returns the updated slice.
func AppendQuoted(buf []byte, src mem.RO, escapeSlash bool) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			switch {
			case r < ' ':
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = append(buf, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			case r == '\\' || r == '"':
				buf = append(buf, '\\', byte(r))
			case r == '/' && escapeSlash:
				buf = append(buf, '\\', '/')
			default:
				buf = append(buf, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case '\u2028': // line separator
			buf = append(buf, `\u2028`...)
		case '\u2029': // paragraph separator
			buf = append(buf, `\u2029`...)
		default:
			var rbuf [6]byte
			n := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:n]...)
		}

		src = src.SliceFrom(n)
	}
	return buf
}
