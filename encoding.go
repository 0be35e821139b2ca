// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

import (
	"errors"
	"strings"

	"github.com/creachadair/jtext/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src), false)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Surrogate pair escapes are combined into a single scalar; an unpaired or
// mismatched surrogate escape is an error, as is an incomplete or unknown
// escape sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
