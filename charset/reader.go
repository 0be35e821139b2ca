// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package charset

import (
	"bufio"
	"io"

	"golang.org/x/text/transform"
)

// NewReader returns a reader that delivers the JSON text from r transcoded to
// UTF-8. The encoding is detected from the first bytes of input; a byte-order
// mark is consumed and not forwarded. Transcoding is streamed, so the
// returned reader is safe for inputs of unbounded size.
func NewReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(4)
	if err != nil && len(prefix) == 0 {
		// Empty or unreadable input: hand the original error through.
		return br
	}
	enc, skip := Detect(prefix)
	br.Discard(skip)
	if dec := enc.decoder(); dec != nil {
		return transform.NewReader(br, dec)
	}
	return br
}
