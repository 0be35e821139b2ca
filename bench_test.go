// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/value"
)

// benchInput synthesizes a moderately nested document of n records.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"records": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id": %d, "name": "record %d", "score": %g, `+
			`"ok": %v, "tags": ["a", "b\tc", null], "meta": {"depth": [%d, [%d]]}}`,
			i, i, float64(i)/3, i%2 == 0, i, i)
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(500)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("StdDecoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Parser", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			p := jtext.NewParser(bytes.NewReader(input), nil)
			for {
				_, err := p.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})
}

func BenchmarkDecode(b *testing.B) {
	input := benchInput(500)

	b.Run("StdUnmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Decode", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := value.Decode(input, nil); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
