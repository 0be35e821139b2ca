// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jtext implements a JSON text engine: a lexical scanner and a
// single-pass event parser over Unicode scalar input, with strict grammar
// conformance, configurable leniency, and precision-preserving numeric
// handling.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jtext.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// has concrete type *jtext.ParserError and carries the 0-based line and
// column, counted in scalars, where the failure was detected.
//
// # Parsing
//
// The Parser type converts the token stream into a forward-only sequence of
// parse events describing the structure of the input: container boundaries
// and scalar values. Object keys are reported as string events in key
// position. Construct a Parser from an io.Reader and pull events from it:
//
//	p := jtext.NewParser(input, nil)
//	for {
//	   ev, err := p.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   log.Printf("Event: %v", ev.Kind)
//	}
//
// The event sequence is consumed once and is not restartable. After a parse
// error is reported the sequence ends permanently; there is no
// resynchronization to a later plausible value, even in streaming mode.
//
// Parsing is a single forward pass whose auxiliary state is one stack entry
// per level of container nesting. The Options.DepthLimit setting bounds that
// stack against adversarially nested input.
//
// # Input encodings
//
// The scanner and parser consume UTF-8. Raw byte buffers of unknown encoding
// (UTF-8, UTF-16, or UTF-32, with or without a byte-order mark) are handled
// by the charset package, whose Decode and NewReader functions transcode into
// scalars suitable for this package. The value package composes the two for
// the common decode-some-bytes case.
//
// # Values
//
// The value package assembles event sequences into immutable tree-shaped
// values, provides typed path-tracked accessors over them, and encodes values
// back to JSON text.
package jtext
