// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

// DefaultDepthLimit is the nesting depth limit applied when Options.DepthLimit
// is zero.
const DefaultDepthLimit = 10000

// Options control the behaviour of a Parser. A nil *Options is ready for use
// and provides default values.
type Options struct {
	// Strict rejects lenient-corpus edge cases: unescaped control characters
	// inside strings and redundant leading zeroes in numbers.
	Strict bool

	// UseDecimals reports non-integer numbers as DecimalValue events carrying
	// the exact literal text, instead of DoubleValue events rounded through
	// binary floating point.
	UseDecimals bool

	// DepthLimit is the maximum permitted nesting depth of containers.
	// Zero means DefaultDepthLimit.
	DepthLimit int

	// Streaming permits multiple top-level values concatenated with no
	// required separator. When false the input must contain exactly one
	// top-level value.
	Streaming bool
}

func (o *Options) strict() bool {
	return o != nil && o.Strict
}

func (o *Options) useDecimals() bool {
	return o != nil && o.UseDecimals
}

func (o *Options) streaming() bool {
	return o != nil && o.Streaming
}

func (o *Options) depthLimit() int {
	if o == nil || o.DepthLimit <= 0 {
		return DefaultDepthLimit
	}
	return o.DepthLimit
}
