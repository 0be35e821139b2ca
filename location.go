// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext

// A LineCol describes the position of a location in source text, measured in
// Unicode scalars consumed up to that location. Each newline scalar advances
// Line by one and resets Column to zero; every other scalar advances Column.
// Both fields are 0-based.
type LineCol struct {
	Line   int // line number, 0-based
	Column int // scalar offset in line, 0-based
}
