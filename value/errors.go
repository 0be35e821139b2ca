// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"strconv"
	"strings"
)

// A TypeError reports that a value was missing or of the wrong variant for
// the access that was attempted. Path, when not empty, is the
// dotted/bracketed location of the failing value within its containing
// structure.
type TypeError struct {
	Path     string
	Expected Kind
	Actual   string // a variant name, or "missing"
}

// Error satisfies the error interface.
func (e *TypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("expected %v, found %v", e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: expected %v, found %v", e.Path, e.Expected, e.Actual)
}

// A RangeError reports a numeric conversion whose input does not fit the
// target type. Value carries the textual form of the offending value.
type RangeError struct {
	Path   string
	Value  string
	Target string
}

// Error satisfies the error interface.
func (e *RangeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("value %s out of range for %s", e.Value, e.Target)
	}
	return fmt.Sprintf("%s: value %s out of range for %s", e.Path, e.Value, e.Target)
}

// describe names the variant of v for use in error messages.
func describe(v Value) string {
	if v == nil {
		return "missing"
	}
	return v.Kind().String()
}

// joinPath prepends segment seg onto path: bracketed segments attach
// directly, keyed segments with a dot.
func joinPath(seg, path string) string {
	if path == "" {
		return seg
	} else if strings.HasPrefix(path, "[") {
		return seg + path
	}
	return seg + "." + path
}

// prefixKey threads the object key through the path of a propagating accessor
// error. Errors of other types pass unchanged.
func prefixKey(err error, key string) error {
	return prefixSeg(err, key)
}

// prefixIndex threads the array offset through the path of a propagating
// accessor error. Errors of other types pass unchanged.
func prefixIndex(err error, i int) error {
	return prefixSeg(err, "["+strconv.Itoa(i)+"]")
}

func prefixSeg(err error, seg string) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *TypeError:
		return &TypeError{Path: joinPath(seg, e.Path), Expected: e.Expected, Actual: e.Actual}
	case *RangeError:
		return &RangeError{Path: joinPath(seg, e.Path), Value: e.Value, Target: e.Target}
	}
	return err
}
