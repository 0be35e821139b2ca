// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"math"
	"slices"
)

// ToValue converts a plain Go value into a Value. It supports nil, bool,
// string, the built-in signed and unsigned integer types, float32, float64,
// *Decimal, map[string]any, []any, and any type that already satisfies
// Value. Map keys are added in sorted order. ToValue panics if v does not
// have one of those types, or if an unsigned value exceeds the int64 range.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return uintValue(uint64(t))
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return uintValue(t)
	case float32:
		return Double(t)
	case float64:
		return Double(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		o := newObject(len(keys))
		for _, key := range keys {
			o.set(key, ToValue(t[key]))
		}
		return o
	case []any:
		a := make(Array, len(t))
		for i, elt := range t {
			a[i] = ToValue(elt)
		}
		return a
	case Value:
		return t
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		panic(fmt.Sprintf("value %d out of range for int64", u))
	}
	return Int(u)
}

// ToAny converts v into a plain Go value: nil, bool, string, int64, float64,
// *Decimal, map[string]any, or []any. Converting an object loses the
// insertion order of its members.
func ToAny(v Value) any { return toAny(v, false) }

// ToAnyOmitNull is ToAny, except that null-valued object members and array
// elements are dropped from the result. A top-level Null still converts to
// nil.
func ToAnyOmitNull(v Value) any { return toAny(v, true) }

func toAny(v Value, omitNull bool) any {
	switch t := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(t)
	case String:
		return string(t)
	case Int:
		return int64(t)
	case Double:
		return float64(t)
	case *Decimal:
		return t
	case *Object:
		m := make(map[string]any, t.Len())
		for _, key := range t.keys {
			if omitNull && absent(t.m[key]) {
				continue
			}
			m[key] = toAny(t.m[key], omitNull)
		}
		return m
	case Array:
		out := make([]any, 0, len(t))
		for _, elt := range t {
			if omitNull && absent(elt) {
				continue
			}
			out = append(out, toAny(elt, omitNull))
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}
