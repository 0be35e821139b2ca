// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"strconv"
)

// Typed access to values comes in four families:
//
//  1. Non-converting optional access is the Go type assertion, for example
//     s, ok := v.(String).
//  2. Converting optional access: AsString, AsInt, AsDouble, AsDecimal,
//     AsBool report (zero, false) where conversion is not possible.
//  3. Non-converting erroring access: GetString and friends report a
//     *TypeError unless the value is exactly the named variant.
//  4. Converting erroring access: ToString and friends coerce between
//     numeric variants, numbers and strings, and bools and strings, and
//     report *TypeError or *RangeError when a coercion is impossible.
//
// Families 3 and 4 have OrNil counterparts that map null (and, in the keyed
// and indexed forms, missing) to an absent result instead of an error, while
// still reporting genuine type mismatches.
//
// The keyed forms on *Object and the indexed forms on Array report the
// failing key or offset as the error path. The closure forms (WithObject,
// WithArray and their indexed counterparts) additionally prefix their segment
// onto errors propagating out of the closure, composing full dotted and
// bracketed paths such as "object.elements[0].name".

// GetString returns v as a string, or a *TypeError if v is not a string.
func GetString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", &TypeError{Expected: KindString, Actual: describe(v)}
}

// GetBool returns v as a bool, or a *TypeError if v is not a bool.
func GetBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, &TypeError{Expected: KindBool, Actual: describe(v)}
}

// GetInt returns v as an int64, or a *TypeError if v is not an integer.
func GetInt(v Value) (int64, error) {
	if z, ok := v.(Int); ok {
		return int64(z), nil
	}
	return 0, &TypeError{Expected: KindInt, Actual: describe(v)}
}

// GetDouble returns v as a float64, or a *TypeError if v is not a double.
func GetDouble(v Value) (float64, error) {
	if f, ok := v.(Double); ok {
		return float64(f), nil
	}
	return 0, &TypeError{Expected: KindDouble, Actual: describe(v)}
}

// GetDecimal returns v as a *Decimal, or a *TypeError if v is not a decimal.
func GetDecimal(v Value) (*Decimal, error) {
	if d, ok := v.(*Decimal); ok {
		return d, nil
	}
	return nil, &TypeError{Expected: KindDecimal, Actual: describe(v)}
}

// GetObject returns v as a *Object, or a *TypeError if v is not an object.
func GetObject(v Value) (*Object, error) {
	if o, ok := v.(*Object); ok {
		return o, nil
	}
	return nil, &TypeError{Expected: KindObject, Actual: describe(v)}
}

// GetArray returns v as an Array, or a *TypeError if v is not an array.
func GetArray(v Value) (Array, error) {
	if a, ok := v.(Array); ok {
		return a, nil
	}
	return nil, &TypeError{Expected: KindArray, Actual: describe(v)}
}

// orNil adapts an erroring accessor to report an absent result for null or
// missing input.
func orNil[T any](v Value, f func(Value) (T, error)) (*T, error) {
	if absent(v) {
		return nil, nil
	}
	t, err := f(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func absent(v Value) bool {
	if v == nil {
		return true
	}
	_, isNull := v.(Null)
	return isNull
}

// GetStringOrNil is GetString, except that null or missing input yields an
// absent result rather than an error.
func GetStringOrNil(v Value) (*string, error) { return orNil(v, GetString) }

// GetBoolOrNil is GetBool with absent results for null or missing input.
func GetBoolOrNil(v Value) (*bool, error) { return orNil(v, GetBool) }

// GetIntOrNil is GetInt with absent results for null or missing input.
func GetIntOrNil(v Value) (*int64, error) { return orNil(v, GetInt) }

// GetDoubleOrNil is GetDouble with absent results for null or missing input.
func GetDoubleOrNil(v Value) (*float64, error) { return orNil(v, GetDouble) }

// GetDecimalOrNil is GetDecimal with absent results for null or missing input.
func GetDecimalOrNil(v Value) (*Decimal, error) {
	if absent(v) {
		return nil, nil
	}
	return GetDecimal(v)
}

// GetObjectOrNil is GetObject with absent results for null or missing input.
func GetObjectOrNil(v Value) (*Object, error) {
	if absent(v) {
		return nil, nil
	}
	return GetObject(v)
}

// GetArrayOrNil is GetArray with absent results for null or missing input.
func GetArrayOrNil(v Value) (Array, error) {
	if absent(v) {
		return nil, nil
	}
	return GetArray(v)
}

// ToString coerces v to text: strings are returned verbatim, numbers render
// in their locale-independent decimal form, and bools render as "true" or
// "false". All other variants report a *TypeError.
func ToString(v Value) (string, error) {
	switch t := v.(type) {
	case String:
		return string(t), nil
	case Int:
		return strconv.FormatInt(int64(t), 10), nil
	case Double:
		return strconv.FormatFloat(float64(t), 'g', -1, 64), nil
	case *Decimal:
		return t.String(), nil
	case Bool:
		return strconv.FormatBool(bool(t)), nil
	}
	return "", &TypeError{Expected: KindString, Actual: describe(v)}
}

// ToInt coerces v to an int64. Doubles and decimals truncate toward zero and
// report a *RangeError when the integer part does not fit; strings are parsed
// as numbers. Bools have no numeric conversion.
func ToInt(v Value) (int64, error) {
	switch t := v.(type) {
	case Int:
		return int64(t), nil
	case Double:
		return doubleToInt(float64(t))
	case *Decimal:
		z, ok := t.Int64()
		if !ok {
			return 0, &RangeError{Value: t.String(), Target: "int64"}
		}
		return z, nil
	case String:
		z, err := strconv.ParseInt(string(t), 10, 64)
		if err == nil {
			return z, nil
		} else if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, &RangeError{Value: string(t), Target: "int64"}
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return 0, &TypeError{Expected: KindInt, Actual: describe(v)}
		}
		return doubleToInt(f)
	}
	return 0, &TypeError{Expected: KindInt, Actual: describe(v)}
}

func doubleToInt(f float64) (int64, error) {
	if f != f || f >= 1<<63 || f < -(1<<63) {
		return 0, &RangeError{
			Value:  strconv.FormatFloat(f, 'g', -1, 64),
			Target: "int64",
		}
	}
	return int64(f), nil
}

// ToDouble coerces v to a float64. Integers and decimals round to the nearest
// double; strings are parsed as numbers. Bools have no numeric conversion.
func ToDouble(v Value) (float64, error) {
	switch t := v.(type) {
	case Double:
		return float64(t), nil
	case Int:
		return float64(t), nil
	case *Decimal:
		return t.Float64(), nil
	case String:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil && !isRangeErr(err) {
			return 0, &TypeError{Expected: KindDouble, Actual: describe(v)}
		}
		return f, nil
	}
	return 0, &TypeError{Expected: KindDouble, Actual: describe(v)}
}

// ToDecimal coerces v to a *Decimal. Non-finite doubles report a *RangeError.
// Bools have no numeric conversion.
func ToDecimal(v Value) (*Decimal, error) {
	switch t := v.(type) {
	case *Decimal:
		return t, nil
	case Int:
		return NewDecimalInt(int64(t)), nil
	case Double:
		f := float64(t)
		if f != f || f > 1.7976931348623157e308 || f < -1.7976931348623157e308 {
			return nil, &RangeError{
				Value:  strconv.FormatFloat(f, 'g', -1, 64),
				Target: "decimal",
			}
		}
		d, err := ParseDecimal(strconv.FormatFloat(f, 'g', -1, 64))
		if err != nil {
			return nil, &RangeError{Value: fmt.Sprint(f), Target: "decimal"}
		}
		return d, nil
	case String:
		d, err := ParseDecimal(string(t))
		if err != nil {
			return nil, &TypeError{Expected: KindDecimal, Actual: describe(v)}
		}
		return d, nil
	}
	return nil, &TypeError{Expected: KindDecimal, Actual: describe(v)}
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// ToStringOrNil is ToString with absent results for null or missing input.
func ToStringOrNil(v Value) (*string, error) { return orNil(v, ToString) }

// ToIntOrNil is ToInt with absent results for null or missing input.
func ToIntOrNil(v Value) (*int64, error) { return orNil(v, ToInt) }

// ToDoubleOrNil is ToDouble with absent results for null or missing input.
func ToDoubleOrNil(v Value) (*float64, error) { return orNil(v, ToDouble) }

// ToDecimalOrNil is ToDecimal with absent results for null or missing input.
func ToDecimalOrNil(v Value) (*Decimal, error) {
	if absent(v) {
		return nil, nil
	}
	return ToDecimal(v)
}

// AsString is the optional form of ToString.
func AsString(v Value) (string, bool) { s, err := ToString(v); return s, err == nil }

// AsInt is the optional form of ToInt.
func AsInt(v Value) (int64, bool) { z, err := ToInt(v); return z, err == nil }

// AsDouble is the optional form of ToDouble.
func AsDouble(v Value) (float64, bool) { f, err := ToDouble(v); return f, err == nil }

// AsDecimal is the optional form of ToDecimal.
func AsDecimal(v Value) (*Decimal, bool) { d, err := ToDecimal(v); return d, err == nil }

// AsBool reports v as a bool. Bools have no conversions from other variants.
func AsBool(v Value) (bool, bool) { b, ok := v.(Bool); return bool(b), ok }

// keyed applies an accessor to the member of o named key, attaching the key
// to the path of any resulting error.
func keyed[T any](o *Object, key string, want Kind, f func(Value) (T, error)) (T, error) {
	var zero T
	v, ok := o.Get(key)
	if !ok {
		return zero, &TypeError{Path: key, Expected: want, Actual: "missing"}
	}
	t, err := f(v)
	if err != nil {
		return zero, prefixKey(err, key)
	}
	return t, nil
}

// keyedOrNil is keyed, except that a missing member yields an absent result.
func keyedOrNil[T any](o *Object, key string, f func(Value) (T, error)) (T, error) {
	var zero T
	v, ok := o.Get(key)
	if !ok {
		return zero, nil
	}
	t, err := f(v)
	if err != nil {
		return zero, prefixKey(err, key)
	}
	return t, nil
}

// GetString returns the member named key as a string.
func (o *Object) GetString(key string) (string, error) {
	return keyed(o, key, KindString, GetString)
}

// GetBool returns the member named key as a bool.
func (o *Object) GetBool(key string) (bool, error) {
	return keyed(o, key, KindBool, GetBool)
}

// GetInt returns the member named key as an int64.
func (o *Object) GetInt(key string) (int64, error) {
	return keyed(o, key, KindInt, GetInt)
}

// GetDouble returns the member named key as a float64.
func (o *Object) GetDouble(key string) (float64, error) {
	return keyed(o, key, KindDouble, GetDouble)
}

// GetDecimal returns the member named key as a *Decimal.
func (o *Object) GetDecimal(key string) (*Decimal, error) {
	return keyed(o, key, KindDecimal, GetDecimal)
}

// GetObject returns the member named key as an object.
func (o *Object) GetObject(key string) (*Object, error) {
	return keyed(o, key, KindObject, GetObject)
}

// GetArray returns the member named key as an array.
func (o *Object) GetArray(key string) (Array, error) {
	return keyed(o, key, KindArray, GetArray)
}

// GetStringOrNil returns the member named key as a string, or an absent
// result if the member is missing or null.
func (o *Object) GetStringOrNil(key string) (*string, error) {
	return keyedOrNil(o, key, GetStringOrNil)
}

// GetBoolOrNil returns the member named key as a bool, or an absent result if
// the member is missing or null.
func (o *Object) GetBoolOrNil(key string) (*bool, error) {
	return keyedOrNil(o, key, GetBoolOrNil)
}

// GetIntOrNil returns the member named key as an int64, or an absent result
// if the member is missing or null.
func (o *Object) GetIntOrNil(key string) (*int64, error) {
	return keyedOrNil(o, key, GetIntOrNil)
}

// GetDoubleOrNil returns the member named key as a float64, or an absent
// result if the member is missing or null.
func (o *Object) GetDoubleOrNil(key string) (*float64, error) {
	return keyedOrNil(o, key, GetDoubleOrNil)
}

// GetDecimalOrNil returns the member named key as a *Decimal, or an absent
// result if the member is missing or null.
func (o *Object) GetDecimalOrNil(key string) (*Decimal, error) {
	return keyedOrNil(o, key, GetDecimalOrNil)
}

// GetObjectOrNil returns the member named key as an object, or an absent
// result if the member is missing or null.
func (o *Object) GetObjectOrNil(key string) (*Object, error) {
	return keyedOrNil(o, key, GetObjectOrNil)
}

// GetArrayOrNil returns the member named key as an array, or an absent result
// if the member is missing or null.
func (o *Object) GetArrayOrNil(key string) (Array, error) {
	return keyedOrNil(o, key, GetArrayOrNil)
}

// ToString coerces the member named key to text.
func (o *Object) ToString(key string) (string, error) {
	return keyed(o, key, KindString, ToString)
}

// ToInt coerces the member named key to an int64.
func (o *Object) ToInt(key string) (int64, error) {
	return keyed(o, key, KindInt, ToInt)
}

// ToDouble coerces the member named key to a float64.
func (o *Object) ToDouble(key string) (float64, error) {
	return keyed(o, key, KindDouble, ToDouble)
}

// ToDecimal coerces the member named key to a *Decimal.
func (o *Object) ToDecimal(key string) (*Decimal, error) {
	return keyed(o, key, KindDecimal, ToDecimal)
}

// ToStringOrNil coerces the member named key to text, or an absent result if
// the member is missing or null.
func (o *Object) ToStringOrNil(key string) (*string, error) {
	return keyedOrNil(o, key, ToStringOrNil)
}

// ToIntOrNil coerces the member named key to an int64, or an absent result if
// the member is missing or null.
func (o *Object) ToIntOrNil(key string) (*int64, error) {
	return keyedOrNil(o, key, ToIntOrNil)
}

// ToDoubleOrNil coerces the member named key to a float64, or an absent
// result if the member is missing or null.
func (o *Object) ToDoubleOrNil(key string) (*float64, error) {
	return keyedOrNil(o, key, ToDoubleOrNil)
}

// ToDecimalOrNil coerces the member named key to a *Decimal, or an absent
// result if the member is missing or null.
func (o *Object) ToDecimalOrNil(key string) (*Decimal, error) {
	return keyedOrNil(o, key, ToDecimalOrNil)
}

// WithObject invokes f with the member named key, which must be an object.
// The key is prefixed onto the path of any accessor error propagating out of
// f, composing a dotted/bracketed location of the failing value.
func (o *Object) WithObject(key string, f func(*Object) error) error {
	v, ok := o.Get(key)
	if !ok {
		return &TypeError{Path: key, Expected: KindObject, Actual: "missing"}
	}
	obj, err := GetObject(v)
	if err != nil {
		return prefixKey(err, key)
	}
	return prefixKey(f(obj), key)
}

// WithArray invokes f with the member named key, which must be an array.  The
// key is prefixed onto the path of any accessor error propagating out of f.
func (o *Object) WithArray(key string, f func(Array) error) error {
	v, ok := o.Get(key)
	if !ok {
		return &TypeError{Path: key, Expected: KindArray, Actual: "missing"}
	}
	arr, err := GetArray(v)
	if err != nil {
		return prefixKey(err, key)
	}
	return prefixKey(f(arr), key)
}

// indexed applies an accessor to the element of a at offset i, attaching the
// bracketed offset to the path of any resulting error.
func indexed[T any](a Array, i int, want Kind, f func(Value) (T, error)) (T, error) {
	var zero T
	v, ok := a.At(i)
	if !ok {
		return zero, &TypeError{Path: "[" + strconv.Itoa(i) + "]", Expected: want, Actual: "missing"}
	}
	t, err := f(v)
	if err != nil {
		return zero, prefixIndex(err, i)
	}
	return t, nil
}

// indexedOrNil is indexed, except an out-of-bounds offset yields an absent
// result.
func indexedOrNil[T any](a Array, i int, f func(Value) (T, error)) (T, error) {
	var zero T
	v, ok := a.At(i)
	if !ok {
		return zero, nil
	}
	t, err := f(v)
	if err != nil {
		return zero, prefixIndex(err, i)
	}
	return t, nil
}

// GetStringAt returns the element at offset i as a string.
func (a Array) GetStringAt(i int) (string, error) { return indexed(a, i, KindString, GetString) }

// GetBoolAt returns the element at offset i as a bool.
func (a Array) GetBoolAt(i int) (bool, error) { return indexed(a, i, KindBool, GetBool) }

// GetIntAt returns the element at offset i as an int64.
func (a Array) GetIntAt(i int) (int64, error) { return indexed(a, i, KindInt, GetInt) }

// GetDoubleAt returns the element at offset i as a float64.
func (a Array) GetDoubleAt(i int) (float64, error) { return indexed(a, i, KindDouble, GetDouble) }

// GetDecimalAt returns the element at offset i as a *Decimal.
func (a Array) GetDecimalAt(i int) (*Decimal, error) { return indexed(a, i, KindDecimal, GetDecimal) }

// GetObjectAt returns the element at offset i as an object.
func (a Array) GetObjectAt(i int) (*Object, error) { return indexed(a, i, KindObject, GetObject) }

// GetArrayAt returns the element at offset i as an array.
func (a Array) GetArrayAt(i int) (Array, error) { return indexed(a, i, KindArray, GetArray) }

// GetStringOrNilAt returns the element at offset i as a string, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) GetStringOrNilAt(i int) (*string, error) {
	return indexedOrNil(a, i, GetStringOrNil)
}

// GetBoolOrNilAt returns the element at offset i as a bool, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) GetBoolOrNilAt(i int) (*bool, error) {
	return indexedOrNil(a, i, GetBoolOrNil)
}

// GetIntOrNilAt returns the element at offset i as an int64, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) GetIntOrNilAt(i int) (*int64, error) {
	return indexedOrNil(a, i, GetIntOrNil)
}

// GetDoubleOrNilAt returns the element at offset i as a float64, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) GetDoubleOrNilAt(i int) (*float64, error) {
	return indexedOrNil(a, i, GetDoubleOrNil)
}

// GetDecimalOrNilAt returns the element at offset i as a *Decimal, or an
// absent result if the offset is out of bounds or the element is null.
func (a Array) GetDecimalOrNilAt(i int) (*Decimal, error) {
	return indexedOrNil(a, i, GetDecimalOrNil)
}

// GetObjectOrNilAt returns the element at offset i as an object, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) GetObjectOrNilAt(i int) (*Object, error) {
	return indexedOrNil(a, i, GetObjectOrNil)
}

// GetArrayOrNilAt returns the element at offset i as an array, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) GetArrayOrNilAt(i int) (Array, error) {
	return indexedOrNil(a, i, GetArrayOrNil)
}

// ToStringAt coerces the element at offset i to text.
func (a Array) ToStringAt(i int) (string, error) { return indexed(a, i, KindString, ToString) }

// ToIntAt coerces the element at offset i to an int64.
func (a Array) ToIntAt(i int) (int64, error) { return indexed(a, i, KindInt, ToInt) }

// ToDoubleAt coerces the element at offset i to a float64.
func (a Array) ToDoubleAt(i int) (float64, error) { return indexed(a, i, KindDouble, ToDouble) }

// ToDecimalAt coerces the element at offset i to a *Decimal.
func (a Array) ToDecimalAt(i int) (*Decimal, error) { return indexed(a, i, KindDecimal, ToDecimal) }

// ToStringOrNilAt coerces the element at offset i to text, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) ToStringOrNilAt(i int) (*string, error) {
	return indexedOrNil(a, i, ToStringOrNil)
}

// ToIntOrNilAt coerces the element at offset i to an int64, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) ToIntOrNilAt(i int) (*int64, error) {
	return indexedOrNil(a, i, ToIntOrNil)
}

// ToDoubleOrNilAt coerces the element at offset i to a float64, or an absent
// result if the offset is out of bounds or the element is null.
func (a Array) ToDoubleOrNilAt(i int) (*float64, error) {
	return indexedOrNil(a, i, ToDoubleOrNil)
}

// ToDecimalOrNilAt coerces the element at offset i to a *Decimal, or an
// absent result if the offset is out of bounds or the element is null.
func (a Array) ToDecimalOrNilAt(i int) (*Decimal, error) {
	return indexedOrNil(a, i, ToDecimalOrNil)
}

// WithObjectAt invokes f with the element at offset i, which must be an
// object. The bracketed offset is prefixed onto the path of any accessor
// error propagating out of f.
func (a Array) WithObjectAt(i int, f func(*Object) error) error {
	v, ok := a.At(i)
	if !ok {
		return &TypeError{Path: "[" + strconv.Itoa(i) + "]", Expected: KindObject, Actual: "missing"}
	}
	obj, err := GetObject(v)
	if err != nil {
		return prefixIndex(err, i)
	}
	return prefixIndex(f(obj), i)
}

// WithArrayAt invokes f with the element at offset i, which must be an array.
// The bracketed offset is prefixed onto the path of any accessor error
// propagating out of f.
func (a Array) WithArrayAt(i int, f func(Array) error) error {
	v, ok := a.At(i)
	if !ok {
		return &TypeError{Path: "[" + strconv.Itoa(i) + "]", Expected: KindArray, Actual: "missing"}
	}
	arr, err := GetArray(v)
	if err != nil {
		return prefixIndex(err, i)
	}
	return prefixIndex(f(arr), i)
}
