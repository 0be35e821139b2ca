// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// A Decimal is an exact base-10 numeric value of arbitrary precision,
// represented as a sign, a coefficient digit string, and a base-10 exponent:
// the value is ±coefficient × 10**exponent. The representation preserves the
// precision of the literal it was parsed from, so "1.500" keeps its trailing
// zeroes until Normalize is called. A Decimal is immutable.
type Decimal struct {
	neg  bool
	coef string // decimal digits, no sign or point; "0" exactly for zero
	exp  int
}

// ParseDecimal parses a JSON number literal into a Decimal, preserving the
// exact precision of the text.
func ParseDecimal(s string) (*Decimal, error) {
	rest := s
	d := new(Decimal)
	if strings.HasPrefix(rest, "-") {
		d.neg = true
		rest = rest[1:]
	}
	mant := rest
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		mant = rest[:i]
		exp, err := strconv.Atoi(strings.TrimPrefix(rest[i+1:], "+"))
		if err != nil {
			return nil, fmt.Errorf("invalid decimal exponent %q", s)
		}
		d.exp = exp
	}
	ip, fp, hasFrac := strings.Cut(mant, ".")
	if ip == "" || !isDigits(ip) || (hasFrac && (fp == "" || !isDigits(fp))) {
		return nil, fmt.Errorf("invalid decimal literal %q", s)
	}
	d.exp -= len(fp)
	d.coef = strings.TrimLeft(ip+fp, "0")
	if d.coef == "" {
		d.coef = "0"
	}
	return d, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NewDecimalInt constructs the Decimal equal to z.
func NewDecimalInt(z int64) *Decimal {
	d, err := ParseDecimal(strconv.FormatInt(z, 10))
	if err != nil {
		panic(err)
	}
	return d
}

// Kind satisfies the Value interface.
func (*Decimal) Kind() Kind { return KindDecimal }

// IsZero reports whether d is numerically zero.
func (d *Decimal) IsZero() bool { return d.coef == "0" }

// Sign reports -1, 0, or +1 according to the sign of d.
func (d *Decimal) Sign() int {
	if d.IsZero() {
		return 0
	} else if d.neg {
		return -1
	}
	return 1
}

// Normalize returns a Decimal numerically equal to d with trailing zero
// digits removed from the coefficient. Zero normalizes to unsigned "0".
func (d *Decimal) Normalize() *Decimal {
	if d.IsZero() {
		return &Decimal{coef: "0"}
	}
	coef, exp := d.coef, d.exp
	for strings.HasSuffix(coef, "0") {
		coef = coef[:len(coef)-1]
		exp++
	}
	return &Decimal{neg: d.neg, coef: coef, exp: exp}
}

// Equal reports whether d and e are numerically equal, regardless of how
// their precision is distributed between coefficient and exponent.
func (d *Decimal) Equal(e *Decimal) bool {
	dn, en := d.Normalize(), e.Normalize()
	return dn.neg == en.neg && dn.coef == en.coef && (dn.exp == en.exp || dn.IsZero())
}

// String renders the exact stored digits of d in decimal notation, falling
// back to exponent notation when the value is too large or too small to
// write out plainly.
func (d *Decimal) String() string {
	var sb strings.Builder
	if d.neg {
		sb.WriteByte('-')
	}
	n := len(d.coef) + d.exp // digits before the decimal point
	switch {
	case d.IsZero() && d.exp >= 0:
		sb.WriteByte('0')
	case d.exp >= 0 && n <= 21:
		// An integer with trailing zeroes.
		sb.WriteString(d.coef)
		sb.WriteString(strings.Repeat("0", d.exp))
	case d.exp < 0 && n > 0:
		// The point falls inside the digits.
		sb.WriteString(d.coef[:n])
		sb.WriteByte('.')
		sb.WriteString(d.coef[n:])
	case d.exp < 0 && n > -6:
		// Leading zeroes after the point.
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -n))
		sb.WriteString(d.coef)
	default:
		// Exponent notation: one leading digit, the rest after the point.
		sb.WriteString(d.coef[:1])
		if len(d.coef) > 1 {
			sb.WriteByte('.')
			sb.WriteString(d.coef[1:])
		}
		fmt.Fprintf(&sb, "e%+d", d.exp+len(d.coef)-1)
	}
	return sb.String()
}

// Int64 reports the integer part of d, truncated toward zero. It reports
// false if the result does not fit in the signed 64-bit range.
func (d *Decimal) Int64() (int64, bool) {
	z := new(big.Int)
	if _, ok := z.SetString(d.coef, 10); !ok {
		return 0, false
	}
	if d.exp >= 0 {
		// Bound the magnitude before multiplying out the exponent.
		if d.exp+len(d.coef) > 20 && !d.IsZero() {
			return 0, false
		}
		z.Mul(z, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.exp)), nil))
	} else if -d.exp >= len(d.coef) {
		return 0, true // all digits fractional; truncates to zero
	} else {
		z.SetString(d.coef[:len(d.coef)+d.exp], 10)
	}
	if d.neg {
		z.Neg(z)
	}
	if !z.IsInt64() {
		return 0, false
	}
	return z.Int64(), true
}

// Float64 reports the nearest double-precision approximation of d. Values
// beyond the double range round to infinity, values below it to zero.
func (d *Decimal) Float64() float64 {
	// On range overflow ParseFloat reports the clamped value alongside the
	// error, which is exactly the approximation wanted here.
	f, _ := strconv.ParseFloat(d.text(), 64)
	return f
}

// text renders d in a plain scientific form accepted by strconv.
func (d *Decimal) text() string {
	if d.neg {
		return "-" + d.coef + "e" + strconv.Itoa(d.exp)
	}
	return d.coef + "e" + strconv.Itoa(d.exp)
}
