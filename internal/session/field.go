package session

import (
	"strconv"
	"strings"
)

// fieldState tags the three edit states a numeric input can be in.
type fieldState int

const (
	fieldUnset   fieldState = iota // nothing entered
	fieldPending                   // raw text that does not parse as a number
	fieldValue                     // a concrete number
)

// Field is a numeric set value as the user edits it. Inputs hold raw text
// that may be empty, partial, or a number; the tri-state keeps that explicit
// instead of round-tripping through float parsing on every keystroke. A
// Field becomes a concrete number only when the set is completed or saved.
type Field struct {
	state fieldState
	raw   string
	val   float64
}

// FieldOf returns a Field holding a concrete value.
func FieldOf(v float64) Field {
	return Field{state: fieldValue, val: v}
}

// FieldFromString parses user input: empty means unset, a parseable number
// becomes a value, anything else is kept verbatim as pending text.
func FieldFromString(s string) Field {
	s = strings.TrimSpace(s)
	if s == "" {
		return Field{}
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return Field{state: fieldValue, val: v}
	}
	return Field{state: fieldPending, raw: s}
}

// IsSet reports whether the field holds a concrete number.
func (f Field) IsSet() bool { return f.state == fieldValue }

// IsEmpty reports whether nothing usable has been entered (unset or pending
// text that never parsed).
func (f Field) IsEmpty() bool { return f.state != fieldValue }

// Value returns the concrete number, or 0 when none is set.
func (f Field) Value() float64 {
	if f.state == fieldValue {
		return f.val
	}
	return 0
}

// Int returns the value rounded to the nearest integer.
func (f Field) Int() int {
	if f.state != fieldValue {
		return 0
	}
	if f.val < 0 {
		return int(f.val - 0.5)
	}
	return int(f.val + 0.5)
}

// Ptr returns the value for wire payloads, nil when unset.
func (f Field) Ptr() *float64 {
	if f.state != fieldValue {
		return nil
	}
	v := f.val
	return &v
}

// IntPtr is Ptr for integer-valued wire fields.
func (f Field) IntPtr() *int {
	if f.state != fieldValue {
		return nil
	}
	v := f.Int()
	return &v
}

// String renders the field for display and template capture: pending text
// verbatim, integral values without a decimal point, everything else with
// trailing zeros trimmed.
func (f Field) String() string {
	switch f.state {
	case fieldUnset:
		return ""
	case fieldPending:
		return f.raw
	default:
		return strconv.FormatFloat(f.val, 'f', -1, 64)
	}
}
