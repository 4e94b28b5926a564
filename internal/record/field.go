package record

import (
	"fmt"
	"strconv"
)

// Field is a single value stored in one record slot. It is a closed tagged
// union over the kinds in Kind; the zero Field is absent (never set).
type Field struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func Int32(v int32) Field     { return Field{kind: KindInt32, i: int64(v)} }
func Int64(v int64) Field     { return Field{kind: KindInt64, i: v} }
func Float64(v float64) Field { return Field{kind: KindFloat64, f: v} }
func Text(v string) Field     { return Field{kind: KindText, s: v} }

func Bool(v bool) Field {
	f := Field{kind: KindBool}
	if v {
		f.i = 1
	}
	return f
}

func (f Field) Kind() Kind { return f.kind }

// Present reports whether the field holds a value.
func (f Field) Present() bool { return f.kind != 0 }

func (f Field) Int32() (int32, bool) { return int32(f.i), f.kind == KindInt32 }
func (f Field) Int64() (int64, bool) { return f.i, f.kind == KindInt64 }
func (f Field) Bool() (bool, bool)   { return f.i != 0, f.kind == KindBool }

func (f Field) Float64() (float64, bool) { return f.f, f.kind == KindFloat64 }
func (f Field) Text() (string, bool)     { return f.s, f.kind == KindText }

// Equal reports whether both fields have the same kind and value.
// Two absent fields are equal.
func (f Field) Equal(o Field) bool {
	if f.kind != o.kind {
		return false
	}
	switch f.kind {
	case KindFloat64:
		return f.f == o.f
	case KindText:
		return f.s == o.s
	default:
		return f.i == o.i
	}
}

// Fits reports whether f can be stored in a column of type t.
func (f Field) Fits(t Type) bool {
	if f.kind != t.kind {
		return false
	}
	if f.kind == KindText {
		return len(f.s) <= t.len
	}
	return true
}

// String is the display text of the value; an absent field renders empty.
func (f Field) String() string {
	switch f.kind {
	case KindInt32, KindInt64:
		return strconv.FormatInt(f.i, 10)
	case KindBool:
		return strconv.FormatBool(f.i != 0)
	case KindFloat64:
		return strconv.FormatFloat(f.f, 'g', -1, 64)
	case KindText:
		return f.s
	default:
		return ""
	}
}

// ParseField parses display text into a field of type t.
func ParseField(t Type, s string) (Field, error) {
	switch t.kind {
	case KindInt32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Field{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Int32(int32(v)), nil
	case KindInt64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Field{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Int64(v), nil
	case KindBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Field{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Bool(v), nil
	case KindFloat64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Field{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Float64(v), nil
	case KindText:
		if len(s) > t.len {
			return Field{}, fmt.Errorf("%w: %d bytes into %s", ErrTypeMismatch, len(s), t)
		}
		return Text(s), nil
	default:
		return Field{}, fmt.Errorf("%w: %s", ErrBadType, t)
	}
}
