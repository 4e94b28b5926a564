package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value family of a column or field. The zero Kind is reserved
// for the absent Field.
type Kind uint8

const (
	KindInt32 Kind = iota + 1
	KindInt64
	KindBool
	KindFloat64
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "INT32"
	case KindInt64:
		return "INT64"
	case KindBool:
		return "BOOL"
	case KindFloat64:
		return "FLOAT64"
	case KindText:
		return "TEXT"
	default:
		return "NONE"
	}
}

// Type is a column type: a kind plus its fixed on-disk length in bytes.
// Types are plain comparable values.
type Type struct {
	kind Kind
	len  int
}

var (
	Int32Type   = Type{kind: KindInt32, len: 4}
	Int64Type   = Type{kind: KindInt64, len: 8}
	BoolType    = Type{kind: KindBool, len: 1}
	Float64Type = Type{kind: KindFloat64, len: 8}
)

// NewTextType is fixed-length text of n bytes. n must be positive.
func NewTextType(n int) (Type, error) {
	if n < 1 {
		return Type{}, fmt.Errorf("%w: text length must be positive, got %d", ErrBadType, n)
	}
	return Type{kind: KindText, len: n}, nil
}

// MustTextType is NewTextType for static schemas; it panics on error.
func MustTextType(n int) Type {
	t, err := NewTextType(n)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Type) Kind() Kind { return t.kind }

// Len is the number of bytes a value of this type occupies on disk.
func (t Type) Len() int { return t.len }

func (t Type) Valid() bool { return t.kind != 0 && t.len > 0 }

func (t Type) String() string {
	if t.kind == KindText {
		return fmt.Sprintf("TEXT(%d)", t.len)
	}
	return t.kind.String()
}

// ParseType accepts the names used in config files:
// int32, int64, bool, float64 and text(N). Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "int32", "int":
		return Int32Type, nil
	case "int64", "bigint":
		return Int64Type, nil
	case "bool":
		return BoolType, nil
	case "float64", "double":
		return Float64Type, nil
	}

	if strings.HasPrefix(name, "text(") && strings.HasSuffix(name, ")") {
		n, err := strconv.Atoi(name[len("text(") : len(name)-1])
		if err != nil {
			return Type{}, fmt.Errorf("%w: %q", ErrBadType, s)
		}
		return NewTextType(n)
	}
	return Type{}, fmt.Errorf("%w: %q", ErrBadType, s)
}
