package record

import (
	"fmt"
	"iter"
	"strings"
)

// Schema is an immutable, non-empty, ordered list of columns. It is shared
// by pointer between every record built on it and is safe for concurrent reads.
type Schema struct {
	cols     []Column
	byteSize int
}

// NewSchema builds a schema from column types and an optional parallel list
// of names. A nil names slice makes every column anonymous.
func NewSchema(types []Type, names []string) (*Schema, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no column types", ErrInvalidSchema)
	}
	if names != nil && len(names) != len(types) {
		return nil, fmt.Errorf("%w: %d types but %d names", ErrInvalidSchema, len(types), len(names))
	}

	cols := make([]Column, len(types))
	for i, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: column %d has no type", ErrInvalidSchema, i)
		}
		if names == nil {
			cols[i] = AnonColumn(t)
		} else {
			cols[i] = NewColumn(t, names[i])
		}
	}
	return newSchema(cols), nil
}

// NewSchemaFromColumns builds a schema from already constructed columns.
// Only non-emptiness is checked.
func NewSchemaFromColumns(cols []Column) (*Schema, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidSchema)
	}
	own := make([]Column, len(cols))
	copy(own, cols)
	return newSchema(own), nil
}

// MustSchema is NewSchema for static schemas; it panics on error.
func MustSchema(types []Type, names []string) *Schema {
	s, err := NewSchema(types, names)
	if err != nil {
		panic(err)
	}
	return s
}

func newSchema(cols []Column) *Schema {
	size := 0
	for _, c := range cols {
		size += c.typ.Len()
	}
	return &Schema{cols: cols, byteSize: size}
}

// Merge returns a new schema with a's columns followed by b's.
func Merge(a, b *Schema) *Schema {
	cols := make([]Column, 0, len(a.cols)+len(b.cols))
	cols = append(cols, a.cols...)
	cols = append(cols, b.cols...)
	return &Schema{cols: cols, byteSize: a.byteSize + b.byteSize}
}

func (s *Schema) Len() int { return len(s.cols) }

// ByteSize is the fixed on-disk size of a record with this schema.
func (s *Schema) ByteSize() int { return s.byteSize }

func (s *Schema) checkIndex(i int) error {
	if i < 0 || i >= len(s.cols) {
		return fmt.Errorf("%w: column %d (len %d)", ErrIndexOutOfRange, i, len(s.cols))
	}
	return nil
}

func (s *Schema) ColumnAt(i int) (Column, error) {
	if err := s.checkIndex(i); err != nil {
		return Column{}, err
	}
	return s.cols[i], nil
}

// NameAt returns the name of column i and whether it has one.
func (s *Schema) NameAt(i int) (string, bool, error) {
	if err := s.checkIndex(i); err != nil {
		return "", false, err
	}
	name, ok := s.cols[i].Name()
	return name, ok, nil
}

func (s *Schema) TypeAt(i int) (Type, error) {
	if err := s.checkIndex(i); err != nil {
		return Type{}, err
	}
	return s.cols[i].typ, nil
}

// IndexOf returns the index of the first column named name.
// Anonymous columns never match.
func (s *Schema) IndexOf(name string) (int, error) {
	for i, c := range s.cols {
		if c.named && c.name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNameNotFound, name)
}

// Columns returns a copy of the column list.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)
	return out
}

// All yields every column with its index, in schema order.
func (s *Schema) All() iter.Seq2[int, Column] {
	return func(yield func(int, Column) bool) {
		for i, c := range s.cols {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Equal compares byte size, column count and every column pairwise.
func (s *Schema) Equal(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if s.byteSize != o.byteSize || len(s.cols) != len(o.cols) {
		return false
	}
	for i := range s.cols {
		if !s.cols[i].Equal(o.cols[i]) {
			return false
		}
	}
	return true
}

// String renders "INT32(id), TEXT(32)(name)". Diagnostics only.
func (s *Schema) String() string {
	parts := make([]string, len(s.cols))
	for i, c := range s.cols {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
