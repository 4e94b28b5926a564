package record

import (
	"fmt"
	"iter"
	"strings"
)

// Record is a mutable, fixed-arity row bound to one Schema.
// A Record is not safe for concurrent mutation.
type Record struct {
	schema *Schema
	fields []Field
	loc    TID
	placed bool
}

// New returns a record with every slot absent.
func New(s *Schema) *Record {
	return &Record{schema: s, fields: make([]Field, s.Len())}
}

// Schema returns the bound schema (shared, not copied).
func (r *Record) Schema() *Schema { return r.schema }

func (r *Record) Len() int { return len(r.fields) }

// Location returns the on-disk position, if the record has been placed.
func (r *Record) Location() (TID, bool) { return r.loc, r.placed }

func (r *Record) SetLocation(id TID) {
	r.loc = id
	r.placed = true
}

func (r *Record) ClearLocation() {
	r.loc = TID{}
	r.placed = false
}

func (r *Record) checkIndex(i int) error {
	if i < 0 || i >= len(r.fields) {
		return fmt.Errorf("%w: field %d (len %d)", ErrIndexOutOfRange, i, len(r.fields))
	}
	return nil
}

// SetField stores f at slot i. The field's kind is not checked against the
// schema; callers building records incrementally rely on that.
func (r *Record) SetField(i int, f Field) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	r.fields[i] = f
	return nil
}

// SetFieldChecked is SetField that also requires f to fit column i's type.
func (r *Record) SetFieldChecked(i int, f Field) error {
	t, err := r.schema.TypeAt(i)
	if err != nil {
		return err
	}
	if !f.Fits(t) {
		return fmt.Errorf("%w: %s into column %d %s", ErrTypeMismatch, f.Kind(), i, t)
	}
	r.fields[i] = f
	return nil
}

// GetField returns slot i; the zero Field if it was never set.
func (r *Record) GetField(i int) (Field, error) {
	if err := r.checkIndex(i); err != nil {
		return Field{}, err
	}
	return r.fields[i], nil
}

// Fields yields every slot in schema order.
func (r *Record) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range r.fields {
			if !yield(f) {
				return
			}
		}
	}
}

// Complete reports whether every slot holds a value.
func (r *Record) Complete() bool {
	for _, f := range r.fields {
		if !f.Present() {
			return false
		}
	}
	return true
}

// ResetSchema rebinds the record to s and drops every value.
// The location is kept.
func (r *Record) ResetSchema(s *Schema) {
	r.schema = s
	r.fields = make([]Field, s.Len())
}

// String joins the display text of every field with tabs.
// Absent fields render as the empty string.
func (r *Record) String() string {
	var sb strings.Builder
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}
