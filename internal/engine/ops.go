package engine

import (
	"fmt"

	"github.com/tuannm99/novatuple/internal/heap"
	"github.com/tuannm99/novatuple/internal/record"
)

// ProjectSchema picks the named columns of s, in the given order.
// It returns the output schema and the source index of every output column.
func ProjectSchema(s *record.Schema, names []string) (*record.Schema, []int, error) {
	cols := make([]record.Column, len(names))
	idx := make([]int, len(names))
	for i, n := range names {
		j, err := s.IndexOf(n)
		if err != nil {
			return nil, nil, err
		}
		col, err := s.ColumnAt(j)
		if err != nil {
			return nil, nil, err
		}
		cols[i], idx[i] = col, j
	}
	out, err := record.NewSchemaFromColumns(cols)
	if err != nil {
		return nil, nil, err
	}
	return out, idx, nil
}

// Project reshapes r in place to out, keeping the fields at idx.
// r keeps its identity and location.
func Project(r *record.Record, out *record.Schema, idx []int) error {
	if len(idx) != out.Len() {
		return fmt.Errorf("%w: %d indexes for %d columns", record.ErrInvalidSchema, len(idx), out.Len())
	}
	kept := make([]record.Field, len(idx))
	for i, j := range idx {
		f, err := r.GetField(j)
		if err != nil {
			return err
		}
		kept[i] = f
	}

	r.ResetSchema(out)
	for i, f := range kept {
		if err := r.SetField(i, f); err != nil {
			return err
		}
	}
	return nil
}

// Concat returns a record on merged holding l's fields followed by r's.
// merged is normally record.Merge(l.Schema(), r.Schema()).
func Concat(l, r *record.Record, merged *record.Schema) (*record.Record, error) {
	if merged.Len() != l.Len()+r.Len() {
		return nil, fmt.Errorf("%w: merged has %d columns, inputs %d+%d",
			record.ErrInvalidSchema, merged.Len(), l.Len(), r.Len())
	}
	out := record.New(merged)
	i := 0
	for f := range l.Fields() {
		if err := out.SetField(i, f); err != nil {
			return nil, err
		}
		i++
	}
	for f := range r.Fields() {
		if err := out.SetField(i, f); err != nil {
			return nil, err
		}
		i++
	}
	return out, nil
}

// EqualOn is a join predicate: left field li equals right field ri.
func EqualOn(li, ri int) func(l, r *record.Record) bool {
	return func(l, r *record.Record) bool {
		a, err := l.GetField(li)
		if err != nil {
			return false
		}
		b, err := r.GetField(ri)
		if err != nil {
			return false
		}
		return a.Present() && a.Equal(b)
	}
}

// NestedLoopJoin emits Concat(l, r) for every pair that satisfies pred.
// Output records share one merged schema.
func NestedLoopJoin(left, right *heap.File, pred func(l, r *record.Record) bool, fn func(*record.Record) error) error {
	merged := record.Merge(left.Schema, right.Schema)
	return left.Scan(func(l *record.Record) error {
		return right.Scan(func(r *record.Record) error {
			if !pred(l, r) {
				return nil
			}
			out, err := Concat(l, r, merged)
			if err != nil {
				return err
			}
			return fn(out)
		})
	})
}
