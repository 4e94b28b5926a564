package record

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tuannm99/novatuple/internal/alias/bx"
)

// EncodeRecord serializes r into exactly r.Schema().ByteSize() bytes.
// Format: each column in schema order at a fixed offset;
// INT32/INT64/FLOAT64 little-endian, BOOL one byte, TEXT(n) zero-padded to n.
func EncodeRecord(r *Record) ([]byte, error) {
	out := make([]byte, r.schema.ByteSize())
	if err := EncodeRecordInto(out, r); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeRecordInto writes r into dst, which must be exactly ByteSize() long.
func EncodeRecordInto(dst []byte, r *Record) error {
	s := r.schema
	if len(dst) != s.ByteSize() {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrBadBuffer, len(dst), s.ByteSize())
	}

	off := 0
	for i, col := range s.cols {
		f := r.fields[i]
		if !f.Present() {
			return fmt.Errorf("%w: field %d", ErrIncompleteRecord, i)
		}
		if !f.Fits(col.typ) {
			return fmt.Errorf("%w: %s into column %d %s", ErrTypeMismatch, f.kind, i, col.typ)
		}

		b := dst[off : off+col.typ.Len()]
		switch col.typ.kind {
		case KindInt32:
			bx.PutU32(b, uint32(int32(f.i)))
		case KindInt64:
			bx.PutU64(b, uint64(f.i))
		case KindBool:
			b[0] = byte(f.i)
		case KindFloat64:
			bx.PutU64(b, math.Float64bits(f.f))
		case KindText:
			n := copy(b, f.s)
			clear(b[n:])
		default:
			return fmt.Errorf("%w: %s", ErrBadType, col.typ)
		}
		off += col.typ.Len()
	}
	return nil
}

// DecodeRecord is the inverse of EncodeRecord. Text values lose trailing
// zero bytes.
func DecodeRecord(s *Schema, buf []byte) (*Record, error) {
	if len(buf) != s.ByteSize() {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrBadBuffer, len(buf), s.ByteSize())
	}

	r := New(s)
	off := 0
	for i, col := range s.cols {
		b := buf[off : off+col.typ.Len()]
		switch col.typ.kind {
		case KindInt32:
			r.fields[i] = Int32(int32(bx.U32(b)))
		case KindInt64:
			r.fields[i] = Int64(int64(bx.U64(b)))
		case KindBool:
			r.fields[i] = Bool(b[0] != 0)
		case KindFloat64:
			r.fields[i] = Float64(math.Float64frombits(bx.U64(b)))
		case KindText:
			r.fields[i] = Text(string(bytes.TrimRight(b, "\x00")))
		default:
			return nil, fmt.Errorf("%w: %s", ErrBadType, col.typ)
		}
		off += col.typ.Len()
	}
	return r, nil
}
