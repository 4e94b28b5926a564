package storage

import (
	"fmt"

	"github.com/tuannm99/novatuple/internal/alias/bx"
	"github.com/tuannm99/novatuple/internal/record"
)

// Header offsets
const (
	offPageID   = 0
	offNumSlots = 4
)

// Page holds fixed-size records of one schema.
//
// +------------------+ 0
// | pageID, numSlots |
// | occupancy bitmap |  ceil(numSlots/8) bytes, bit=1 => used
// +------------------+
// | slot 0           |  schema.ByteSize() bytes each
// | slot 1           |
// | ...              |
// +------------------+
// | unused tail      |
// +------------------+ len(Buf)
type Page struct {
	Buf    []byte
	Schema *record.Schema
}

// SlotsPerPage is how many records of recSize bytes fit in a page of pageSize.
func SlotsPerPage(pageSize, recSize int) int {
	if recSize <= 0 || pageSize <= HeaderSize {
		return 0
	}
	avail := pageSize - HeaderSize
	n := avail * 8 / (recSize*8 + 1)
	for n > 0 && bx.BitmapLen(n)+n*recSize > avail {
		n--
	}
	return n
}

// NewPage formats buf as an empty page for s.
func NewPage(buf []byte, pageID uint32, s *record.Schema) (*Page, error) {
	if len(buf) < MinPageSize {
		return nil, fmt.Errorf("%w: %d", ErrWrongSize, len(buf))
	}
	n := SlotsPerPage(len(buf), s.ByteSize())
	if n == 0 {
		return nil, fmt.Errorf("%w: %d bytes in %d-byte page", ErrRecordTooLarge, s.ByteSize(), len(buf))
	}
	if n > 0xFFFF {
		n = 0xFFFF
	}

	clear(buf)
	bx.PutU32At(buf, offPageID, pageID)
	bx.PutU16At(buf, offNumSlots, uint16(n))
	return &Page{Buf: buf, Schema: s}, nil
}

// LoadPage wraps a page previously written by NewPage. The slot count in the
// header must match what s produces for this buffer size.
func LoadPage(buf []byte, s *record.Schema) (*Page, error) {
	if len(buf) < MinPageSize {
		return nil, fmt.Errorf("%w: %d", ErrWrongSize, len(buf))
	}
	p := &Page{Buf: buf, Schema: s}

	want := SlotsPerPage(len(buf), s.ByteSize())
	if want > 0xFFFF {
		want = 0xFFFF
	}
	if got := p.NumSlots(); got != want {
		return nil, fmt.Errorf("%w: %d slots, schema needs %d", ErrPageCorrupted, got, want)
	}
	return p, nil
}

func (p *Page) ID() uint32 { return bx.U32At(p.Buf, offPageID) }

func (p *Page) NumSlots() int { return int(bx.U16At(p.Buf, offNumSlots)) }

func (p *Page) bitmap() []byte {
	return p.Buf[HeaderSize : HeaderSize+bx.BitmapLen(p.NumSlots())]
}

func (p *Page) slotBytes(slot int) []byte {
	size := p.Schema.ByteSize()
	off := HeaderSize + bx.BitmapLen(p.NumSlots()) + slot*size
	return p.Buf[off : off+size]
}

func (p *Page) checkSlot(slot int) error {
	if slot < 0 || slot >= p.NumSlots() {
		return fmt.Errorf("%w: %d (page has %d)", ErrBadSlot, slot, p.NumSlots())
	}
	return nil
}

// IsUsed reports whether slot holds a record.
func (p *Page) IsUsed(slot int) (bool, error) {
	if err := p.checkSlot(slot); err != nil {
		return false, err
	}
	return bx.Bit(p.bitmap(), slot), nil
}

func (p *Page) FreeSlots() int {
	bm := p.bitmap()
	free := 0
	for i := 0; i < p.NumSlots(); i++ {
		if !bx.Bit(bm, i) {
			free++
		}
	}
	return free
}

// InsertRecord stores r in the first free slot and sets its location.
func (p *Page) InsertRecord(r *record.Record) (int, error) {
	if !r.Schema().Equal(p.Schema) {
		return -1, ErrSchemaMismatch
	}

	bm := p.bitmap()
	for slot := 0; slot < p.NumSlots(); slot++ {
		if bx.Bit(bm, slot) {
			continue
		}
		if err := record.EncodeRecordInto(p.slotBytes(slot), r); err != nil {
			return -1, err
		}
		bx.SetBit(bm, slot)
		r.SetLocation(record.TID{PageID: p.ID(), Slot: uint16(slot)})
		return slot, nil
	}
	return -1, ErrNoSpace
}

// UpdateRecord overwrites a used slot in place.
func (p *Page) UpdateRecord(slot int, r *record.Record) error {
	used, err := p.IsUsed(slot)
	if err != nil {
		return err
	}
	if !used {
		return fmt.Errorf("%w: %d is empty", ErrBadSlot, slot)
	}
	if !r.Schema().Equal(p.Schema) {
		return ErrSchemaMismatch
	}
	if err := record.EncodeRecordInto(p.slotBytes(slot), r); err != nil {
		return err
	}
	r.SetLocation(record.TID{PageID: p.ID(), Slot: uint16(slot)})
	return nil
}

// ReadRecord decodes the record in slot; the result carries its location.
func (p *Page) ReadRecord(slot int) (*record.Record, error) {
	used, err := p.IsUsed(slot)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, fmt.Errorf("%w: %d is empty", ErrBadSlot, slot)
	}
	r, err := record.DecodeRecord(p.Schema, p.slotBytes(slot))
	if err != nil {
		return nil, err
	}
	r.SetLocation(record.TID{PageID: p.ID(), Slot: uint16(slot)})
	return r, nil
}

// DeleteRecord frees slot.
func (p *Page) DeleteRecord(slot int) error {
	used, err := p.IsUsed(slot)
	if err != nil {
		return err
	}
	if !used {
		return fmt.Errorf("%w: %d is empty", ErrBadSlot, slot)
	}
	bx.ClearBit(p.bitmap(), slot)
	clear(p.slotBytes(slot))
	return nil
}
