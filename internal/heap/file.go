package heap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/novatuple/internal/record"
	"github.com/tuannm99/novatuple/internal/storage"
)

// File is a heap file: an unordered set of fixed-size records of one schema
// spread over the pages of a single Pager. Not safe for concurrent writers.
type File struct {
	Name   string
	Schema *record.Schema
	Pager  *storage.Pager
}

func NewFile(name string, schema *record.Schema, pager *storage.Pager) *File {
	return &File{Name: name, Schema: schema, Pager: pager}
}

// Open opens (or creates) the heap file at path with the given page size.
func Open(name, path string, schema *record.Schema, pageSize int) (*File, error) {
	if storage.SlotsPerPage(pageSize, schema.ByteSize()) == 0 {
		return nil, fmt.Errorf("%w: %s needs %d bytes", storage.ErrRecordTooLarge, name, schema.ByteSize())
	}
	pg, err := storage.OpenPager(path, pageSize)
	if err != nil {
		return nil, err
	}
	return NewFile(name, schema, pg), nil
}

func (f *File) loadPage(pageID uint32) (*storage.Page, error) {
	buf := make([]byte, f.Pager.PageSize())
	if err := f.Pager.ReadPage(pageID, buf); err != nil {
		return nil, err
	}
	return storage.LoadPage(buf, f.Schema)
}

// ReadPage returns a detached copy of page pageID, for inspection.
func (f *File) ReadPage(pageID uint32) (*storage.Page, error) {
	return f.loadPage(pageID)
}

func (f *File) writePage(p *storage.Page) error {
	return f.Pager.WritePage(p.ID(), p.Buf)
}

// Insert stores r and sets its location. Last page first; a new page is
// appended when it is full.
func (f *File) Insert(r *record.Record) (record.TID, error) {
	if !r.Schema().Equal(f.Schema) {
		return record.TID{}, storage.ErrSchemaMismatch
	}

	// the page sets r's location before the page reaches disk; undo it
	// when the write fails
	prev, placed := r.Location()
	restore := func() {
		if placed {
			r.SetLocation(prev)
		} else {
			r.ClearLocation()
		}
	}

	count := f.Pager.PageCount()
	if count > 0 {
		p, err := f.loadPage(count - 1)
		if err != nil {
			return record.TID{}, err
		}
		_, err = p.InsertRecord(r)
		switch {
		case err == nil:
			if err := f.writePage(p); err != nil {
				restore()
				return record.TID{}, err
			}
			loc, _ := r.Location()
			return loc, nil
		case !errors.Is(err, storage.ErrNoSpace):
			return record.TID{}, err
		}
	}

	p, err := storage.NewPage(make([]byte, f.Pager.PageSize()), count, f.Schema)
	if err != nil {
		return record.TID{}, err
	}
	if _, err := p.InsertRecord(r); err != nil {
		return record.TID{}, err
	}
	if err := f.writePage(p); err != nil {
		restore()
		return record.TID{}, err
	}
	slog.Debug("heap: new page", "table", f.Name, "page_id", count)

	loc, _ := r.Location()
	return loc, nil
}

// Get reads a single record by TID.
func (f *File) Get(id record.TID) (*record.Record, error) {
	p, err := f.loadPage(id.PageID)
	if err != nil {
		return nil, err
	}
	return p.ReadRecord(int(id.Slot))
}

// Update overwrites the record at id with r; r's location becomes id.
func (f *File) Update(id record.TID, r *record.Record) error {
	p, err := f.loadPage(id.PageID)
	if err != nil {
		return err
	}
	prev, placed := r.Location()
	if err := p.UpdateRecord(int(id.Slot), r); err != nil {
		return err
	}
	if err := f.writePage(p); err != nil {
		if placed {
			r.SetLocation(prev)
		} else {
			r.ClearLocation()
		}
		return err
	}
	return nil
}

// Delete frees the slot at id.
func (f *File) Delete(id record.TID) error {
	p, err := f.loadPage(id.PageID)
	if err != nil {
		return err
	}
	if err := p.DeleteRecord(int(id.Slot)); err != nil {
		return err
	}
	return f.writePage(p)
}

// Scan calls fn for every stored record in page/slot order.
// Stops at the first error fn returns.
func (f *File) Scan(fn func(r *record.Record) error) error {
	count := f.Pager.PageCount()
	for pageID := uint32(0); pageID < count; pageID++ {
		p, err := f.loadPage(pageID)
		if err != nil {
			return err
		}
		for slot := 0; slot < p.NumSlots(); slot++ {
			used, err := p.IsUsed(slot)
			if err != nil {
				return err
			}
			if !used {
				continue
			}
			r, err := p.ReadRecord(slot)
			if err != nil {
				return err
			}
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *File) Close() error {
	if err := f.Pager.Sync(); err != nil {
		return err
	}
	return f.Pager.Close()
}
