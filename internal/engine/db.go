package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/tuannm99/novatuple/internal/catalog"
	"github.com/tuannm99/novatuple/internal/heap"
	"github.com/tuannm99/novatuple/internal/record"
	"github.com/tuannm99/novatuple/internal/storage"
)

var ErrDatabaseClosed = errors.New("novatuple: database is closed")

type DatabaseOperation interface {
	CreateTable(name string, schema *record.Schema) (*heap.File, error)
	OpenTable(name string) (*heap.File, error)
	Close() error
}

var _ DatabaseOperation = (*Database)(nil)

// Database ties the catalog to heap files under DataDir/tables.
type Database struct {
	DataDir  string
	PageSize int
	Catalog  *catalog.Catalog

	mu     sync.Mutex
	open   map[string]*heap.File
	closed bool
}

// NewDatabase creates a database handle without touching the filesystem.
func NewDatabase(dataDir string, pageSize int, cat *catalog.Catalog) *Database {
	if cat == nil {
		cat = catalog.New()
	}
	return &Database{
		DataDir:  dataDir,
		PageSize: pageSize,
		Catalog:  cat,
		open:     make(map[string]*heap.File),
	}
}

func (db *Database) tablePath(name string) string {
	return filepath.Join(db.DataDir, "tables", name+".tbl")
}

// CreateTable registers name in the catalog and opens its heap file.
// The catalog entry is dropped again if the file cannot be opened.
func (db *Database) CreateTable(name string, schema *record.Schema) (*heap.File, error) {
	if storage.SlotsPerPage(db.PageSize, schema.ByteSize()) == 0 {
		return nil, fmt.Errorf("%w: %s needs %d bytes, page is %d",
			storage.ErrRecordTooLarge, name, schema.ByteSize(), db.PageSize)
	}
	if _, err := db.Catalog.AddTable(name, schema); err != nil {
		return nil, err
	}
	f, err := db.OpenTable(name)
	if err != nil {
		if rerr := db.Catalog.RemoveTable(name); rerr != nil {
			slog.Warn("engine: rollback create table", "table", name, "err", rerr)
		}
		return nil, err
	}
	return f, nil
}

// OpenTable returns the heap file of a catalog table, opening it on first use.
func (db *Database) OpenTable(name string) (*heap.File, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, ErrDatabaseClosed
	}
	if f, ok := db.open[name]; ok {
		return f, nil
	}

	meta, err := db.Catalog.Table(name)
	if err != nil {
		return nil, err
	}
	f, err := heap.Open(name, db.tablePath(name), meta.Schema, db.PageSize)
	if err != nil {
		return nil, fmt.Errorf("open table %q: %w", name, err)
	}
	slog.Debug("engine: open table", "table", name, "id", meta.ID, "pages", f.Pager.PageCount())

	db.open[name] = f
	return f, nil
}

func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true

	var errs []error
	for name, f := range db.open {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", name, err))
		}
	}
	db.open = nil
	return errors.Join(errs...)
}
