package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tuannm99/novatuple/internal/record"
)

var (
	ErrTableExists   = errors.New("catalog: table already exists")
	ErrTableNotFound = errors.New("catalog: table not found")

	ErrInvalidTableName = errors.New("catalog: invalid table name")
)

type TableMeta struct {
	ID     uuid.UUID
	Name   string
	Schema *record.Schema
}

// Catalog maps table names (and ids) to their schemas.
// Safe for concurrent use; the schemas it hands out are shared read-only.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]TableMeta
	byID   map[uuid.UUID]TableMeta
}

func New() *Catalog {
	return &Catalog{
		byName: make(map[string]TableMeta),
		byID:   make(map[uuid.UUID]TableMeta),
	}
}

// FromSpecs builds a catalog from table specs, usually read from config.
func FromSpecs(specs []TableSpec) (*Catalog, error) {
	c := New()
	for _, ts := range specs {
		s, err := ts.Schema()
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", ts.Name, err)
		}
		if _, err := c.AddTable(ts.Name, s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ValidateName rejects names that cannot be used as a file name inside the
// data directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, name)
	}
	return nil
}

func (c *Catalog) AddTable(name string, s *record.Schema) (TableMeta, error) {
	if err := ValidateName(name); err != nil {
		return TableMeta{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[name]; ok {
		return TableMeta{}, fmt.Errorf("%w: %q", ErrTableExists, name)
	}
	meta := TableMeta{ID: uuid.New(), Name: name, Schema: s}
	c.byName[name] = meta
	c.byID[meta.ID] = meta
	return meta, nil
}

// RemoveTable drops name from the catalog. Table files are left alone.
func (c *Catalog) RemoveTable(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	meta, ok := c.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	delete(c.byName, name)
	delete(c.byID, meta.ID)
	return nil
}

func (c *Catalog) Table(name string) (TableMeta, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	meta, ok := c.byName[name]
	if !ok {
		return TableMeta{}, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return meta, nil
}

func (c *Catalog) TableByID(id uuid.UUID) (TableMeta, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	meta, ok := c.byID[id]
	if !ok {
		return TableMeta{}, fmt.Errorf("%w: id %s", ErrTableNotFound, id)
	}
	return meta, nil
}

func (c *Catalog) SchemaOf(name string) (*record.Schema, error) {
	meta, err := c.Table(name)
	if err != nil {
		return nil, err
	}
	return meta.Schema, nil
}

// Names returns every table name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
