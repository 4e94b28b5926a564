// Package novatuple is the public facade over the record data model:
// schemas, records, and the heap files and catalog that store them.
package novatuple

import (
	"github.com/tuannm99/novatuple/internal/engine"
	"github.com/tuannm99/novatuple/internal/record"
)

type (
	Schema   = record.Schema
	Column   = record.Column
	Type     = record.Type
	Field    = record.Field
	Record   = record.Record
	TID      = record.TID
	Database = engine.Database
)

var (
	NewSchema            = record.NewSchema
	NewSchemaFromColumns = record.NewSchemaFromColumns
	NewColumn            = record.NewColumn
	AnonColumn           = record.AnonColumn
	Merge                = record.Merge
	NewRecord            = record.New
	NewDatabase          = engine.NewDatabase
)

var (
	ErrInvalidSchema    = record.ErrInvalidSchema
	ErrIndexOutOfRange  = record.ErrIndexOutOfRange
	ErrNameNotFound     = record.ErrNameNotFound
	ErrIncompleteRecord = record.ErrIncompleteRecord
	ErrTypeMismatch     = record.ErrTypeMismatch
)
