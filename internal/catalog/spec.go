package catalog

import (
	"fmt"

	"github.com/tuannm99/novatuple/internal/record"
)

// ColumnSpec is a column as written in config. An empty Name makes the
// column anonymous.
type ColumnSpec struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type" validate:"required"`
}

type TableSpec struct {
	Name    string       `mapstructure:"name" validate:"required"`
	Columns []ColumnSpec `mapstructure:"columns" validate:"required,min=1,dive"`
}

// Schema parses every column type and builds the table schema.
func (ts TableSpec) Schema() (*record.Schema, error) {
	cols := make([]record.Column, 0, len(ts.Columns))
	for i, cs := range ts.Columns {
		t, err := record.ParseType(cs.Type)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if cs.Name == "" {
			cols = append(cols, record.AnonColumn(t))
		} else {
			cols = append(cols, record.NewColumn(t, cs.Name))
		}
	}
	return record.NewSchemaFromColumns(cols)
}
