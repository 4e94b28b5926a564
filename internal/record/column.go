package record

import "fmt"

// Column is one (type, optional name) entry of a Schema.
type Column struct {
	typ   Type
	name  string
	named bool
}

// NewColumn returns a named column. The name may be empty; it is still
// considered present.
func NewColumn(t Type, name string) Column {
	return Column{typ: t, name: name, named: true}
}

// AnonColumn returns a column without a name.
func AnonColumn(t Type) Column {
	return Column{typ: t}
}

func (c Column) Type() Type { return c.typ }

func (c Column) Name() (string, bool) { return c.name, c.named }

// Equal: same type and same name; a present name never equals an absent one.
func (c Column) Equal(o Column) bool {
	return c.typ == o.typ && c.named == o.named && c.name == o.name
}

func (c Column) String() string {
	return fmt.Sprintf("%s(%s)", c.typ, c.name)
}
