// Package models contains the relational schema and in-memory dataset
// produced by the consolidation pipeline.
package models

// ColumnType is an abstract column type. Dialects translate these to
// engine-native type names at export time.
type ColumnType int

const (
	// TypeSerial is an auto-incrementing integer primary key.
	TypeSerial ColumnType = iota
	TypeInteger
	TypeDouble
	TypeText
	TypeBoolean
	TypeTimestampTZ
)

// ForeignKey references a column in another table.
type ForeignKey struct {
	Table  string
	Column string
}

// Column declares a single column of a table schema.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	Unique     bool
	NotNull    bool
	References *ForeignKey
}

// TableSchema declares a table: its name, columns in export order, and
// any multi-column unique constraints.
type TableSchema struct {
	Name    string
	Columns []Column
	Uniques [][]string
}

// ColumnNames returns column names in declared order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the schema declares the named column.
func (s TableSchema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Index declares a secondary index emitted after table creation.
type Index struct {
	Name    string
	Table   string
	Columns []string
}

// Row is a single record. Keys are column names. A missing key means the
// source omitted the field; NormalizeFields materializes it as an
// explicit nil before export.
type Row map[string]any

// Table pairs a schema with its in-memory rows.
type Table struct {
	Schema TableSchema
	Rows   []Row
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Dataset holds all tables of a run. Table order is the fixed emission
// order required for foreign-key-safe export; tables registered beyond
// the built-in set are appended after it.
type Dataset struct {
	tables map[string]*Table
	order  []string
}

// NewDataset returns a dataset with the seven pipeline tables registered
// in emission order.
func NewDataset() *Dataset {
	ds := &Dataset{tables: make(map[string]*Table)}
	for _, schema := range TableSchemas() {
		ds.Register(schema)
	}
	return ds
}

// Register adds a table for the given schema. Registering an existing
// name is a no-op.
func (d *Dataset) Register(schema TableSchema) *Table {
	if t, ok := d.tables[schema.Name]; ok {
		return t
	}
	t := &Table{Schema: schema}
	d.tables[schema.Name] = t
	d.order = append(d.order, schema.Name)
	return t
}

// Table returns the named table, or nil if it was never registered.
func (d *Dataset) Table(name string) *Table {
	return d.tables[name]
}

// Tables returns all tables in emission order.
func (d *Dataset) Tables() []*Table {
	out := make([]*Table, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tables[name])
	}
	return out
}
