// Package export serializes the in-memory dataset to a dialect-native
// SQL script and flat tabular dumps.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/courseatlas/atlas-engine/pkg/models"
)

// Dialect is a declarative description of a destination SQL engine's
// concrete syntax: type names, identifier quoting, and literal rules.
type Dialect struct {
	Name string

	typeNames map[models.ColumnType]string

	boolTrue  string
	boolFalse string

	// Rendered literals for float infinities. NaN always renders NULL.
	posInf string
	negInf string

	// stringPrefix precedes the opening string delimiter (N for
	// SQL Server national character literals).
	stringPrefix string

	escapeString    func(string) string
	quoteIdentifier func(string) string

	dropCascade bool

	// identityInsert marks engines that reject explicit values in
	// auto-increment columns unless the table is switched into
	// identity-insert mode around the batch.
	identityInsert bool
}

// Postgres targets PostgreSQL (and Supabase's SQL editor).
var Postgres = &Dialect{
	Name: "postgres",
	typeNames: map[models.ColumnType]string{
		models.TypeSerial:      "SERIAL",
		models.TypeInteger:     "INTEGER",
		models.TypeDouble:      "DOUBLE PRECISION",
		models.TypeText:        "TEXT",
		models.TypeBoolean:     "BOOLEAN",
		models.TypeTimestampTZ: "TIMESTAMP WITH TIME ZONE",
	},
	boolTrue:  "TRUE",
	boolFalse: "FALSE",
	posInf:    "'Infinity'",
	negInf:    "'-Infinity'",
	escapeString: func(s string) string {
		return strings.ReplaceAll(s, "'", "''")
	},
	quoteIdentifier: func(s string) string {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	},
	dropCascade: true,
}

// SQLServer targets Microsoft SQL Server 2016+.
var SQLServer = &Dialect{
	Name: "sqlserver",
	typeNames: map[models.ColumnType]string{
		models.TypeSerial:      "INT IDENTITY(1,1)",
		models.TypeInteger:     "INT",
		models.TypeDouble:      "FLOAT",
		models.TypeText:        "NVARCHAR(MAX)",
		models.TypeBoolean:     "BIT",
		models.TypeTimestampTZ: "DATETIMEOFFSET",
	},
	boolTrue:  "1",
	boolFalse: "0",
	// SQL Server float has no infinity literal.
	posInf:       "NULL",
	negInf:       "NULL",
	stringPrefix: "N",
	escapeString: func(s string) string {
		return strings.ReplaceAll(s, "'", "''")
	},
	quoteIdentifier: func(s string) string {
		return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
	},
	identityInsert: true,
}

// Dialects maps configuration names to dialects.
var Dialects = map[string]*Dialect{
	Postgres.Name:  Postgres,
	SQLServer.Name: SQLServer,
}

// TypeName returns the engine-native name for an abstract column type.
func (d *Dialect) TypeName(t models.ColumnType) string {
	return d.typeNames[t]
}

// QuoteIdentifier quotes a table or column name.
func (d *Dialect) QuoteIdentifier(name string) string {
	return d.quoteIdentifier(name)
}

// Literal renders a Go value as a SQL literal for this dialect. Nil
// renders as NULL, NaN as NULL, infinities as the dialect sentinel, and
// strings are escaped and delimited.
func (d *Dialect) Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return d.boolTrue
		}
		return d.boolFalse
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return d.floatLiteral(float64(val))
	case float64:
		return d.floatLiteral(val)
	case time.Time:
		return d.stringLiteral(val.UTC().Format(time.RFC3339))
	case string:
		return d.stringLiteral(val)
	default:
		return d.stringLiteral(fmt.Sprint(val))
	}
}

func (d *Dialect) floatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NULL"
	case math.IsInf(f, 1):
		return d.posInf
	case math.IsInf(f, -1):
		return d.negInf
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func (d *Dialect) stringLiteral(s string) string {
	return d.stringPrefix + "'" + d.escapeString(s) + "'"
}

// DropTableStatement returns the drop statement for a table.
func (d *Dialect) DropTableStatement(table string) string {
	if d.dropCascade {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", d.QuoteIdentifier(table))
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", d.QuoteIdentifier(table))
}

// CreateTableStatement renders the CREATE TABLE for a schema, including
// primary key, unique, not-null and foreign key constraints.
func (d *Dialect) CreateTableStatement(schema models.TableSchema) string {
	var defs []string
	for _, col := range schema.Columns {
		def := d.QuoteIdentifier(col.Name) + " " + d.TypeName(col.Type)
		if col.PrimaryKey {
			def += " PRIMARY KEY"
		}
		if col.Unique {
			def += " UNIQUE"
		}
		if col.NotNull && !col.PrimaryKey {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	for _, unique := range schema.Uniques {
		defs = append(defs, fmt.Sprintf("UNIQUE (%s)", d.identifierList(unique)))
	}
	for _, col := range schema.Columns {
		if col.References == nil {
			continue
		}
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			d.QuoteIdentifier(col.Name),
			d.QuoteIdentifier(col.References.Table),
			d.QuoteIdentifier(col.References.Column)))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n);",
		d.QuoteIdentifier(schema.Name), strings.Join(defs, ",\n    "))
}

// CreateIndexStatement renders a secondary index.
func (d *Dialect) CreateIndexStatement(idx models.Index) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s);",
		d.QuoteIdentifier(idx.Name),
		d.QuoteIdentifier(idx.Table),
		d.identifierList(idx.Columns))
}

func (d *Dialect) identifierList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}
