package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/courseatlas/atlas-engine/pkg/models"
)

// DefaultBatchSize bounds the number of rows per multi-row INSERT
// statement. 500 keeps individual statements small enough for hosted
// SQL editors while preserving atomicity per batch.
const DefaultBatchSize = 500

// ScriptOptions configure a script export.
type ScriptOptions struct {
	Dialect     *Dialect
	BatchSize   int       // rows per INSERT; DefaultBatchSize if <= 0
	RunID       string    // pipeline run identity, recorded in the header
	GeneratedAt time.Time // header timestamp; zero means time.Now
}

func (o *ScriptOptions) normalize() {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
}

// WriteScript writes the combined drop → create → index → insert script
// for the dataset. Tables are emitted in the dataset's registration
// order (the fixed dependency order), drops in the exact reverse. Any
// write failure aborts the export.
func WriteScript(w io.Writer, ds *models.Dataset, opts ScriptOptions) error {
	opts.normalize()
	d := opts.Dialect

	bw := bufio.NewWriter(w)
	tables := ds.Tables()

	banner(bw, "Course/professor consolidation export")
	fmt.Fprintf(bw, "-- Dialect: %s\n", d.Name)
	if opts.RunID != "" {
		fmt.Fprintf(bw, "-- Run: %s\n", opts.RunID)
	}
	fmt.Fprintf(bw, "-- Generated: %s\n\n", opts.GeneratedAt.UTC().Format(time.RFC3339))

	banner(bw, "Step 1: Drop existing tables")
	for i := len(tables) - 1; i >= 0; i-- {
		fmt.Fprintln(bw, d.DropTableStatement(tables[i].Schema.Name))
	}
	fmt.Fprintln(bw)

	banner(bw, "Step 2: Create tables")
	for _, t := range tables {
		fmt.Fprintf(bw, "-- Table: %s\n", t.Schema.Name)
		fmt.Fprintf(bw, "%s\n\n", d.CreateTableStatement(t.Schema))
	}

	banner(bw, "Step 3: Create indexes")
	for _, idx := range models.Indexes() {
		fmt.Fprintln(bw, d.CreateIndexStatement(idx))
	}
	fmt.Fprintln(bw)

	banner(bw, "Step 4: Insert data")
	for _, t := range tables {
		if err := writeInserts(bw, t, d, opts.BatchSize); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

// WriteScriptFile writes the script to path, creating parent
// directories. A partial file left behind by a failed export must be
// treated as invalid.
func WriteScriptFile(path string, ds *models.Dataset, opts ScriptOptions) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create script file: %w", err)
	}
	defer f.Close()

	if err := WriteScript(f, ds, opts); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close script file: %w", err)
	}
	return nil
}

func writeInserts(w io.Writer, t *models.Table, d *Dialect, batchSize int) error {
	if len(t.Rows) == 0 {
		return nil
	}

	name := t.Schema.Name
	columns := t.Schema.ColumnNames()
	quotedTable := d.QuoteIdentifier(name)
	columnList := d.identifierList(columns)

	if _, err := fmt.Fprintf(w, "-- Table: %s (%d rows)\n", name, len(t.Rows)); err != nil {
		return fmt.Errorf("write inserts for %s: %w", name, err)
	}
	if d.identityInsert {
		fmt.Fprintf(w, "SET IDENTITY_INSERT %s ON;\n", quotedTable)
	}

	for start := 0; start < len(t.Rows); start += batchSize {
		end := start + batchSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}

		fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES\n", quotedTable, columnList)
		for i, row := range t.Rows[start:end] {
			values := make([]string, len(columns))
			for j, col := range columns {
				values[j] = d.Literal(row[col])
			}
			sep := ","
			if i == end-start-1 {
				sep = ";"
			}
			if _, err := fmt.Fprintf(w, "(%s)%s\n", strings.Join(values, ", "), sep); err != nil {
				return fmt.Errorf("write inserts for %s: %w", name, err)
			}
		}
		fmt.Fprintln(w)
	}

	if d.identityInsert {
		fmt.Fprintf(w, "SET IDENTITY_INSERT %s OFF;\n\n", quotedTable)
	}
	return nil
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, "-- ============================================")
	fmt.Fprintf(w, "-- %s\n", title)
	fmt.Fprintln(w, "-- ============================================")
	fmt.Fprintln(w)
}

func ensureParentDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	return nil
}
