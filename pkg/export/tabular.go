package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/courseatlas/atlas-engine/pkg/models"
)

// WriteTabular writes one flat CSV file per table into dir: a header
// row of column names, then one row per record in declared column
// order. Nil values render as empty cells. One-shot: any I/O failure
// aborts and partial files must be treated as invalid.
func WriteTabular(dir string, ds *models.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tabular directory: %w", err)
	}

	for _, table := range ds.Tables() {
		if err := writeTableCSV(dir, table); err != nil {
			return err
		}
	}
	return nil
}

func writeTableCSV(dir string, table *models.Table) error {
	name := table.Schema.Name
	path := filepath.Join(dir, name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := table.Schema.ColumnNames()
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write %s header: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range table.Rows {
		for i, col := range columns {
			record[i] = cellValue(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write %s row: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
