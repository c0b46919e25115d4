package schema

import "github.com/courseatlas/atlas-engine/pkg/models"

// NormalizeFields inserts an explicit nil for every declared column a
// row does not carry, so every record of a kind exposes the full column
// set. Runs after the builder and before export; idempotent. Returns
// the number of insertions made.
func NormalizeFields(ds *models.Dataset) int {
	inserted := 0
	for _, table := range ds.Tables() {
		for _, row := range table.Rows {
			for _, col := range table.Schema.Columns {
				if _, present := row[col.Name]; !present {
					row[col.Name] = nil
					inserted++
				}
			}
		}
	}
	return inserted
}
