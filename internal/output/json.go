// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"deblend/pkg/api"
)

// WriteJSON writes a single JSON array of v1 rows (pretty-indented).
// A nil slice still emits an empty array, never "null".
func WriteJSON(w io.Writer, rows []api.CatalogRowV1) error {
	if rows == nil {
		rows = []api.CatalogRowV1{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
