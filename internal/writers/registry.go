// internal/writers/registry.go
package writers

import (
	"io"

	"deblend/internal/output"
	"deblend/pkg/api"
)

// Buffered row writers by format. "jsonl" streams and is dispatched in
// StartCatalogWriter directly.
var rowWriters = map[string]func(w io.Writer, rows []api.CatalogRowV1, header bool) error{
	"text": output.WriteText,
	"json": func(w io.Writer, rows []api.CatalogRowV1, _ bool) error {
		return output.WriteJSON(w, rows)
	},
}

// KnownFormat reports whether StartCatalogWriter accepts the format.
func KnownFormat(format string) bool {
	if format == "jsonl" {
		return true
	}
	_, ok := rowWriters[format]
	return ok
}
