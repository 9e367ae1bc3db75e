// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"deblend/internal/jsonlutil"
	"deblend/pkg/api"
)

// StartCatalogJSONLWriter streams each catalog row as one JSON line (v1).
func StartCatalogJSONLWriter(out io.Writer, bufSize int) (chan<- api.CatalogRowV1, <-chan error) {
	return jsonlutil.Start[api.CatalogRowV1](out, bufSize,
		func(enc *json.Encoder, r api.CatalogRowV1) error {
			return enc.Encode(r)
		},
		IsBrokenPipe,
	)
}
