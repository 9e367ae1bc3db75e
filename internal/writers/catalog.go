package writers

import (
	"fmt"
	"io"

	"deblend/internal/common"
	"deblend/pkg/api"
)

// StartCatalogWriter spins up a writer goroutine for catalog rows and
// returns the input channel plus a one-shot error channel. Callers close
// the channel and then receive the final error.
//
// "text" and "json" buffer all rows (sortable); "jsonl" streams one row
// per line and ignores the sort flag.
func StartCatalogWriter(out io.Writer, format string, sortRows, header bool, bufSize int) (chan<- api.CatalogRowV1, <-chan error) {
	if format == "jsonl" {
		return StartCatalogJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.CatalogRowV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		write, ok := rowWriters[format]
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unsupported output %q", format)
			return
		}
		var buf []api.CatalogRowV1
		for r := range in {
			buf = append(buf, r)
		}
		if sortRows {
			common.SortRows(buf)
		}
		err := write(out, buf, header)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
