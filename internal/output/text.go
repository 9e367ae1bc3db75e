// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"deblend/pkg/api"
)

const textHeader = "batch_id\tstrategy\texample\tsource\tra\tdec\tx\ty"

// WriteText prints one TSV line per catalog row.
func WriteText(w io.Writer, rows []api.CatalogRowV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, textHeader); err != nil {
			return err
		}
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w,
			"%s\t%s\t%d\t%d\t%.4f\t%.4f\t%.3f\t%.3f\n",
			r.BatchID, r.Strategy, r.Example, r.Source,
			r.RA, r.Dec, r.X, r.Y,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
