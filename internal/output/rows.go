// internal/output/rows.go
package output

import (
	"deblend-core/deblender"
	"deblend/pkg/api"
)

// ToAPIRows flattens a batch result into stable wire rows (v1), one row
// per detected source, in example order.
func ToAPIRows(batchID, strategy string, b *deblender.Batch) []api.CatalogRowV1 {
	var rows []api.CatalogRowV1
	for i, cat := range b.Catalogs {
		for j := 0; j < cat.Len(); j++ {
			rows = append(rows, api.CatalogRowV1{
				BatchID:  batchID,
				Strategy: strategy,
				Example:  i,
				Source:   j,
				RA:       cat.RA[j],
				Dec:      cat.Dec[j],
				X:        cat.X[j],
				Y:        cat.Y[j],
			})
		}
	}
	return rows
}
