// internal/common/sort.go
package common

import (
	"sort"

	"deblend/pkg/api"
)

// LessRow defines a stable order for catalog rows (for -sort).
func LessRow(a, b api.CatalogRowV1) bool {
	if a.BatchID != b.BatchID {
		return a.BatchID < b.BatchID
	}
	if a.Strategy != b.Strategy {
		return a.Strategy < b.Strategy
	}
	if a.Example != b.Example {
		return a.Example < b.Example
	}
	return a.Source < b.Source
}

func SortRows(rows []api.CatalogRowV1) {
	sort.Slice(rows, func(i, j int) bool { return LessRow(rows[i], rows[j]) })
}
