// pkg/api/catalog_v1.go
package api

// CatalogRowV1 is the stable JSON/JSONL schema for detected sources.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type CatalogRowV1 struct {
	BatchID  string  `json:"batch_id"`
	Strategy string  `json:"strategy"`
	Example  int     `json:"example"`
	Source   int     `json:"source"`
	RA       float64 `json:"ra"`  // arcsec
	Dec      float64 `json:"dec"` // arcsec
	X        float64 `json:"x"`   // pixels
	Y        float64 `json:"y"`   // pixels
}
