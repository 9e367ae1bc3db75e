package common

import (
	"reflect"
	"testing"

	"deblend/pkg/api"
)

func TestSortRows(t *testing.T) {
	rows := []api.CatalogRowV1{
		{BatchID: "b", Strategy: "peaks", Example: 1, Source: 0},
		{BatchID: "a", Strategy: "peaks", Example: 0, Source: 1},
		{BatchID: "a", Strategy: "peaks", Example: 0, Source: 0},
		{BatchID: "a", Strategy: "extract", Example: 2, Source: 0},
	}
	SortRows(rows)
	want := []api.CatalogRowV1{
		{BatchID: "a", Strategy: "extract", Example: 2, Source: 0},
		{BatchID: "a", Strategy: "peaks", Example: 0, Source: 0},
		{BatchID: "a", Strategy: "peaks", Example: 0, Source: 1},
		{BatchID: "b", Strategy: "peaks", Example: 1, Source: 0},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("order: %+v", rows)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Peaks, extract ,,PEAKS ")
	want := []string{"peaks", "extract", "peaks"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if SplitList("") != nil {
		t.Fatal("empty input must yield nil")
	}
}
