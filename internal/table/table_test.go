package table

import (
	"testing"
	"time"

	"dwetl/pkg/records"
)

func TestIndexKeysByCanonicalString(t *testing.T) {
	tbl := New([]string{"id", "name"}, []records.Record{
		{"id": 1, "name": "a"},
		{"id": "2", "name": "b"},
		{"id": nil, "name": "c"},
	})
	idx := tbl.Index("id")

	if got := len(idx); got != 2 {
		t.Fatalf("len(idx) = %d, want 2 (nil keys excluded)", got)
	}
	if r, ok := idx["1"]; !ok || r["name"] != "a" {
		t.Fatalf("idx[\"1\"] = %#v, want row a", r)
	}
	// int 2 and string "2" share the same canonical key.
	if r, ok := idx["2"]; !ok || r["name"] != "b" {
		t.Fatalf("idx[\"2\"] = %#v, want row b", r)
	}
}

func TestIndexKeepsFirstDuplicate(t *testing.T) {
	tbl := New([]string{"id"}, []records.Record{
		{"id": 1, "v": "first"},
		{"id": 1, "v": "second"},
	})
	if got := tbl.Index("id")["1"]["v"]; got != "first" {
		t.Fatalf("duplicate key winner = %v, want first", got)
	}
}

func TestSortByIsStableAndNilFirst(t *testing.T) {
	tbl := New([]string{"k", "tag"}, []records.Record{
		{"k": 2, "tag": "x"},
		{"k": nil, "tag": "n"},
		{"k": 1, "tag": "a"},
		{"k": 2, "tag": "y"},
	})
	got := tbl.SortBy("k")

	tags := make([]string, 0, got.Len())
	for _, r := range got.Rows {
		tags = append(tags, r["tag"].(string))
	}
	want := []string{"n", "a", "x", "y"}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("sorted tags = %v, want %v", tags, want)
		}
	}

	// Input must not be reordered.
	if tbl.Rows[0]["tag"] != "x" {
		t.Fatalf("SortBy mutated its input")
	}
}

func TestCompareMixedNumerics(t *testing.T) {
	if Compare(2, 10.5) >= 0 {
		t.Fatalf("Compare(2, 10.5) = %d, want < 0", Compare(2, 10.5))
	}
	if Compare(3.0, 3) != 0 {
		t.Fatalf("Compare(3.0, 3) = %d, want 0", Compare(3.0, 3))
	}
	// Lexicographic comparison would put "10" before "9"; numeric must not.
	if Compare(9, 10) >= 0 {
		t.Fatalf("Compare(9, 10) = %d, want < 0", Compare(9, 10))
	}
}

func TestCompareTimes(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if Compare(a, b) >= 0 {
		t.Fatalf("Compare(a, b) = %d, want < 0", Compare(a, b))
	}
	if Compare(b, a) <= 0 {
		t.Fatalf("Compare(b, a) = %d, want > 0", Compare(b, a))
	}
}

func TestHasCol(t *testing.T) {
	tbl := New([]string{"a", "b"}, nil)
	if !tbl.HasCol("a") || tbl.HasCol("z") {
		t.Fatalf("HasCol gave wrong answer for a/z")
	}
}
