package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"#", "Tick", "Command"},
		{"1", "0", "dem_synctick"},
		{"12", "640", "dem_packet"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignRight, AlignLeft})
	want := []string{
		" #  Tick  Command",
		" 1     0  dem_synctick",
		"12   640  dem_packet",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatWideRunesAndRaggedRows(t *testing.T) {
	rows := [][]string{
		{"名前", "x"},
		{"ab"},
	}
	got := Format(rows, nil)
	want := []string{"名前  x", "ab    "}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table %q", got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
