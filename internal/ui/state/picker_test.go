package state

import (
	"reflect"
	"testing"
)

func newTestPicker(labels ...string) *Picker {
	items := make([]PickerItem, len(labels))
	for i, label := range labels {
		items[i] = PickerItem{ID: label, Label: label}
	}
	return NewPicker("Test", items)
}

func TestPickerCursorMoves(t *testing.T) {
	p := newTestPicker("a", "b", "c", "d", "e")
	if p.MoveCursorUp() {
		t.Fatalf("expected no movement above the first row")
	}
	if !p.MoveCursorEnd() || p.Cursor != 4 {
		t.Fatalf("expected cursor at end, got %d", p.Cursor)
	}
	if p.MoveCursorDown() {
		t.Fatalf("expected no movement past the last row")
	}
	if !p.MoveCursorPageUp(2) || p.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", p.Cursor)
	}
	if !p.MoveCursorHome() || p.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", p.Cursor)
	}
	if !p.MoveCursorPageDown(10) || p.Cursor != 4 {
		t.Fatalf("expected page down to clamp at 4, got %d", p.Cursor)
	}

	empty := newTestPicker()
	if empty.MoveCursorHome() || empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty picker")
	}
}

func TestPickerEnsureCursorVisible(t *testing.T) {
	p := newTestPicker("a", "b", "c", "d", "e")
	p.Cursor = 4
	p.EnsureCursorVisible(2)
	if p.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", p.ViewportOffset)
	}
	p.Cursor = 1
	p.EnsureCursorVisible(3)
	if p.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", p.ViewportOffset)
	}
	p.EnsureCursorVisible(0)
	if p.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", p.ViewportOffset)
	}
}

func TestPickerSetFilterTracksCursorAndRestores(t *testing.T) {
	p := newTestPicker("player_death", "round_start", "round_end")
	p.Cursor = 2
	p.SetFilter("death", len("death"))
	if len(p.Items) != 1 || p.Items[0].ID != "player_death" {
		t.Fatalf("expected only player_death, got %#v", p.Items)
	}
	if p.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", p.Cursor)
	}
	p.SetFilter("", 0)
	if p.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", p.Cursor)
	}
	if p.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", p.LastCursor)
	}
}

func TestPickerQueryEditing(t *testing.T) {
	p := newTestPicker("alpha")
	if !p.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	p.FilterCursor = 1
	p.InsertFilterText("z")
	if p.Filter != "azb" || p.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", p.Filter, p.FilterCursor)
	}
	if !p.DeleteFilterRuneBackward() || p.Filter != "ab" || p.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", p.Filter, p.FilterCursor)
	}
	if !p.MoveFilterCursorRuneForward() || p.FilterCursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", p.FilterCursor)
	}
	if p.MoveFilterCursorRuneForward() {
		t.Fatal("expected no movement past the end")
	}
	if !p.MoveFilterCursorRuneBackward() || p.FilterCursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", p.FilterCursor)
	}
	p.SetFilter("abc def", len("abc def"))
	if !p.DeleteFilterWordBackward() || p.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", p.Filter)
	}
	p.SetFilter("abc", 0)
	if p.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterItems(t *testing.T) {
	items := []PickerItem{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	filtered := FilterItems(items, "alp")
	if len(filtered) != 1 || filtered[0].Label != "Alpha" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	filtered = FilterItems(items, "ta")
	if len(filtered) != 1 || filtered[0].Label != "Beta" {
		t.Fatalf("expected match for Beta, got %#v", filtered)
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
	all := FilterItems(items, "  ")
	all[0].Label = "changed"
	if items[0].Label != "Alpha" {
		t.Fatal("expected original slice to remain unchanged")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []PickerItem{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}
	if idx := BestMatchIndex(items, "second"); idx != 1 {
		t.Fatalf("expected exact label match at 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "thr"); idx != 2 {
		t.Fatalf("expected id prefix match at 2, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for no items, got %d", idx)
	}
}

func TestFilterPickerFromEntries(t *testing.T) {
	entries := []FilterEntry{
		{Key: "A", Label: "A (2)", Enabled: false, Count: 2},
		{Key: "B", Label: "B (1)", Enabled: true, Count: 1},
	}
	p := FilterPicker("Filter", entries)
	want := []PickerItem{{ID: "", Label: "None"}, {ID: "A", Label: "A (2)"}, {ID: "B", Label: "B (1)"}}
	if !reflect.DeepEqual(p.Items, want) {
		t.Fatalf("unexpected picker items %#v", p.Items)
	}
	if item, ok := p.Current(); !ok || item.ID != "B" {
		t.Fatalf("expected cursor on the enabled entry, got %#v", item)
	}
	entries[0].Enabled = true
	p = FilterPicker("Filter", entries)
	if item, _ := p.Current(); item.ID != "" {
		t.Fatalf("expected cursor on None when unfiltered, got %#v", item)
	}
}
