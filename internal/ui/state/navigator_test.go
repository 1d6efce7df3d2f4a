package state

import (
	"reflect"
	"testing"
)

type testFrame struct {
	kind string
}

func newTestNavigator(kinds ...string) *Navigator[testFrame] {
	items := make([]testFrame, len(kinds))
	for i, k := range kinds {
		items[i] = testFrame{kind: k}
	}
	return NewNavigator(items, func(f testFrame) string { return f.kind }, nil)
}

func selected(t *testing.T, n *Navigator[testFrame]) int {
	t.Helper()
	abs, ok := n.Selected()
	if !ok {
		t.Fatalf("expected a selection")
	}
	return abs
}

func TestBuildCountsDiscriminators(t *testing.T) {
	n := newTestNavigator("A", "B", "A", "C", "B")
	want := []FilterEntry{
		{Key: "A", Label: "A (2)", Enabled: true, Count: 2},
		{Key: "B", Label: "B (2)", Enabled: true, Count: 2},
		{Key: "C", Label: "C (1)", Enabled: true, Count: 1},
	}
	if got := n.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected entries %#v", got)
	}
	if got := n.Display(); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("expected full display list, got %v", got)
	}
	if _, ok := n.Selected(); ok {
		t.Fatalf("expected no initial selection")
	}
}

func TestSelectWithinBounds(t *testing.T) {
	n := newTestNavigator("A", "B", "A", "C", "B")
	for i := 0; i < n.Len(); i++ {
		if !n.Select(i) {
			t.Fatalf("expected select(%d) to succeed", i)
		}
		if got := selected(t, n); got != i {
			t.Fatalf("expected selection %d, got %d", i, got)
		}
	}
}

func TestSelectOutOfBoundsLeavesSelection(t *testing.T) {
	n := newTestNavigator("A", "B")
	n.Select(1)
	n.TakeScroll()
	for _, idx := range []int{-1, 2, 100} {
		if n.Select(idx) {
			t.Fatalf("expected select(%d) to fail", idx)
		}
	}
	if got := selected(t, n); got != 1 {
		t.Fatalf("expected selection unchanged, got %d", got)
	}
	if n.TakeScroll() {
		t.Fatalf("expected failed select not to request a scroll")
	}
}

func TestFilterScenarioFromHiddenSelection(t *testing.T) {
	n := newTestNavigator("A", "B", "A", "C", "B")
	if !n.SetEnabled("B", false) {
		t.Fatalf("expected known key to toggle")
	}
	if got := n.Display(); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Fatalf("expected display [0 2 3], got %v", got)
	}
	if !n.Select(1) {
		t.Fatalf("expected hidden index to be selectable")
	}
	if got := selected(t, n); got != 1 {
		t.Fatalf("expected selection 1, got %d", got)
	}
	if n.Filtered() {
		t.Fatalf("expected filters cleared by hidden select")
	}
	if got := n.Display(); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("expected full display list, got %v", got)
	}
}

func TestFilterClosureAndRestore(t *testing.T) {
	n := newTestNavigator("A", "B", "A", "C", "B", "C")
	before := n.Display()
	n.SetEnabled("C", false)
	if got := n.Display(); !reflect.DeepEqual(got, []int{0, 1, 2, 4}) {
		t.Fatalf("expected C items removed, got %v", got)
	}
	n.SetEnabled("A", false)
	if got := n.Display(); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Fatalf("expected only B items, got %v", got)
	}
	n.SetEnabled("A", true)
	n.SetEnabled("C", true)
	if got := n.Display(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected original order restored, got %v", got)
	}
	if n.SetEnabled("Z", false) {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestClearFiltersIdempotentAndKeepsSelection(t *testing.T) {
	n := newTestNavigator("A", "B", "A")
	n.Select(2)
	n.SetEnabled("B", false)
	n.ClearFilters()
	once := n.Display()
	n.ClearFilters()
	if got := n.Display(); !reflect.DeepEqual(got, once) {
		t.Fatalf("expected idempotent clear, got %v vs %v", got, once)
	}
	if got := selected(t, n); got != 2 {
		t.Fatalf("expected selection kept at 2, got %d", got)
	}
}

func TestSetEnabledMovesHiddenSelection(t *testing.T) {
	n := newTestNavigator("A", "B", "A", "B")
	n.Select(1)
	n.SetEnabled("B", false)
	if got := selected(t, n); got != 2 {
		t.Fatalf("expected selection moved to next displayed item 2, got %d", got)
	}
	n.Select(3)
	n.SetEnabled("B", false)
	if got := selected(t, n); got != 2 {
		t.Fatalf("expected selection moved back to 2, got %d", got)
	}
	n.SetEnabled("A", false)
	if _, ok := n.Selected(); ok {
		t.Fatalf("expected selection cleared when display list is empty")
	}
}

func TestSetOnly(t *testing.T) {
	n := newTestNavigator("A", "B", "C", "B")
	if !n.SetOnly("B") {
		t.Fatalf("expected SetOnly to accept known key")
	}
	if got := n.Display(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("expected only B, got %v", got)
	}
	if n.SetOnly("missing") {
		t.Fatalf("expected unknown key rejected")
	}
	n.SetOnly("")
	if n.Filtered() {
		t.Fatalf("expected empty key to clear filters")
	}
}

func TestNextFromNoSelectionActsAsFirst(t *testing.T) {
	n := newTestNavigator("A", "B", "A", "C", "B")
	n.SetEnabled("A", false)
	for i := 0; i < 3; i++ {
		n.Next()
	}
	pos, ok := n.Position()
	if !ok || pos != 2 {
		t.Fatalf("expected display position 2, got %d (%v)", pos, ok)
	}
	if got := selected(t, n); got != 4 {
		t.Fatalf("expected absolute index 4, got %d", got)
	}

	m := newTestNavigator("A", "B")
	m.Prev()
	if got := selected(t, m); got != 0 {
		t.Fatalf("expected prev without selection to select first, got %d", got)
	}
}

func TestNextPrevRoundTrip(t *testing.T) {
	n := newTestNavigator("A", "B", "C", "D", "E")
	for start := 1; start < 4; start++ {
		n.Select(start)
		n.Next()
		n.Prev()
		if got := selected(t, n); got != start {
			t.Fatalf("expected round trip to %d, got %d", start, got)
		}
	}
}

func TestBoundariesSaturate(t *testing.T) {
	n := newTestNavigator("A", "B", "C")
	n.Select(2)
	if n.Next() {
		t.Fatalf("expected next at end to be a no-op")
	}
	if got := selected(t, n); got != 2 {
		t.Fatalf("expected selection to stay at 2, got %d", got)
	}
	n.Select(0)
	if n.Prev() {
		t.Fatalf("expected prev at start to be a no-op")
	}
	if got := selected(t, n); got != 0 {
		t.Fatalf("expected selection to stay at 0, got %d", got)
	}
}

func TestSingleItemCollection(t *testing.T) {
	n := newTestNavigator("A")
	n.Select(0)
	n.Last()
	if got := selected(t, n); got != 0 {
		t.Fatalf("expected last to yield 0, got %d", got)
	}
	n.First()
	if got := selected(t, n); got != 0 {
		t.Fatalf("expected first to yield 0, got %d", got)
	}
	if n.Next() || n.Prev() {
		t.Fatalf("expected next/prev to be no-ops")
	}
}

func TestEmptyCollection(t *testing.T) {
	n := newTestNavigator()
	if n.First() || n.Last() || n.Next() || n.Prev() {
		t.Fatalf("expected moves on an empty collection to be no-ops")
	}
	if _, ok := n.Selected(); ok {
		t.Fatalf("expected no selection")
	}
	if n.Select(0) {
		t.Fatalf("expected select on empty collection to fail")
	}
}

func TestSelectIdempotent(t *testing.T) {
	n := newTestNavigator("A", "B", "A")
	n.SetEnabled("B", false)
	n.Select(2)
	first := n.Display()
	n.Select(2)
	if got := n.Display(); !reflect.DeepEqual(got, first) {
		t.Fatalf("expected identical display list, got %v vs %v", got, first)
	}
	if !n.Filtered() {
		t.Fatalf("expected filter to survive selecting a displayed item")
	}
}

func TestApplyPageJumps(t *testing.T) {
	kinds := make([]string, 25)
	for i := range kinds {
		kinds[i] = "A"
	}
	n := newTestNavigator(kinds...)
	n.Apply(MovePageDown)
	if got := selected(t, n); got != 0 {
		t.Fatalf("expected first page jump without selection to select first, got %d", got)
	}
	n.Apply(MovePageDown)
	if got := selected(t, n); got != 10 {
		t.Fatalf("expected 10 after page down, got %d", got)
	}
	n.Apply(MovePageDown)
	n.Apply(MovePageDown)
	if got := selected(t, n); got != 24 {
		t.Fatalf("expected page down to saturate at 24, got %d", got)
	}
	n.Apply(MovePageUp)
	if got := selected(t, n); got != 14 {
		t.Fatalf("expected 14 after page up, got %d", got)
	}
	n.Apply(MoveFirst)
	n.Apply(MovePageUp)
	if got := selected(t, n); got != 0 {
		t.Fatalf("expected page up to saturate at 0, got %d", got)
	}
	n.Apply(MoveLast)
	if got := selected(t, n); got != 24 {
		t.Fatalf("expected last to select 24, got %d", got)
	}
}

func TestWindowFollowsPendingScroll(t *testing.T) {
	n := newTestNavigator("A", "B", "C", "D", "E")
	start, end := n.Window(2)
	if start != 0 || end != 2 {
		t.Fatalf("expected initial window [0,2), got [%d,%d)", start, end)
	}
	n.Select(4)
	start, end = n.Window(2)
	if start != 3 || end != 5 {
		t.Fatalf("expected window [3,5) after selecting 4, got [%d,%d)", start, end)
	}
	if n.TakeScroll() {
		t.Fatalf("expected window to consume the pending scroll")
	}
	n.Select(1)
	start, _ = n.Window(3)
	if start != 1 {
		t.Fatalf("expected window aligned with selection, got %d", start)
	}
	start, end = n.Window(0)
	if start != end {
		t.Fatalf("expected an empty window without rows, got [%d,%d)", start, end)
	}
	start, end = n.Window(-1)
	if start != end {
		t.Fatalf("expected an empty window for negative rows, got [%d,%d)", start, end)
	}
}

func TestWindowKeepsScrollUntilRowsAreAvailable(t *testing.T) {
	n := newTestNavigator("A", "B", "C", "D", "E")
	n.Select(4)
	if start, end := n.Window(0); start != end {
		t.Fatalf("expected an empty window, got [%d,%d)", start, end)
	}
	start, end := n.Window(2)
	if start != 3 || end != 5 {
		t.Fatalf("expected the deferred scroll to reveal 4, got [%d,%d)", start, end)
	}
}
