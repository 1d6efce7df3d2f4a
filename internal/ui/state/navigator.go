package state

import (
	"fmt"
	"sort"
)

// JumpRange is the number of display rows moved by a page jump.
const JumpRange = 10

// Move is a keyboard-level navigation request.
type Move int

const (
	MoveNext Move = iota
	MovePrev
	MoveFirst
	MoveLast
	MovePageDown
	MovePageUp
)

func (m Move) String() string {
	switch m {
	case MoveNext:
		return "next"
	case MovePrev:
		return "prev"
	case MoveFirst:
		return "first"
	case MoveLast:
		return "last"
	case MovePageDown:
		return "page-down"
	case MovePageUp:
		return "page-up"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// FilterEntry describes one discriminator value of a navigator.
type FilterEntry struct {
	Key     string
	Label   string
	Enabled bool
	Count   int
}

// Navigator is a cursor over an ordered collection with discriminator
// filters. Items keep their absolute index for the navigator's lifetime; the
// display list is the ordered subset whose discriminator is enabled, and the
// selection is always a member of it.
type Navigator[T any] struct {
	items   []T
	keys    []string
	entries map[string]*FilterEntry
	order   []string

	display  []int
	position map[int]int

	selected int
	scroll   bool
	offset   int
}

// NewNavigator builds a navigator with every filter enabled. key returns the
// discriminator of an item; label may be nil, in which case entries are
// labelled "key (count)".
func NewNavigator[T any](items []T, key func(T) string, label func(key string, count int) string) *Navigator[T] {
	if label == nil {
		label = DefaultLabel
	}
	n := &Navigator[T]{
		items:    items,
		keys:     make([]string, len(items)),
		entries:  make(map[string]*FilterEntry),
		selected: -1,
	}
	for i, item := range items {
		k := key(item)
		n.keys[i] = k
		entry, ok := n.entries[k]
		if !ok {
			entry = &FilterEntry{Key: k, Enabled: true}
			n.entries[k] = entry
			n.order = append(n.order, k)
		}
		entry.Count++
	}
	for _, entry := range n.entries {
		entry.Label = label(entry.Key, entry.Count)
	}
	sort.SliceStable(n.order, func(i, j int) bool {
		return n.entries[n.order[i]].Label < n.entries[n.order[j]].Label
	})
	n.rebuild()
	return n
}

// DefaultLabel renders a filter entry as "key (count)".
func DefaultLabel(key string, count int) string {
	return fmt.Sprintf("%s (%d)", key, count)
}

func (n *Navigator[T]) rebuild() {
	n.display = n.display[:0]
	n.position = make(map[int]int, len(n.items))
	for i, k := range n.keys {
		if n.entries[k].Enabled {
			n.position[i] = len(n.display)
			n.display = append(n.display, i)
		}
	}
}

// Len returns the size of the backing collection.
func (n *Navigator[T]) Len() int { return len(n.items) }

// Item returns the item at an absolute index.
func (n *Navigator[T]) Item(abs int) (T, bool) {
	var zero T
	if abs < 0 || abs >= len(n.items) {
		return zero, false
	}
	return n.items[abs], true
}

// Display returns a copy of the display list.
func (n *Navigator[T]) Display() []int {
	out := make([]int, len(n.display))
	copy(out, n.display)
	return out
}

// DisplayLen returns the number of displayed items.
func (n *Navigator[T]) DisplayLen() int { return len(n.display) }

// At returns the absolute index shown at a display position.
func (n *Navigator[T]) At(pos int) (int, bool) {
	if pos < 0 || pos >= len(n.display) {
		return 0, false
	}
	return n.display[pos], true
}

// Entries returns the filter entries ordered by label.
func (n *Navigator[T]) Entries() []FilterEntry {
	out := make([]FilterEntry, 0, len(n.order))
	for _, k := range n.order {
		out = append(out, *n.entries[k])
	}
	return out
}

// Filtered reports whether any entry is disabled.
func (n *Navigator[T]) Filtered() bool {
	for _, entry := range n.entries {
		if !entry.Enabled {
			return true
		}
	}
	return false
}

// SetEnabled toggles one filter entry. It returns false for an unknown key.
// When the selection becomes hidden it moves to the nearest displayed item,
// or is cleared when nothing remains displayed.
func (n *Navigator[T]) SetEnabled(key string, enabled bool) bool {
	entry, ok := n.entries[key]
	if !ok {
		return false
	}
	if entry.Enabled == enabled {
		return true
	}
	entry.Enabled = enabled
	n.rebuild()
	n.reconcileSelection()
	return true
}

// SetOnly enables a single entry and disables every other one. An empty key
// clears all filters.
func (n *Navigator[T]) SetOnly(key string) bool {
	if key == "" {
		n.ClearFilters()
		return true
	}
	if _, ok := n.entries[key]; !ok {
		return false
	}
	for k, entry := range n.entries {
		entry.Enabled = k == key
	}
	n.rebuild()
	n.reconcileSelection()
	return true
}

// ClearFilters enables every entry. The selection is unchanged.
func (n *Navigator[T]) ClearFilters() {
	for _, entry := range n.entries {
		entry.Enabled = true
	}
	n.rebuild()
}

func (n *Navigator[T]) reconcileSelection() {
	if n.selected < 0 {
		return
	}
	if _, ok := n.position[n.selected]; ok {
		return
	}
	next := sort.SearchInts(n.display, n.selected)
	switch {
	case next < len(n.display):
		n.selected = n.display[next]
	case len(n.display) > 0:
		n.selected = n.display[len(n.display)-1]
	default:
		n.selected = -1
	}
	n.scroll = n.selected >= 0
}

// Select makes abs the active selection, clearing filters first when abs is
// hidden. It fails only when abs is outside the collection.
func (n *Navigator[T]) Select(abs int) bool {
	if abs < 0 || abs >= len(n.items) {
		return false
	}
	if _, ok := n.position[abs]; !ok {
		n.ClearFilters()
	}
	n.selected = abs
	n.scroll = true
	return true
}

// Deselect clears the active selection.
func (n *Navigator[T]) Deselect() {
	n.selected = -1
}

// Selected returns the absolute index of the active selection.
func (n *Navigator[T]) Selected() (int, bool) {
	if n.selected < 0 {
		return 0, false
	}
	return n.selected, true
}

// SelectedItem returns the selected item.
func (n *Navigator[T]) SelectedItem() (T, bool) {
	if n.selected < 0 {
		var zero T
		return zero, false
	}
	return n.items[n.selected], true
}

// Position returns the display position of the selection.
func (n *Navigator[T]) Position() (int, bool) {
	if n.selected < 0 {
		return 0, false
	}
	pos, ok := n.position[n.selected]
	return pos, ok
}

// Next moves to the following displayed item; without a selection it
// behaves as First.
func (n *Navigator[T]) Next() bool { return n.step(1) }

// Prev moves to the preceding displayed item; without a selection it
// behaves as First.
func (n *Navigator[T]) Prev() bool { return n.step(-1) }

// Jump moves delta display rows, saturating at either end.
func (n *Navigator[T]) Jump(delta int) bool { return n.step(delta) }

// First selects the first displayed item.
func (n *Navigator[T]) First() bool {
	if len(n.display) == 0 {
		return false
	}
	return n.moveTo(0)
}

// Last selects the last displayed item.
func (n *Navigator[T]) Last() bool {
	if len(n.display) == 0 {
		return false
	}
	return n.moveTo(len(n.display) - 1)
}

// Apply performs a keyboard move and reports whether the selection changed.
func (n *Navigator[T]) Apply(m Move) bool {
	switch m {
	case MoveNext:
		return n.Next()
	case MovePrev:
		return n.Prev()
	case MoveFirst:
		return n.First()
	case MoveLast:
		return n.Last()
	case MovePageDown:
		return n.Jump(JumpRange)
	case MovePageUp:
		return n.Jump(-JumpRange)
	default:
		return false
	}
}

func (n *Navigator[T]) step(delta int) bool {
	pos, ok := n.Position()
	if !ok {
		return n.First()
	}
	target := pos + delta
	if target < 0 {
		target = 0
	}
	if target > len(n.display)-1 {
		target = len(n.display) - 1
	}
	return n.moveTo(target)
}

func (n *Navigator[T]) moveTo(pos int) bool {
	abs := n.display[pos]
	if abs == n.selected {
		return false
	}
	n.selected = abs
	n.scroll = true
	return true
}

// TakeScroll reports and clears the pending scroll-to-selection flag.
func (n *Navigator[T]) TakeScroll() bool {
	pending := n.scroll
	n.scroll = false
	return pending
}

// Window returns the [start, end) display positions to render in rows
// lines. A pending scroll brings the selection into view. No rows yields an
// empty window; the pending scroll is kept for the next draw with room.
func (n *Navigator[T]) Window(rows int) (int, int) {
	total := len(n.display)
	if total == 0 {
		n.offset = 0
		n.TakeScroll()
		return 0, 0
	}
	if rows <= 0 {
		return n.offset, n.offset
	}
	maxOffset := total - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.TakeScroll() {
		if pos, ok := n.Position(); ok {
			if pos < n.offset {
				n.offset = pos
			}
			if pos > n.offset+rows-1 {
				n.offset = pos - rows + 1
			}
		}
	}
	if n.offset > maxOffset {
		n.offset = maxOffset
	}
	if n.offset < 0 {
		n.offset = 0
	}
	end := n.offset + rows
	if end > total {
		end = total
	}
	return n.offset, end
}
