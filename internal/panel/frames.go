package panel

import (
	"fmt"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/format/table"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
)

const maxFrameListWidth = 64

// Frames lists a frame sequence filtered by command. Selecting a packet
// frame opens its net messages; selecting a data-tables frame opens the
// schema view.
type Frames struct {
	name     string
	list     event.List
	file     *demo.File
	linked   bool
	nav      *state.Navigator[demo.Frame]
	focus    focus.Target
	current  int
	packet   *messageList[demo.NetMessage]
	schema   *SchemaTables
	hideNone bool
	// message index restored when moving between packet frames
	lastMessage int
	refocus     bool
}

// SignOnFrames is the Frames view over the sign-on sequence. Its messages
// carry no cross references.
type SignOnFrames struct {
	*Frames
}

// NewFrames builds the panel over the regular frame sequence.
func NewFrames(file *demo.File) *Frames {
	return newFrames(NameFrames, event.Frames, file, file.Frames, true)
}

// NewSignOnFrames builds the panel over the sign-on frame sequence.
func NewSignOnFrames(file *demo.File) *SignOnFrames {
	return &SignOnFrames{newFrames(NameSignOnFrames, event.SignOnFrames, file, file.SignOnFrames, false)}
}

func newFrames(name string, list event.List, file *demo.File, frames []demo.Frame, linked bool) *Frames {
	f := &Frames{
		name:        name,
		list:        list,
		file:        file,
		linked:      linked,
		nav:         state.NewNavigator(frames, func(fr demo.Frame) string { return fr.Command.String() }, nil),
		current:     -1,
		lastMessage: -1,
	}
	f.focus = f.frameTarget()
	return f
}

func (f *Frames) panel() {}

func (f *Frames) Name() string { return f.name }

func (f *Frames) Focus() focus.Target { return f.focus }

func (f *Frames) SetFocus(t focus.Target) { f.focus = t }

func (f *Frames) frameTarget() focus.Target { return focus.FrameList(string(f.list)) }

// Selected returns the absolute index of the selected frame.
func (f *Frames) Selected() (int, bool) { return f.nav.Selected() }

// SelectedMessage returns the selected net message of the open packet.
func (f *Frames) SelectedMessage() (int, bool) {
	if f.packet == nil {
		return 0, false
	}
	return f.packet.nav.Selected()
}

// Display returns the displayed frame indices.
func (f *Frames) Display() []int { return f.nav.Display() }

// targets lists the focusable lists in tab order.
func (f *Frames) targets() []focus.Target {
	targets := []focus.Target{f.frameTarget()}
	if f.packet != nil {
		targets = append(targets, f.packet.target())
	}
	if f.schema != nil && f.schema.mode == ModeSendTables {
		targets = append(targets, f.schema.Focus())
	}
	return targets
}

// Navigate applies a move to the list owning t. It returns false when this
// panel owns no such list.
func (f *Frames) Navigate(t focus.Target, move state.Move) bool {
	switch {
	case t == f.frameTarget():
		if f.nav.Apply(move) {
			f.sync()
		}
		return true
	case f.packet != nil && t == f.packet.target():
		f.packet.nav.Apply(move)
		return true
	case f.schema != nil && t == f.schema.Focus():
		return f.schema.Navigate(move)
	}
	return false
}

// sync rebuilds the nested view after the frame selection changed.
func (f *Frames) sync() {
	abs, ok := f.nav.Selected()
	if !ok || abs == f.current {
		return
	}
	if f.packet != nil {
		if msg, ok := f.packet.nav.Selected(); ok {
			f.lastMessage = msg
		}
	}
	hadNested := f.focus != f.frameTarget()
	f.current = abs
	f.packet = nil
	f.schema = nil
	frame, _ := f.nav.Item(abs)
	switch {
	case frame.Packet != nil:
		f.packet = newMessageList(event.PacketDataMessages, "Packet Data", frame.Packet.Messages)
		f.packet.hideNone = f.hideNone
		if f.lastMessage >= 0 && f.lastMessage < len(frame.Packet.Messages) {
			f.packet.nav.Select(f.lastMessage)
		}
	case frame.DataTables != nil:
		f.schema = NewSchemaTables(frame.DataTables)
	}
	if hadNested && !f.owns(f.focus) {
		f.refocus = true
	}
}

func (f *Frames) owns(t focus.Target) bool {
	for _, candidate := range f.targets() {
		if candidate == t {
			return true
		}
	}
	return false
}

func (f *Frames) HandleEvent(evt event.Event) bool {
	switch e := evt.(type) {
	case event.SelectItem:
		if e.List == f.list {
			ok := selectTraced(f.nav, e)
			if ok {
				f.sync()
			}
			return ok
		}
	case event.SetFilter:
		if e.List == f.list {
			ok := setFilterTraced(f.nav, e)
			f.sync()
			return ok
		}
	case event.ClearFilter:
		if e.List == f.list {
			f.nav.ClearFilters()
			events.Filter.Cleared(string(f.list))
			return true
		}
	}
	if f.packet != nil && f.packet.handle(evt) {
		return true
	}
	if f.schema != nil && f.schema.HandleEvent(evt) {
		return true
	}
	return false
}

// Act runs a panel command against the focused list.
func (f *Frames) Act(a Action, out *event.Batch) bool {
	switch a {
	case ActionGoto:
		return f.gotoReference(out)
	case ActionCycleFocus:
		targets := f.targets()
		if len(targets) < 2 {
			return false
		}
		next := targets[0]
		for i, t := range targets {
			if t == f.focus {
				next = targets[(i+1)%len(targets)]
				break
			}
		}
		out.Emit(event.SetFocus{Target: next})
		return true
	case ActionToggleNone:
		if f.packet == nil {
			return false
		}
		f.hideNone = !f.hideNone
		f.packet.hideNone = f.hideNone
		return true
	case ActionClearFilter:
		if filter, ok := f.Filter(f.focus); ok {
			out.Emit(event.ClearFilter{List: filter.List})
			return true
		}
	case ActionCopy:
		text, ok := f.copyText()
		if ok {
			out.Emit(event.CopyText{Text: text})
		}
		return ok
	case ActionToggleMode:
		if f.schema == nil {
			return false
		}
		f.schema.ToggleMode()
		if f.focus == f.schema.Focus() && f.schema.mode != ModeSendTables {
			out.Emit(event.SetFocus{Target: f.frameTarget()})
		}
		return true
	}
	return false
}

func (f *Frames) gotoReference(out *event.Batch) bool {
	if !f.linked || f.packet == nil || f.focus != f.packet.target() {
		return false
	}
	msg, ok := f.packet.nav.Selected()
	if !ok {
		return false
	}
	if idx, ok := f.file.UserMessageAt(f.current, msg); ok {
		out.Emit(event.SwitchTool{Name: NameUserMessages}, event.SelectItem{List: event.UserMessages, Index: idx})
		return true
	}
	if idx, ok := f.file.GameEventAt(f.current, msg); ok {
		out.Emit(event.SwitchTool{Name: NameGameEvents}, event.SelectItem{List: event.GameEvents, Index: idx})
		return true
	}
	return false
}

// Filter returns the filter entries of the list owning t.
func (f *Frames) Filter(t focus.Target) (Filter, bool) {
	switch {
	case t == f.frameTarget():
		return Filter{List: f.list, Title: "Filter " + f.name, Entries: f.nav.Entries()}, true
	case f.packet != nil && t == f.packet.target():
		return f.packet.filter(), true
	case f.schema != nil && t == f.schema.Focus():
		return f.schema.Filter(), true
	}
	return Filter{}, false
}

func (f *Frames) Draw(s *draw.Surface, out *event.Batch) {
	if f.refocus {
		f.refocus = false
		out.Emit(event.SetFocus{Target: f.frameTarget()})
	}
	if f.packet == nil && f.schema == nil {
		f.drawFrameList(s)
		return
	}
	left := maxFrameListWidth
	if s.Width > 0 && s.Width/2 < left {
		left = s.Width / 2
	}
	cols := s.Columns(left, 0)
	f.drawFrameList(cols[0])
	if f.packet != nil {
		f.drawPacket(cols[1])
	} else {
		f.schema.drawNested(cols[1], f.focus == f.schema.Focus())
	}
	s.Join(cols...)
}

func (f *Frames) drawFrameList(s *draw.Surface) {
	title := fmt.Sprintf("%s (%d)", f.name, f.nav.Len())
	if status := filterStatus(f.nav.Entries()); status != "" {
		title += "  " + status
	}
	listTitle(s, title, f.focus == f.frameTarget())
	interval := f.file.TickInterval()
	drawRows(s, f.nav,
		[]string{"#", "Tick", "Time", "Slot", "Command"},
		func(abs int, fr demo.Frame) []string {
			row := []string{fmt.Sprintf("%d", abs)}
			row = append(row, tickColumns(interval, fr.Tick)...)
			return append(row, fmt.Sprintf("%d", fr.PlayerSlot), fr.Describe())
		},
		[]table.Alignment{table.AlignRight, table.AlignRight, table.AlignRight, table.AlignRight},
	)
}

func (f *Frames) drawPacket(s *draw.Surface) {
	listRows := f.packet.nav.Len() + 3
	if h := s.Remaining(); h > 0 && listRows > h/2 {
		listRows = h / 2
	}
	upper := draw.New(s.Width, listRows)
	f.packet.drawList(upper, f.focus == f.packet.target())
	s.AddRaw(upper.Block())

	var extra []string
	if msg, ok := f.packet.nav.Selected(); ok && f.linked {
		if idx, ok := f.file.UserMessageAt(f.current, msg); ok {
			extra = append(extra, fmt.Sprintf("user message #%d (g: go to)", idx))
		} else if idx, ok := f.file.GameEventAt(f.current, msg); ok {
			extra = append(extra, fmt.Sprintf("game event #%d (g: go to)", idx))
		}
	}
	f.packet.drawDetail(s, extra)
}

// copyText renders the selection of the focused list: the open message, the
// selected send table or the selected frame.
func (f *Frames) copyText() (string, bool) {
	switch {
	case f.packet != nil && f.focus == f.packet.target():
		return f.packet.copyText()
	case f.schema != nil && f.focus == f.schema.Focus():
		return f.schema.copyText()
	}
	abs, ok := f.nav.Selected()
	if !ok {
		return "", false
	}
	frame, _ := f.nav.Item(abs)
	return fmt.Sprintf("frame #%d tick %d player %d: %s", abs, frame.Tick, frame.PlayerSlot, frame.Describe()), true
}
