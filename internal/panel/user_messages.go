package panel

import (
	"fmt"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
)

// UserMessages lists every user message extracted from the packet frames.
type UserMessages struct {
	file     *demo.File
	messages *messageList[demo.UserMessage]
	focus    focus.Target
}

func NewUserMessages(file *demo.File) *UserMessages {
	l := newMessageList(event.UserMessages, NameUserMessages, file.UserMessages)
	l.interval = file.TickInterval()
	l.tick = func(m demo.UserMessage) int32 {
		if m.Frame < len(file.Frames) {
			return file.Frames[m.Frame].Tick
		}
		return 0
	}
	return &UserMessages{file: file, messages: l, focus: l.target()}
}

func (u *UserMessages) panel() {}

func (u *UserMessages) Name() string { return NameUserMessages }

func (u *UserMessages) Focus() focus.Target { return u.focus }

func (u *UserMessages) SetFocus(t focus.Target) { u.focus = t }

// Selected returns the absolute index of the selected user message.
func (u *UserMessages) Selected() (int, bool) { return u.messages.nav.Selected() }

// Display returns the displayed user message indices.
func (u *UserMessages) Display() []int { return u.messages.nav.Display() }

func (u *UserMessages) Navigate(t focus.Target, move state.Move) bool {
	if t != u.messages.target() {
		return false
	}
	u.messages.nav.Apply(move)
	return true
}

func (u *UserMessages) Filter(t focus.Target) (Filter, bool) {
	if t != u.messages.target() {
		return Filter{}, false
	}
	return u.messages.filter(), true
}

func (u *UserMessages) HandleEvent(evt event.Event) bool {
	return u.messages.handle(evt)
}

func (u *UserMessages) Act(a Action, out *event.Batch) bool {
	switch a {
	case ActionGoto:
		m, ok := u.messages.nav.SelectedItem()
		if !ok {
			return false
		}
		out.Emit(
			event.SwitchTool{Name: NameFrames},
			event.SelectItem{List: event.Frames, Index: m.Frame},
			event.SelectItem{List: event.PacketDataMessages, Index: m.Message},
		)
		return true
	case ActionToggleNone:
		u.messages.hideNone = !u.messages.hideNone
		return true
	case ActionCopy:
		text, ok := u.messages.copyText()
		if ok {
			out.Emit(event.CopyText{Text: text})
		}
		return ok
	case ActionClearFilter:
		out.Emit(event.ClearFilter{List: event.UserMessages})
		return true
	}
	return false
}

func (u *UserMessages) Draw(s *draw.Surface, _ *event.Batch) {
	left := maxFrameListWidth
	if s.Width > 0 && s.Width/2 < left {
		left = s.Width / 2
	}
	cols := s.Columns(left, 0)
	u.messages.drawList(cols[0], u.focus == u.messages.target())
	var extra []string
	if m, ok := u.messages.nav.SelectedItem(); ok {
		extra = append(extra, fmt.Sprintf("frame #%d, message #%d (g: go to)", m.Frame, m.Message))
	}
	u.messages.drawDetail(cols[1], extra)
	s.Join(cols...)
}
