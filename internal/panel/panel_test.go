package panel

import (
	"os"
	"strings"
	"testing"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/testutil"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	cleanup := testutil.IsolateLogging()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func render(p Panel, width, height int) (string, event.Batch) {
	s := draw.New(width, height)
	var out event.Batch
	p.Draw(s, &out)
	return ansi.Strip(s.Render()), out
}

func packetTarget() focus.Target { return focus.MessageList(string(event.PacketDataMessages)) }

func TestNewOrdersTools(t *testing.T) {
	panels := New(testutil.SampleFile(t))
	names := make([]string, len(panels))
	for i, p := range panels {
		names[i] = p.Name()
	}
	assert.Equal(t, []string{"?", "Header", "Server Info", "Frames", "Sign On Frames", "User Messages", "Game Events", "Tasks"}, names)
	assert.Equal(t, focus.None(), panels[1].Focus())
	assert.Equal(t, focus.FrameList("frames"), panels[3].Focus())
	assert.Equal(t, focus.FrameList("sign_on_frames"), panels[4].Focus())
	assert.Equal(t, focus.MessageList("user_messages"), panels[5].Focus())
	assert.Equal(t, focus.GameEventList("game_events"), panels[6].Focus())
}

func TestFramesSelectPacketOpensMessages(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	require.True(t, f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2}))

	assert.True(t, f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 1}))
	msg, ok := f.SelectedMessage()
	require.True(t, ok)
	assert.Equal(t, 1, msg)

	assert.False(t, f.HandleEvent(event.SelectItem{List: event.Frames, Index: 99}))
	abs, _ := f.Selected()
	assert.Equal(t, 2, abs)
}

func TestFramesKeepsMessageIndexAcrossPackets(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2})
	f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 2})

	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 3})
	_, ok := f.SelectedMessage()
	assert.False(t, ok, "console command frame has no messages")

	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 4})
	msg, ok := f.SelectedMessage()
	require.True(t, ok)
	assert.Equal(t, 2, msg)
}

func TestFramesFilterByCommand(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	require.True(t, f.HandleEvent(event.SetFilter{List: event.Frames, Key: "dem_packet"}))
	assert.Equal(t, []int{2, 4}, f.Display())

	require.True(t, f.HandleEvent(event.SelectItem{List: event.Frames, Index: 3}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, f.Display())

	f.HandleEvent(event.SetFilter{List: event.Frames, Key: "dem_packet"})
	require.True(t, f.HandleEvent(event.ClearFilter{List: event.Frames}))
	assert.Len(t, f.Display(), 6)
}

func TestFramesNavigateOnlyOwnedTargets(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	assert.True(t, f.Navigate(focus.FrameList("frames"), state.MoveNext))
	abs, ok := f.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, abs)

	assert.False(t, f.Navigate(focus.FrameList("sign_on_frames"), state.MoveNext))
	assert.False(t, f.Navigate(packetTarget(), state.MoveNext))

	f.Navigate(focus.FrameList("frames"), state.MoveLast)
	abs, _ = f.Selected()
	assert.Equal(t, 5, abs)
}

func TestFramesGotoUserMessageAndGameEvent(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2})
	f.SetFocus(packetTarget())
	f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 1})

	var out event.Batch
	require.True(t, f.Act(ActionGoto, &out))
	assert.Equal(t, event.Batch{
		event.SwitchTool{Name: NameUserMessages},
		event.SelectItem{List: event.UserMessages, Index: 0},
	}, out)

	out = nil
	f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 2})
	require.True(t, f.Act(ActionGoto, &out))
	assert.Equal(t, event.Batch{
		event.SwitchTool{Name: NameGameEvents},
		event.SelectItem{List: event.GameEvents, Index: 0},
	}, out)

	out = nil
	f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 0})
	assert.False(t, f.Act(ActionGoto, &out))
	assert.Empty(t, out)
}

func TestSignOnFramesHaveNoCrossReferences(t *testing.T) {
	s := NewSignOnFrames(testutil.SampleFile(t))
	require.True(t, s.HandleEvent(event.SelectItem{List: event.SignOnFrames, Index: 0}))
	s.SetFocus(packetTarget())
	var out event.Batch
	assert.False(t, s.Act(ActionGoto, &out))
	assert.False(t, s.HandleEvent(event.SelectItem{List: event.Frames, Index: 0}))
}

func TestFramesCycleFocus(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	var out event.Batch
	assert.False(t, f.Act(ActionCycleFocus, &out), "no nested list yet")

	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2})
	require.True(t, f.Act(ActionCycleFocus, &out))
	assert.Equal(t, event.Batch{event.SetFocus{Target: packetTarget()}}, out)

	f.SetFocus(packetTarget())
	out = nil
	f.Act(ActionCycleFocus, &out)
	assert.Equal(t, event.Batch{event.SetFocus{Target: focus.FrameList("frames")}}, out)
}

func TestFramesRefocusWhenNestedListCloses(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2})
	f.SetFocus(packetTarget())
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 3})

	_, out := render(f, 120, 30)
	assert.Equal(t, event.Batch{event.SetFocus{Target: focus.FrameList("frames")}}, out)
	_, out = render(f, 120, 30)
	assert.Empty(t, out)
}

func TestFramesSchemaTables(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 1})
	require.NotNil(t, f.schema)
	target := focus.SchemaTableList(string(event.SendTables))

	assert.False(t, f.Navigate(target, state.MoveNext), "class mode ignores keys")
	var out event.Batch
	require.True(t, f.Act(ActionToggleMode, &out))
	assert.Equal(t, ModeSendTables, f.schema.Mode())
	assert.True(t, f.Navigate(target, state.MoveNext))
	abs, ok := f.schema.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, abs)

	view, _ := render(f, 140, 30)
	assert.Contains(t, view, "Props: DT_World")
	assert.Contains(t, view, "m_nModelIndex")

	f.SetFocus(target)
	out = nil
	f.Act(ActionToggleMode, &out)
	assert.Equal(t, event.Batch{event.SetFocus{Target: focus.FrameList("frames")}}, out)
}

func TestSchemaTablesShowSendTableWarnings(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 1})
	require.NotNil(t, f.schema)
	target := focus.SchemaTableList(string(event.SendTables))
	var out event.Batch
	require.True(t, f.Act(ActionToggleMode, &out))
	require.True(t, f.Navigate(target, state.MoveNext))
	require.True(t, f.Navigate(target, state.MoveNext))
	abs, ok := f.schema.Selected()
	require.True(t, ok)
	require.Equal(t, 1, abs)

	view, _ := render(f, 140, 40)
	assert.Contains(t, view, "Props: DT_Player")
	assert.Contains(t, view, "warning: repeated field props")
	assert.Contains(t, view, "warning:   unknown field m_flScale")

	data, err := os.ReadFile(logging.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "send_tables[1] DT_Player:")
}

func TestFramesToggleNoneCarriesOver(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2})
	f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 0})

	view, _ := render(f, 160, 40)
	assert.Contains(t, view, "host_error")

	var out event.Batch
	require.True(t, f.Act(ActionToggleNone, &out))
	view, _ = render(f, 160, 40)
	assert.NotContains(t, view, "host_error")

	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 4})
	assert.True(t, f.packet.hideNone)
}

func TestFramesDrawListsRows(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	view, _ := render(f, 100, 20)
	assert.Contains(t, view, "Frames (6)")
	assert.Contains(t, view, "dem_consolecmd \"+attack\"")
	assert.Contains(t, view, "0.500s")

	f.HandleEvent(event.SetFilter{List: event.Frames, Key: "dem_packet"})
	view, _ = render(f, 100, 20)
	assert.Contains(t, view, "filter: dem_packet")
}

func TestUserMessagesGotoFrame(t *testing.T) {
	u := NewUserMessages(testutil.SampleFile(t))
	var out event.Batch
	assert.False(t, u.Act(ActionGoto, &out))

	require.True(t, u.HandleEvent(event.SelectItem{List: event.UserMessages, Index: 1}))
	require.True(t, u.Act(ActionGoto, &out))
	assert.Equal(t, event.Batch{
		event.SwitchTool{Name: NameFrames},
		event.SelectItem{List: event.Frames, Index: 4},
		event.SelectItem{List: event.PacketDataMessages, Index: 0},
	}, out)
}

func TestUserMessagesDrawShowsFlattenedFields(t *testing.T) {
	u := NewUserMessages(testutil.SampleFile(t))
	u.HandleEvent(event.SelectItem{List: event.UserMessages, Index: 0})
	view, _ := render(u, 160, 30)
	assert.Contains(t, view, "params[1]")
	assert.Contains(t, view, "chat.team")
	assert.Contains(t, view, "missing field ent_idx")
	assert.Contains(t, view, "frame #2, message #1")
}

func TestGameEventsFilterAndGoto(t *testing.T) {
	g := NewGameEvents(testutil.SampleFile(t))
	filter, ok := g.Filter(g.Focus())
	require.True(t, ok)
	require.Len(t, filter.Entries, 2)
	assert.Equal(t, "player_death (1)", filter.Entries[0].Label)

	require.True(t, g.HandleEvent(event.SetFilter{List: event.GameEvents, Key: "round_start"}))
	assert.Equal(t, []int{1}, g.Display())
	assert.True(t, g.Navigate(g.Focus(), state.MoveNext))

	var out event.Batch
	require.True(t, g.Act(ActionGoto, &out))
	assert.Equal(t, event.Batch{
		event.SwitchTool{Name: NameFrames},
		event.SelectItem{List: event.Frames, Index: 4},
		event.SelectItem{List: event.PacketDataMessages, Index: 1},
	}, out)

	view, _ := render(g, 120, 20)
	assert.Contains(t, view, "timelimit")
}

func TestTasksEmitScansAndKeepReport(t *testing.T) {
	tasks := NewTasks()
	var out event.Batch
	require.True(t, tasks.Act(ActionScanNetMessages, &out))
	require.True(t, tasks.Act(ActionScanUserMessages, &out))
	assert.Equal(t, event.Batch{
		event.RunDiagnostic{Kind: event.DiagnoseNetMessages},
		event.RunDiagnostic{Kind: event.DiagnoseUserMessages},
	}, out)

	done := event.DiagnosticFinished{Kind: event.DiagnoseUserMessages, Report: event.Report{Scanned: 2, Flagged: 1, Warnings: 2}}
	require.True(t, tasks.HandleEvent(done))
	last, ok := tasks.Last()
	require.True(t, ok)
	assert.Equal(t, done, last)

	view, _ := render(tasks, 100, 20)
	assert.Contains(t, view, "Last scan (user-messages): 2 scanned, 1 flagged, 2 warnings, 0 errors")
}

func TestServerInfoAndHeader(t *testing.T) {
	view, _ := render(NewServerInfo(nil), 80, 10)
	assert.Equal(t, "No Server Info was found in the demo file.", strings.TrimSpace(view))

	file := testutil.SampleFile(t)
	view, _ = render(NewServerInfo(file.ServerInfo), 80, 10)
	assert.Contains(t, view, "max_clients")

	view, _ = render(NewHeader(file), 80, 20)
	assert.Contains(t, view, "de_test")
	assert.Contains(t, view, "sample.json")
}

func TestAboutRendersKeys(t *testing.T) {
	view, _ := render(NewAbout(), 80, 0)
	assert.Contains(t, view, "ctrl+o")
	assert.Contains(t, view, "shift+↑")
}

func TestSchemaModeString(t *testing.T) {
	assert.Equal(t, "Class Descriptions", ModeClasses.String())
	assert.Equal(t, "Send Tables", ModeSendTables.String())
	tables := NewSchemaTables(&demo.DataTables{})
	assert.Equal(t, "Data Tables", tables.Name())
}

func TestDrawRowsSkipsFormattingWithoutRoom(t *testing.T) {
	items := make([]string, 500)
	for i := range items {
		items[i] = "frame"
	}
	nav := state.NewNavigator(items, func(s string) string { return s }, nil)
	formatted := 0
	row := func(abs int, item string) []string {
		formatted++
		return []string{item}
	}

	full := draw.New(40, 2)
	full.Blank()
	full.Blank()
	for _, col := range full.Columns(20, 0) {
		drawRows(col, nav, []string{"Command"}, row, nil)
	}
	assert.Zero(t, formatted, "a full surface leaves no rows for the list")

	small := draw.New(40, 4)
	drawRows(small, nav, []string{"Command"}, row, nil)
	assert.Equal(t, 3, formatted, "only the visible window is formatted")

	formatted = 0
	drawRows(draw.New(40, 0), nav, []string{"Command"}, row, nil)
	assert.Equal(t, 500, formatted, "an unbounded surface shows the whole list")
}

func copied(t *testing.T, out event.Batch) string {
	t.Helper()
	require.Len(t, out, 1)
	ev, ok := out[0].(event.CopyText)
	require.True(t, ok, "got %v", out[0])
	return ev.Text
}

func TestFramesCopyFollowsFocus(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	var out event.Batch
	assert.False(t, f.Act(ActionCopy, &out), "nothing selected")
	assert.Empty(t, out)

	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 2})
	require.True(t, f.Act(ActionCopy, &out))
	assert.Equal(t, "frame #2 tick 10 player 0: dem_packet (3 messages)", copied(t, out))

	f.HandleEvent(event.SelectItem{List: event.PacketDataMessages, Index: 1})
	f.SetFocus(packetTarget())
	out = nil
	require.True(t, f.Act(ActionCopy, &out))
	text := copied(t, out)
	assert.True(t, strings.HasPrefix(text, "svc_UserMessage #1\n"), text)
	assert.Contains(t, text, "msg_type")
}

func TestSchemaTablesCopySelectedSendTable(t *testing.T) {
	f := NewFrames(testutil.SampleFile(t))
	f.HandleEvent(event.SelectItem{List: event.Frames, Index: 1})
	target := focus.SchemaTableList(string(event.SendTables))
	f.SetFocus(target)

	var out event.Batch
	assert.False(t, f.Act(ActionCopy, &out), "class mode has no selection")
	assert.Empty(t, out)

	require.True(t, f.Act(ActionToggleMode, &out))
	require.True(t, f.Navigate(target, state.MoveNext))
	require.True(t, f.Navigate(target, state.MoveNext))
	out = nil
	require.True(t, f.Act(ActionCopy, &out))
	text := copied(t, out)
	assert.True(t, strings.HasPrefix(text, "Props: DT_Player\n"), text)
	assert.Contains(t, text, "m_flSimulationTime")
	assert.Contains(t, text, "warning: repeated field props")
	assert.Contains(t, text, "warning:   unknown field m_flScale")
}

func TestMessageListsCopySelection(t *testing.T) {
	u := NewUserMessages(testutil.SampleFile(t))
	var out event.Batch
	assert.False(t, u.Act(ActionCopy, &out))
	assert.Empty(t, out)

	u.HandleEvent(event.SelectItem{List: event.UserMessages, Index: 0})
	require.True(t, u.Act(ActionCopy, &out))
	text := copied(t, out)
	assert.True(t, strings.HasPrefix(text, "SayText2 #0\n"), text)
	assert.Contains(t, text, "params[1]")
	assert.Contains(t, text, "missing field ent_idx")

	g := NewGameEvents(testutil.SampleFile(t))
	require.True(t, g.HandleEvent(event.SelectItem{List: event.GameEvents, Index: 0}))
	out = nil
	require.True(t, g.Act(ActionCopy, &out))
	text = copied(t, out)
	assert.True(t, strings.HasPrefix(text, "player_death #0\n"), text)
	assert.Contains(t, text, "weapon")
	assert.Contains(t, text, "ak47")
}
