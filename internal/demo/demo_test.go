package demo_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestOpenJSONDump(t *testing.T) {
	var calls, lastDone, lastTotal int
	f, err := demo.Open(context.Background(), testutil.SamplePath(t), func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	})
	require.NoError(t, err)
	require.Equal(t, 7, calls)
	require.Equal(t, 7, lastDone)
	require.Equal(t, 7, lastTotal)

	require.Equal(t, "de_test", f.Header.MapName)
	require.Len(t, f.SignOnFrames, 1)
	require.Len(t, f.Frames, 6)
	require.Equal(t, demo.CommandDataTables, f.Frames[1].Command)
	require.Equal(t, "+attack", f.Frames[3].ConsoleCmd)
	require.Equal(t, 0.015625, f.TickInterval())
	require.Positive(t, f.Size)
}

func TestOpenExtractsBackReferences(t *testing.T) {
	f := testutil.SampleFile(t)

	require.Len(t, f.UserMessages, 2)
	require.Equal(t, "SayText2", f.UserMessages[0].Name)
	require.Equal(t, 2, f.UserMessages[0].Frame)
	require.Equal(t, 1, f.UserMessages[0].Message)
	require.Equal(t, "TextMsg", f.UserMessages[1].Name)
	require.Equal(t, 4, f.UserMessages[1].Frame)
	require.Equal(t, 0, f.UserMessages[1].Message)

	require.Len(t, f.GameEvents, 2)
	require.Equal(t, "player_death", f.GameEvents[0].Name)
	require.Equal(t, 2, f.GameEvents[0].Frame)
	require.Equal(t, 2, f.GameEvents[0].Message)

	idx, ok := f.UserMessageAt(4, 0)
	require.True(t, ok)
	require.Equal(t, 1, idx)
	idx, ok = f.GameEventAt(4, 1)
	require.True(t, ok)
	require.Equal(t, 1, idx)
	_, ok = f.UserMessageAt(4, 2)
	require.False(t, ok)
	_, ok = f.GameEventAt(99, 0)
	require.False(t, ok)
}

func TestOpenFlattensFields(t *testing.T) {
	f := testutil.SampleFile(t)
	fields := f.UserMessages[0].Fields
	require.Equal(t, []demo.Field{
		{Name: "params[0]", Value: "player"},
		{Name: "params[1]", Value: "hello"},
		{Name: "chat.all", Value: "true"},
		{Name: "chat.team", None: true},
	}, fields)
	netTick := f.Frames[2].Packet.Messages[0]
	require.Equal(t, demo.Field{Name: "host_error", None: true}, netTick.Fields[1])
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := testutil.WriteFile(t, "capture.dem", "HL2DEMO")
	_, err := demo.Open(context.Background(), path, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, demo.ErrNoDecoder))
}

func TestOpenReportsParseErrors(t *testing.T) {
	path := testutil.WriteFile(t, "broken.json", `{"frames": [`)
	_, err := demo.Open(context.Background(), path, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.json")

	path = testutil.WriteFile(t, "badcmd.json", `{"frames": [{"tick": 1, "command": "dem_bogus"}]}`)
	_, err = demo.Open(context.Background(), path, nil)
	require.ErrorContains(t, err, "dem_bogus")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := demo.Open(context.Background(), "/nonexistent/demo.json", nil)
	require.Error(t, err)
}

func TestRegisterCustomDecoder(t *testing.T) {
	demo.Register("DEMTEST", demo.DecoderFunc(func(ctx context.Context, _ io.Reader, progress demo.ProgressFunc) (*demo.File, error) {
		progress(1, 1)
		return &demo.File{Frames: []demo.Frame{{Command: demo.CommandStop}}}, nil
	}))
	require.Contains(t, demo.Extensions(), ".demtest")
	f, err := demo.Open(context.Background(), testutil.WriteFile(t, "x.demtest", ""), nil)
	require.NoError(t, err)
	require.Len(t, f.Frames, 1)
	require.Empty(t, f.UserMessages)
}

func TestReportFormatsNestedWarnings(t *testing.T) {
	f := testutil.SampleFile(t)
	lines := demo.Report("user message #0", f.UserMessages[0])
	require.Equal(t, []string{
		"user message #0 SayText2:",
		"  missing field ent_idx",
		"    unknown field extra",
	}, lines)

	printMsg := f.Frames[4].Packet.Messages[2]
	require.Equal(t, []string{"frame 5 svc_Print:", "  error: truncated payload"}, demo.Report("frame 5", printMsg))
	require.Nil(t, demo.Report("clean", f.Frames[2].Packet.Messages[0]))
}
