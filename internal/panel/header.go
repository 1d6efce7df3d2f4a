package panel

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/format/table"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/dustin/go-humanize"
)

// Header shows the demo preamble.
type Header struct {
	rows [][]string
}

func NewHeader(file *demo.File) *Header {
	h := file.Header
	rows := [][]string{
		{"File", fmt.Sprintf("%s (%s)", filepath.Base(file.Path), humanize.Bytes(uint64(file.Size)))},
		{"Client Name", h.ClientName},
		{"Server Name", h.ServerName},
		{"Map Name", h.MapName},
		{"Game Directory", h.GameDirectory},
		{"Playback Time", fmt.Sprintf("%.3fs", h.PlaybackTime)},
		{"Playback Ticks", humanize.Comma(int64(h.PlaybackTicks))},
		{"Playback Frames", humanize.Comma(int64(h.PlaybackFrames))},
		{"Demo Protocol", fmt.Sprintf("%d", h.DemoProtocol)},
		{"Network Protocol", fmt.Sprintf("%d", h.NetworkProtocol)},
		{"Sign On Length", humanize.Bytes(uint64(h.SignOnLength))},
	}
	return &Header{rows: rows}
}

func (h *Header) panel() {}

func (h *Header) Name() string { return NameHeader }

func (h *Header) Focus() focus.Target { return focus.None() }

func (h *Header) SetFocus(focus.Target) {}

func (h *Header) HandleEvent(event.Event) bool { return false }

func (h *Header) Draw(s *draw.Surface, _ *event.Batch) {
	for _, line := range table.Format(h.rows, nil) {
		s.Add(line, styles.Info)
	}
}

// ServerInfo shows the fields of the server info message.
type ServerInfo struct {
	info *demo.ServerInfo
}

func NewServerInfo(info *demo.ServerInfo) *ServerInfo {
	return &ServerInfo{info: info}
}

func (si *ServerInfo) panel() {}

func (si *ServerInfo) Name() string { return NameServerInfo }

func (si *ServerInfo) Focus() focus.Target { return focus.None() }

func (si *ServerInfo) SetFocus(focus.Target) {}

func (si *ServerInfo) HandleEvent(event.Event) bool { return false }

func (si *ServerInfo) Draw(s *draw.Surface, _ *event.Batch) {
	if si.info == nil {
		s.Add("No Server Info was found in the demo file.", styles.Warning)
		return
	}
	rows := make([][]string, 0, len(si.info.Fields))
	for _, f := range si.info.Fields {
		value := f.Value
		if f.None {
			value = "None"
		}
		rows = append(rows, []string{f.Name, value})
	}
	for _, line := range table.Format(rows, nil) {
		s.Add(line, styles.Info)
	}
}
