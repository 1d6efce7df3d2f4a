// Package demo holds the decoded representation of a recorded session file
// and the decoder registry used to produce it.
package demo

import "fmt"

// Header carries the fixed preamble of a demo file.
type Header struct {
	DemoProtocol    int     `json:"demo_protocol"`
	NetworkProtocol int     `json:"network_protocol"`
	ServerName      string  `json:"server_name"`
	ClientName      string  `json:"client_name"`
	MapName         string  `json:"map_name"`
	GameDirectory   string  `json:"game_directory"`
	PlaybackTime    float64 `json:"playback_time"`
	PlaybackTicks   int     `json:"playback_ticks"`
	PlaybackFrames  int     `json:"playback_frames"`
	SignOnLength    int     `json:"sign_on_length"`
}

// ServerInfo is the server-info net message found in the sign-on data.
type ServerInfo struct {
	Fields       []Field
	TickInterval float64
}

// Frame is one recorded unit of the session timeline.
type Frame struct {
	Tick       int32
	PlayerSlot uint8
	Command    Command
	Packet     *Packet
	DataTables *DataTables
	ConsoleCmd string
}

// Describe returns the short payload description shown in frame lists.
func (f Frame) Describe() string {
	switch {
	case f.Packet != nil:
		return fmt.Sprintf("%s (%d messages)", f.Command, len(f.Packet.Messages))
	case f.DataTables != nil:
		return fmt.Sprintf("%s (%d classes, %d send tables)", f.Command, len(f.DataTables.Classes), len(f.DataTables.SendTables))
	case f.ConsoleCmd != "":
		return fmt.Sprintf("%s %q", f.Command, f.ConsoleCmd)
	default:
		return f.Command.String()
	}
}

// Packet is the list of net messages carried by a packet or sign-on frame.
type Packet struct {
	Messages []NetMessage
}

// DataTables is the networked class schema snapshot.
type DataTables struct {
	Classes    []ServerClass
	SendTables []SendTable
}

type ServerClass struct {
	ClassID     int    `json:"class_id"`
	TableName   string `json:"table_name"`
	NetworkName string `json:"network_name"`
}

// SendTable is one networked table definition. Warnings are the decode
// warnings of the table record itself.
type SendTable struct {
	Name         string     `json:"name"`
	IsEnd        bool       `json:"is_end"`
	NeedsDecoder bool       `json:"needs_decoder"`
	Props        []SendProp `json:"props"`
	Warnings     []Warning  `json:"-"`
}

func (t SendTable) MessageName() string        { return t.Name }
func (t SendTable) MessageFields() []Field     { return nil }
func (t SendTable) MessageWarnings() []Warning { return t.Warnings }
func (t SendTable) MessageError() string       { return "" }

type SendProp struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Flags       int     `json:"flags"`
	Priority    int     `json:"priority"`
	ExcludeName string  `json:"exclude_name"`
	NumElements int     `json:"num_elements"`
	LowValue    float64 `json:"low_value"`
	HighValue   float64 `json:"high_value"`
	NumBits     int     `json:"num_bits"`
}

// File is a fully decoded demo. Slices are indexed by absolute index and are
// never reordered after Open returns.
type File struct {
	Path         string
	Size         int64
	Header       Header
	ServerInfo   *ServerInfo
	Frames       []Frame
	SignOnFrames []Frame
	UserMessages []UserMessage
	GameEvents   []GameEvent

	// per frame: net message index -> user message / game event index
	frameUserMessages []map[int]int
	frameGameEvents   []map[int]int
}

// TickInterval returns the seconds per tick, preferring the server info value.
func (f *File) TickInterval() float64 {
	if f == nil {
		return 0
	}
	if f.ServerInfo != nil && f.ServerInfo.TickInterval > 0 {
		return f.ServerInfo.TickInterval
	}
	if f.Header.PlaybackTicks > 0 && f.Header.PlaybackTime > 0 {
		return f.Header.PlaybackTime / float64(f.Header.PlaybackTicks)
	}
	return 0
}

// UserMessageAt returns the user message index extracted from the given
// frame/net message pair.
func (f *File) UserMessageAt(frame, message int) (int, bool) {
	return lookup(f.frameUserMessages, frame, message)
}

// GameEventAt returns the game event index extracted from the given
// frame/net message pair.
func (f *File) GameEventAt(frame, message int) (int, bool) {
	return lookup(f.frameGameEvents, frame, message)
}

func lookup(index []map[int]int, frame, message int) (int, bool) {
	if frame < 0 || frame >= len(index) || index[frame] == nil {
		return 0, false
	}
	idx, ok := index[frame][message]
	return idx, ok
}
