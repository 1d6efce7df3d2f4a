package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// The JSON dump layout mirrors File. Field values are arbitrary JSON and are
// flattened in document order.
type jsonDump struct {
	Header       Header          `json:"header"`
	ServerInfo   *jsonServerInfo `json:"server_info"`
	SignOnFrames []jsonFrame     `json:"sign_on_frames"`
	Frames       []jsonFrame     `json:"frames"`
}

type jsonServerInfo struct {
	TickInterval float64     `json:"tick_interval"`
	Fields       []jsonField `json:"fields"`
}

type jsonFrame struct {
	Tick       int32           `json:"tick"`
	PlayerSlot uint8           `json:"player_slot"`
	Command    Command         `json:"command"`
	Packet     *jsonPacket     `json:"packet"`
	DataTables *jsonDataTables `json:"data_tables"`
	ConsoleCmd string          `json:"console_cmd"`
}

type jsonPacket struct {
	Messages []jsonMessage `json:"messages"`
}

type jsonDataTables struct {
	Classes    []ServerClass   `json:"classes"`
	SendTables []jsonSendTable `json:"send_tables"`
}

type jsonSendTable struct {
	SendTable
	Warnings []jsonWarning `json:"warnings"`
}

type jsonMessage struct {
	Name        string            `json:"name"`
	Fields      []jsonField       `json:"fields"`
	Warnings    []jsonWarning     `json:"warnings"`
	Error       string            `json:"error"`
	UserMessage *jsonUserMessage  `json:"user_message"`
	GameEvent   *GameEventPayload `json:"game_event"`
}

type jsonUserMessage struct {
	Name     string        `json:"name"`
	Fields   []jsonField   `json:"fields"`
	Warnings []jsonWarning `json:"warnings"`
	Error    string        `json:"error"`
}

type jsonField struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type jsonWarning struct {
	Kind   string        `json:"kind"`
	Field  string        `json:"field"`
	Nested []jsonWarning `json:"nested"`
}

func decodeJSON(ctx context.Context, r io.Reader, progress ProgressFunc) (*File, error) {
	var dump jsonDump
	dec := json.NewDecoder(r)
	if err := dec.Decode(&dump); err != nil {
		return nil, fmt.Errorf("parse json dump: %w", err)
	}
	file := &File{Header: dump.Header}
	if dump.ServerInfo != nil {
		fields, err := convertFields(dump.ServerInfo.Fields)
		if err != nil {
			return nil, fmt.Errorf("server info: %w", err)
		}
		file.ServerInfo = &ServerInfo{Fields: fields, TickInterval: dump.ServerInfo.TickInterval}
	}
	total := len(dump.SignOnFrames) + len(dump.Frames)
	done := 0
	convert := func(src []jsonFrame, label string) ([]Frame, error) {
		frames := make([]Frame, 0, len(src))
		for i, jf := range src {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			frame, err := convertFrame(jf)
			if err != nil {
				return nil, fmt.Errorf("%s %d: %w", label, i, err)
			}
			frames = append(frames, frame)
			done++
			progress(done, total)
		}
		return frames, nil
	}
	var err error
	if file.SignOnFrames, err = convert(dump.SignOnFrames, "sign-on frame"); err != nil {
		return nil, err
	}
	if file.Frames, err = convert(dump.Frames, "frame"); err != nil {
		return nil, err
	}
	return file, nil
}

func convertFrame(jf jsonFrame) (Frame, error) {
	frame := Frame{
		Tick:       jf.Tick,
		PlayerSlot: jf.PlayerSlot,
		Command:    jf.Command,
		ConsoleCmd: jf.ConsoleCmd,
	}
	if frame.Command == 0 {
		return Frame{}, fmt.Errorf("missing command")
	}
	if jf.Packet != nil {
		packet := &Packet{Messages: make([]NetMessage, 0, len(jf.Packet.Messages))}
		for i, jm := range jf.Packet.Messages {
			msg, err := convertMessage(jm)
			if err != nil {
				return Frame{}, fmt.Errorf("message %d (%s): %w", i, jm.Name, err)
			}
			packet.Messages = append(packet.Messages, msg)
		}
		frame.Packet = packet
	}
	if jf.DataTables != nil {
		tables := &DataTables{
			Classes:    jf.DataTables.Classes,
			SendTables: make([]SendTable, 0, len(jf.DataTables.SendTables)),
		}
		for _, jt := range jf.DataTables.SendTables {
			st := jt.SendTable
			st.Warnings = convertWarnings(jt.Warnings)
			tables.SendTables = append(tables.SendTables, st)
		}
		frame.DataTables = tables
	}
	return frame, nil
}

func convertMessage(jm jsonMessage) (NetMessage, error) {
	fields, err := convertFields(jm.Fields)
	if err != nil {
		return NetMessage{}, err
	}
	msg := NetMessage{
		Name:      jm.Name,
		Fields:    fields,
		Warnings:  convertWarnings(jm.Warnings),
		Err:       jm.Error,
		GameEvent: jm.GameEvent,
	}
	if jm.UserMessage != nil {
		umFields, err := convertFields(jm.UserMessage.Fields)
		if err != nil {
			return NetMessage{}, fmt.Errorf("user message %s: %w", jm.UserMessage.Name, err)
		}
		msg.UserMessage = &UserMessagePayload{
			Name:     jm.UserMessage.Name,
			Fields:   umFields,
			Warnings: convertWarnings(jm.UserMessage.Warnings),
			Err:      jm.UserMessage.Error,
		}
	}
	return msg, nil
}

func convertWarnings(src []jsonWarning) []Warning {
	if len(src) == 0 {
		return nil
	}
	out := make([]Warning, 0, len(src))
	for _, jw := range src {
		kind := WarningUnknownField
		switch jw.Kind {
		case "missing":
			kind = WarningMissingField
		case "repeated":
			kind = WarningRepeatedField
		}
		out = append(out, Warning{Kind: kind, Field: jw.Field, Nested: convertWarnings(jw.Nested)})
	}
	return out
}

func convertFields(src []jsonField) ([]Field, error) {
	var out []Field
	for _, jf := range src {
		var err error
		out, err = FlattenJSON(jf.Name, jf.Value, out)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", jf.Name, err)
		}
	}
	return out, nil
}

// FlattenJSON appends the flattened fields of a JSON value to out. Objects
// produce "name.key" entries, arrays "name[i]" and null a None field.
func FlattenJSON(name string, raw json.RawMessage, out []Field) ([]Field, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return append(out, Field{Name: name, None: true}), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return flattenNext(dec, name, out)
}

func flattenNext(dec *json.Decoder, name string, out []Field) ([]Field, error) {
	tok, err := dec.Token()
	if err != nil {
		return out, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return out, err
				}
				key, _ := keyTok.(string)
				if out, err = flattenNext(dec, joinFieldName(name, key), out); err != nil {
					return out, err
				}
			}
		case '[':
			for i := 0; dec.More(); i++ {
				if out, err = flattenNext(dec, fmt.Sprintf("%s[%d]", name, i), out); err != nil {
					return out, err
				}
			}
		default:
			return out, fmt.Errorf("unexpected delimiter %q", v)
		}
		_, err = dec.Token()
		return out, err
	case nil:
		return append(out, Field{Name: name, None: true}), nil
	case string:
		return append(out, Field{Name: name, Value: v}), nil
	case json.Number:
		return append(out, Field{Name: name, Value: v.String()}), nil
	case bool:
		return append(out, Field{Name: name, Value: strconv.FormatBool(v)}), nil
	default:
		return append(out, Field{Name: name, Value: fmt.Sprint(v)}), nil
	}
}

func joinFieldName(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
