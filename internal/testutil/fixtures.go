// Package testutil provides demo fixtures shared by package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/logging"
)

// SampleJSON is a small dump exercising every frame payload kind. Frame
// commands in order: synctick, datatables, packet, consolecmd, packet, stop.
const SampleJSON = `{
  "header": {
    "demo_protocol": 3,
    "network_protocol": 24,
    "server_name": "Test Server",
    "client_name": "player",
    "map_name": "de_test",
    "game_directory": "csgo",
    "playback_time": 2.5,
    "playback_ticks": 160,
    "playback_frames": 6,
    "sign_on_length": 1024
  },
  "server_info": {
    "tick_interval": 0.015625,
    "fields": [
      {"name": "max_clients", "value": 10},
      {"name": "map_name", "value": "de_test"}
    ]
  },
  "sign_on_frames": [
    {"tick": 0, "player_slot": 0, "command": "dem_signon", "packet": {"messages": [
      {"name": "svc_ServerInfo", "fields": [{"name": "tick_interval", "value": 0.015625}]}
    ]}}
  ],
  "frames": [
    {"tick": 0, "player_slot": 0, "command": "dem_synctick"},
    {"tick": 0, "player_slot": 0, "command": "dem_datatables", "data_tables": {
      "classes": [
        {"class_id": 0, "table_name": "DT_World", "network_name": "CWorld"},
        {"class_id": 1, "table_name": "DT_Player", "network_name": "CPlayer"}
      ],
      "send_tables": [
        {"name": "DT_World", "is_end": false, "needs_decoder": true, "props": [
          {"type": "int", "name": "m_nModelIndex", "flags": 0, "priority": 128, "num_bits": 12}
        ]},
        {"name": "DT_Player", "is_end": false, "needs_decoder": true, "props": [
          {"type": "float", "name": "m_flSimulationTime", "flags": 1, "priority": 64, "num_bits": 8}
        ], "warnings": [{"kind": "repeated", "field": "props", "nested": [{"kind": "unknown", "field": "m_flScale"}]}]},
        {"name": "", "is_end": true, "needs_decoder": false}
      ]
    }},
    {"tick": 10, "player_slot": 0, "command": "dem_packet", "packet": {"messages": [
      {"name": "net_Tick", "fields": [{"name": "tick", "value": 10}, {"name": "host_error", "value": null}]},
      {"name": "svc_UserMessage", "fields": [{"name": "msg_type", "value": 6}],
       "user_message": {"name": "SayText2", "fields": [
         {"name": "params", "value": ["player", "hello"]},
         {"name": "chat", "value": {"all": true, "team": null}}
       ], "warnings": [{"kind": "missing", "field": "ent_idx", "nested": [{"kind": "unknown", "field": "extra"}]}]}},
      {"name": "svc_GameEvent", "fields": [{"name": "eventid", "value": 23}],
       "game_event": {"name": "player_death", "keys": [
         {"type": "short", "name": "userid", "value": "2"},
         {"type": "string", "name": "weapon", "value": "ak47"}
       ]}}
    ]}},
    {"tick": 32, "player_slot": 1, "command": "dem_consolecmd", "console_cmd": "+attack"},
    {"tick": 64, "player_slot": 0, "command": "dem_packet", "packet": {"messages": [
      {"name": "svc_UserMessage", "fields": [{"name": "msg_type", "value": 7}],
       "user_message": {"name": "TextMsg", "fields": [{"name": "text", "value": "round over"}]}},
      {"name": "svc_GameEvent", "fields": [{"name": "eventid", "value": 40}],
       "game_event": {"name": "round_start", "keys": [{"type": "long", "name": "timelimit", "value": "115"}]}},
      {"name": "svc_Print", "fields": [{"name": "text", "value": "hi"}], "error": "truncated payload"}
    ]}},
    {"tick": 160, "player_slot": 0, "command": "dem_stop"}
  ]
}`

// WriteFile writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// SamplePath writes SampleJSON to a temporary file.
func SamplePath(t *testing.T) string {
	t.Helper()
	return WriteFile(t, "sample.json", SampleJSON)
}

// SampleFile decodes SampleJSON through the regular open path.
func SampleFile(t *testing.T) *demo.File {
	t.Helper()
	f, err := demo.Open(context.Background(), SamplePath(t), nil)
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	return f
}

// Frames builds a file whose frames carry the given commands, one tick apart.
func Frames(t *testing.T, commands ...demo.Command) *demo.File {
	t.Helper()
	f := &demo.File{ServerInfo: &demo.ServerInfo{TickInterval: 0.015625}}
	for i, cmd := range commands {
		frame := demo.Frame{Tick: int32(i), Command: cmd}
		if cmd == demo.CommandPacket {
			frame.Packet = &demo.Packet{}
		}
		f.Frames = append(f.Frames, frame)
	}
	if err := f.Index(context.Background()); err != nil {
		t.Fatalf("index frames: %v", err)
	}
	return f
}

// IsolateLogging points the shared log at a throwaway directory for the
// duration of a package's tests and returns the cleanup.
func IsolateLogging() func() {
	dir, err := os.MkdirTemp("", "demo-crawler-test")
	if err != nil {
		return func() {}
	}
	logging.Configure(filepath.Join(dir, "test.log"))
	return func() {
		logging.Configure("")
		os.RemoveAll(dir)
	}
}
