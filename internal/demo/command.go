package demo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Command identifies the payload kind of a frame.
type Command int

const (
	CommandSignOn Command = iota + 1
	CommandPacket
	CommandSyncTick
	CommandConsoleCmd
	CommandUserCmd
	CommandDataTables
	CommandStop
	CommandCustomData
	CommandStringTables
)

var commandNames = map[Command]string{
	CommandSignOn:       "dem_signon",
	CommandPacket:       "dem_packet",
	CommandSyncTick:     "dem_synctick",
	CommandConsoleCmd:   "dem_consolecmd",
	CommandUserCmd:      "dem_usercmd",
	CommandDataTables:   "dem_datatables",
	CommandStop:         "dem_stop",
	CommandCustomData:   "dem_customdata",
	CommandStringTables: "dem_stringtables",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("dem_unknown(%d)", int(c))
}

// ParseCommand resolves a command name, accepting the name with or without
// the "dem_" prefix.
func ParseCommand(name string) (Command, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(lower, "dem_") {
		lower = "dem_" + lower
	}
	for cmd, candidate := range commandNames {
		if candidate == lower {
			return cmd, nil
		}
	}
	return 0, fmt.Errorf("unknown frame command %q", name)
}

func (c *Command) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("frame command: %w", err)
	}
	parsed, err := ParseCommand(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
