package demo

// Field is one flattened message field. Nested structures appear as
// "parent.child" and repeated values as "name[i]".
type Field struct {
	Name  string
	Value string
	None  bool
}

// Message is the common view over net messages and user messages.
type Message interface {
	MessageName() string
	MessageFields() []Field
	MessageWarnings() []Warning
	MessageError() string
}

// NetMessage is one message inside a packet frame.
type NetMessage struct {
	Name        string
	Fields      []Field
	Warnings    []Warning
	Err         string
	UserMessage *UserMessagePayload
	GameEvent   *GameEventPayload
}

func (m NetMessage) MessageName() string        { return m.Name }
func (m NetMessage) MessageFields() []Field     { return m.Fields }
func (m NetMessage) MessageWarnings() []Warning { return m.Warnings }
func (m NetMessage) MessageError() string       { return m.Err }

// UserMessagePayload is the decoded body of an embedded user message.
type UserMessagePayload struct {
	Name     string
	Fields   []Field
	Warnings []Warning
	Err      string
}

// UserMessage is an extracted user message with its origin.
type UserMessage struct {
	UserMessagePayload
	Frame   int
	Message int
}

func (m UserMessage) MessageName() string        { return m.Name }
func (m UserMessage) MessageFields() []Field     { return m.Fields }
func (m UserMessage) MessageWarnings() []Warning { return m.Warnings }
func (m UserMessage) MessageError() string       { return m.Err }

// EventKey is one typed key of a game event.
type EventKey struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// GameEventPayload is the decoded body of an embedded game event.
type GameEventPayload struct {
	Name string     `json:"name"`
	Keys []EventKey `json:"keys"`
}

// GameEvent is an extracted game event with its origin.
type GameEvent struct {
	GameEventPayload
	Frame   int
	Message int
}
