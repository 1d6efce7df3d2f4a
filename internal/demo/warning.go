package demo

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal decode problem.
type WarningKind int

const (
	WarningMissingField WarningKind = iota
	WarningUnknownField
	WarningRepeatedField
)

func (k WarningKind) String() string {
	switch k {
	case WarningMissingField:
		return "missing field"
	case WarningUnknownField:
		return "unknown field"
	case WarningRepeatedField:
		return "repeated field"
	default:
		return "warning"
	}
}

// Warning is attached to the record it was raised for. Nested warnings belong
// to sub-messages of Field.
type Warning struct {
	Kind   WarningKind
	Field  string
	Nested []Warning
}

// FormatWarnings renders warnings one per line, indenting nested warnings by
// depth.
func FormatWarnings(warnings []Warning) []string {
	var lines []string
	var walk func(ws []Warning, depth int)
	walk = func(ws []Warning, depth int) {
		for _, w := range ws {
			indent := strings.Repeat("  ", depth)
			lines = append(lines, fmt.Sprintf("%s%s %s", indent, w.Kind, w.Field))
			walk(w.Nested, depth+1)
		}
	}
	walk(warnings, 0)
	return lines
}

// Report renders the warnings and error of a message as log lines prefixed
// with a location label. It returns nil for a clean message.
func Report(label string, m Message) []string {
	warnings := FormatWarnings(m.MessageWarnings())
	errText := m.MessageError()
	if len(warnings) == 0 && errText == "" {
		return nil
	}
	lines := make([]string, 0, len(warnings)+2)
	lines = append(lines, fmt.Sprintf("%s %s:", label, m.MessageName()))
	for _, w := range warnings {
		lines = append(lines, "  "+w)
	}
	if errText != "" {
		lines = append(lines, "  error: "+errText)
	}
	return lines
}
