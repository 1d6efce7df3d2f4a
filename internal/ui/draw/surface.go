// Package draw provides the line-based surface panels render into.
package draw

import (
	"strings"

	"github.com/atomicstack/demo-crawler/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Line is one styled row of output.
type Line struct {
	Text          string
	Style         *lipgloss.Style
	PrefixStyle   *lipgloss.Style
	HighlightFrom int
	Raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// Surface collects rows for a region of Width x Height cells. A
// non-positive dimension means unbounded.
type Surface struct {
	Width  int
	Height int
	lines  []Line
}

// New returns an empty surface.
func New(width, height int) *Surface {
	return &Surface{Width: width, Height: height}
}

// Add appends a styled row.
func (s *Surface) Add(text string, style *lipgloss.Style) {
	s.lines = append(s.lines, Line{Text: text, Style: style})
}

// AddLine appends a prepared row.
func (s *Surface) AddLine(l Line) {
	s.lines = append(s.lines, l)
}

// AddRaw appends pre-rendered text, one row per line.
func (s *Surface) AddRaw(text string) {
	for _, row := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		s.lines = append(s.lines, Line{Text: row, Raw: true})
	}
}

// Blank appends an empty row.
func (s *Surface) Blank() {
	s.lines = append(s.lines, Line{})
}

// Lines returns the rows added so far.
func (s *Surface) Lines() []Line {
	return s.lines
}

// Remaining returns the rows still available, or -1 when unbounded.
func (s *Surface) Remaining() int {
	if s.Height <= 0 {
		return -1
	}
	left := s.Height - len(s.lines)
	if left < 0 {
		return 0
	}
	return left
}

// Columns splits the remaining area into side-by-side child surfaces of the
// given widths. The last width may be zero to take whatever is left. Children
// of an unbounded surface are unbounded; children of a full one get one row.
func (s *Surface) Columns(widths ...int) []*Surface {
	height := s.Remaining()
	switch {
	case height < 0:
		height = 0
	case height == 0:
		height = 1
	}
	used := 0
	children := make([]*Surface, len(widths))
	for i, w := range widths {
		if w <= 0 && s.Width > 0 {
			w = s.Width - used
		}
		if w < 1 {
			w = 1
		}
		used += w
		children[i] = New(w, height)
	}
	return children
}

// Join renders the child surfaces next to each other and appends the result.
func (s *Surface) Join(children ...*Surface) {
	blocks := make([]string, 0, len(children))
	for _, child := range children {
		blocks = append(blocks, child.Block())
	}
	s.AddRaw(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
}

// Block renders the surface padded to exactly Width columns per row.
func (s *Surface) Block() string {
	rendered := s.Render()
	if s.Width <= 0 {
		return rendered
	}
	rows := strings.Split(rendered, "\n")
	for i, row := range rows {
		w := lipgloss.Width(row)
		if w > s.Width {
			rows[i] = truncate.StringWithTail(row, uint(s.Width-1), "…")
		} else if w < s.Width {
			rows[i] = row + strings.Repeat(" ", s.Width-w)
		}
	}
	return strings.Join(rows, "\n")
}

// Render clamps the rows to the surface and renders them.
func (s *Surface) Render() string {
	lines := limitHeight(s.lines, s.Height, s.Width)
	lines = applyWidth(lines, s.Width)
	return renderLines(lines)
}

// Item builds a list row with the selection indicator used by every list.
// width pads the text so the selected background spans the column.
func Item(label string, selected bool, width int) Line {
	styles := theme.Default()
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := "▌ " + label
	if width > 0 {
		if pad := width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return Line{
		Text:          text,
		Style:         lineStyle,
		PrefixStyle:   indicatorStyle,
		HighlightFrom: 1,
	}
}

func limitHeight(lines []Line, height, width int) []Line {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []Line{{Text: truncateText("…", width)}}
	}
	trimmed := make([]Line, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, Line{Text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []Line, width int) []Line {
	if width <= 0 {
		return lines
	}
	result := make([]Line, len(lines))
	for i, line := range lines {
		text := line.Text
		if line.Raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.Text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []Line) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.Text
		if line.Raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.HighlightFrom > 0 && line.HighlightFrom < len(runes) {
			head := string(runes[:line.HighlightFrom])
			tail := string(runes[line.HighlightFrom:])
			if line.PrefixStyle != nil {
				head = line.PrefixStyle.Render(head)
			}
			if line.Style != nil {
				tail = line.Style.Render(tail)
			}
			text = head + tail
		} else if line.Style != nil {
			text = line.Style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
