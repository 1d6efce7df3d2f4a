package draw

import (
	"fmt"
	"strings"

	"github.com/atomicstack/demo-crawler/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Box renders lines inside a rounded border of exactly width x height cells.
// offset is the first line shown; the top border carries the title and a
// "last/total" indicator when the content overflows.
func Box(title string, lines []string, offset, width, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	styles := theme.Default()

	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	maxOffset := len(lines) - innerH
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + innerH
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[offset:end]
	info := ""
	if len(lines) > innerH {
		info = fmt.Sprintf(" %d/%d ", offset+len(visible), len(lines))
	}

	titleSeg := " " + title + " "
	dashes := width - 4 - len([]rune(titleSeg)) - len([]rune(info))
	if dashes < 0 {
		info = ""
		dashes = width - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = width - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	rows := make([]string, 0, innerH+2)
	rows = append(rows, styles.Border.Render(tlc+hz)+
		styles.BoxTitle.Render(titleSeg)+
		styles.Border.Render(strings.Repeat(hz, dashes))+
		styles.BoxInfo.Render(info)+
		styles.Border.Render(hz+trc))
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(visible) {
			content = visible[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, styles.Border.Render(vt)+styles.BoxBody.Render(content)+styles.Border.Render(vt))
	}
	rows = append(rows, styles.Border.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}
