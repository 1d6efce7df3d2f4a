package panel

import (
	"strings"

	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/charmbracelet/glamour"
)

const aboutMarkdown = `# demo-crawler

Browse recorded game sessions frame by frame.

## Files

- **ctrl+o** open a demo file (.dem or .json dump)
- **q** / **ctrl+c** quit

## Tools

- **←** / **→** previous / next tool
- **ctrl+←** / **ctrl+→** first / last tool

## Lists

- **↑** / **↓** previous / next entry
- **shift+↑** / **shift+↓** jump 10 entries
- **ctrl+↑** / **ctrl+↓** first / last entry
- **tab** move focus between the lists of a tool
- **f** pick a filter, **c** clear the filter
- **g** go to the referenced frame, user message or game event
- **h** hide fields without a value
- **m** switch the data table view
- **y** copy the selected record to the clipboard

## Tasks

- **n** log every net message warning and error
- **u** log every user message warning and error
`

// About renders the key reference.
type About struct {
	width    int
	rendered string
}

func NewAbout() *About { return &About{} }

func (a *About) panel() {}

func (a *About) Name() string { return NameAbout }

func (a *About) Focus() focus.Target { return focus.None() }

func (a *About) SetFocus(focus.Target) {}

func (a *About) HandleEvent(event.Event) bool { return false }

func (a *About) Draw(s *draw.Surface, _ *event.Batch) {
	if a.rendered == "" || a.width != s.Width {
		a.width = s.Width
		a.rendered = renderMarkdown(aboutMarkdown, s.Width)
	}
	s.AddRaw(a.rendered)
}

func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		logging.Error(err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logging.Error(err)
		return md
	}
	return strings.Trim(out, "\n")
}
