// Package session hosts the tool panels of one opened demo file.
package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/panel"
	"github.com/atomicstack/demo-crawler/internal/theme"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTool is the index of the tool shown after a file opens.
const DefaultTool = 1

// Controller owns a decoded file and its panels and tracks the active tool.
type Controller struct {
	file   *demo.File
	panels []panel.Panel
	active int
	// focus change queued for the next draw
	pending *event.SetFocus
}

// NewController builds the panels for file and activates the default tool.
func NewController(file *demo.File) *Controller {
	c := &Controller{file: file, panels: panel.New(file)}
	c.SetActiveTool(DefaultTool)
	return c
}

// File returns the decoded file.
func (c *Controller) File() *demo.File { return c.file }

// Panels returns the tools in tab order.
func (c *Controller) Panels() []panel.Panel { return c.panels }

// ActiveIndex returns the index of the active tool.
func (c *Controller) ActiveIndex() int { return c.active }

// Active returns the active tool.
func (c *Controller) Active() panel.Panel { return c.panels[c.active] }

// Title names the window after the file.
func (c *Controller) Title() string {
	base := filepath.Base(c.file.Path)
	return fmt.Sprintf("demo-crawler -- %s", strings.TrimSuffix(base, filepath.Ext(base)))
}

// SetActiveTool activates the tool at index and queues a focus change to the
// tool's focus target for the next dispatch pass.
func (c *Controller) SetActiveTool(index int) bool {
	if index < 0 || index >= len(c.panels) {
		return false
	}
	c.active = index
	c.pending = &event.SetFocus{Target: c.panels[index].Focus()}
	events.Tool.Active(index, c.panels[index].Name())
	return true
}

// SetActiveToolByName activates the tool with the given name.
func (c *Controller) SetActiveToolByName(name string) bool {
	for i, p := range c.panels {
		if p.Name() == name {
			return c.SetActiveTool(i)
		}
	}
	events.Tool.Missing(name)
	return false
}

// NextTool activates the tool to the right. It is a no-op on the last tool.
func (c *Controller) NextTool() bool {
	if c.active >= len(c.panels)-1 {
		return false
	}
	return c.SetActiveTool(c.active + 1)
}

// PrevTool activates the tool to the left. It is a no-op on the first tool.
func (c *Controller) PrevTool() bool {
	if c.active <= 0 {
		return false
	}
	return c.SetActiveTool(c.active - 1)
}

// FirstTool activates the leftmost tool.
func (c *Controller) FirstTool() bool { return c.SetActiveTool(0) }

// LastTool activates the rightmost tool.
func (c *Controller) LastTool() bool { return c.SetActiveTool(len(c.panels) - 1) }

// HandleEvent switches tools, records focus on the active tool and forwards
// everything else to the active tool only.
func (c *Controller) HandleEvent(evt event.Event) bool {
	switch e := evt.(type) {
	case event.SwitchTool:
		return c.SetActiveToolByName(e.Name)
	case event.SetFocus:
		c.Active().SetFocus(e.Target)
		return true
	}
	return c.Active().HandleEvent(evt)
}

// Navigate applies a keyboard move to the list owning target on the active
// tool.
func (c *Controller) Navigate(target focus.Target, move state.Move) bool {
	switch p := c.Active().(type) {
	case *panel.Frames:
		return p.Navigate(target, move)
	case *panel.SignOnFrames:
		return p.Navigate(target, move)
	case *panel.UserMessages:
		return p.Navigate(target, move)
	case *panel.GameEvents:
		return p.Navigate(target, move)
	}
	return false
}

// Act runs a panel command on the active tool.
func (c *Controller) Act(a panel.Action, out *event.Batch) bool {
	switch p := c.Active().(type) {
	case *panel.Frames:
		return p.Act(a, out)
	case *panel.SignOnFrames:
		return p.Act(a, out)
	case *panel.UserMessages:
		return p.Act(a, out)
	case *panel.GameEvents:
		return p.Act(a, out)
	case *panel.Tasks:
		return p.Act(a, out)
	}
	return false
}

// Filter returns the filter entries of the list owning target.
func (c *Controller) Filter(target focus.Target) (panel.Filter, bool) {
	switch p := c.Active().(type) {
	case *panel.Frames:
		return p.Filter(target)
	case *panel.SignOnFrames:
		return p.Filter(target)
	case *panel.UserMessages:
		return p.Filter(target)
	case *panel.GameEvents:
		return p.Filter(target)
	}
	return panel.Filter{}, false
}

// Draw emits any queued focus change, then renders the tab bar and the
// active tool.
func (c *Controller) Draw(s *draw.Surface, out *event.Batch) {
	if c.pending != nil {
		out.Emit(*c.pending)
		c.pending = nil
	}
	s.AddRaw(c.tabBar())
	s.Blank()
	c.Active().Draw(s, out)
}

func (c *Controller) tabBar() string {
	styles := theme.Default()
	tabs := make([]string, len(c.panels))
	for i, p := range c.panels {
		style := styles.Tab
		if i == c.active {
			style = styles.ActiveTab
		}
		tabs[i] = style.Render(p.Name())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
