package app

import (
	"errors"

	"github.com/atomicstack/demo-crawler/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	// Path is opened on startup when set.
	Path   string
	Dir    string
	Width  int
	Height int
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := ui.NewModel(ui.Options{
		Path:   cfg.Path,
		Dir:    cfg.Dir,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
