package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/sablewood/rymx/internal/pages"
	"github.com/sablewood/rymx/internal/shared"
	"github.com/sablewood/rymx/internal/ui"
)

// BuildUI launches the interactive terminal UI for reviewing entries and
// building the playlist.
func (r *Runner) BuildUI(ctx context.Context, cmd *cli.Command) error {
	dir, err := r.pagesDir(cmd)
	if err != nil {
		return err
	}

	entries, err := pages.NewParser(dir).ParseDir()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no chart entries found in %s", shared.ErrInvalidInput, dir)
	}

	engine, cleanup, err := r.newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/rymx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, entries, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
