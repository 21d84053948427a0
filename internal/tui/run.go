package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/context-lens/internal/app"
)

// Run starts the interactive screen and blocks until the user quits or ctx ends.
func Run(ctx context.Context, ctrl *app.Controller, opts ...Option) error {
	if ctrl == nil {
		return fmt.Errorf("controller is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	program := tea.NewProgram(newModel(ctx, ctrl, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()

	// Nothing awaits an analysis once the screen is gone.
	if m, ok := final.(Model); ok && m.analyzing {
		ctrl.Cancel()
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
