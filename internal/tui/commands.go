package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const loadingTickInterval = 250 * time.Millisecond

// loadState reads the persisted profile and history.
func (m Model) loadState() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return stateLoadedMsg{err: ctrl.Load(ctx)}
	}
}

// runAction runs a controller transition off the update loop.
func (m Model) runAction(notice string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: notice}
	}
}

// submitAnalysis runs one analysis; it blocks until the request settles.
func (m Model) submitAnalysis() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		resp, err := ctrl.Submit(ctx)
		return analysisDoneMsg{resp: resp, err: err}
	}
}

// tickLoading schedules the next loading refresh.
func (m Model) tickLoading() tea.Cmd {
	if !m.config.Animations {
		return nil
	}
	return tea.Tick(loadingTickInterval, func(t time.Time) tea.Msg {
		return loadingTickMsg(t)
	})
}
