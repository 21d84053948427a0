package tui

import (
	"time"

	"github.com/Veraticus/context-lens/internal/model"
)

// stateLoadedMsg reports the initial load of profile and history.
type stateLoadedMsg struct {
	err error
}

// actionDoneMsg reports a finished controller transition.
type actionDoneMsg struct {
	err    error
	notice string
}

// analysisDoneMsg reports a settled (or canceled) analysis.
type analysisDoneMsg struct {
	err  error
	resp model.FullAnalysisResponse
}

// loadingTickMsg refreshes the loading message and progress.
type loadingTickMsg time.Time
