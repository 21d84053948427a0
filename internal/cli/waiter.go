package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/context-lens/internal/app"
)

const spinnerTick = 100 * time.Millisecond

// Waiter shows a spinner with rotating status messages while work runs.
type Waiter struct {
	writer io.Writer
	now    func() time.Time
}

// NewWaiter creates a waiter that draws on w.
func NewWaiter(w io.Writer) *Waiter {
	return &Waiter{writer: w, now: time.Now}
}

// Wait runs fn and animates until it returns. The spinner is cleared afterwards.
func (w *Waiter) Wait(ctx context.Context, fn func(ctx context.Context) error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan]"+app.LoadingMessage(0)+"[reset]"),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	started := w.now()
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if finishErr := bar.Finish(); finishErr != nil {
				slog.Warn("Failed to finish spinner", "error", finishErr)
			}
			return err
		case <-ticker.C:
			bar.Describe("[cyan]" + app.LoadingMessage(w.now().Sub(started)) + "[reset]")
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update spinner", "error", err)
			}
		}
	}
}
