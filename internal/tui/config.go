package tui

import (
	"time"

	"github.com/Veraticus/context-lens/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Now    func() time.Time
	Width  int
	Height int
	// Animations drives the spinner and blinking cursors; tests turn it off.
	Animations bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Now:        time.Now,
		Width:      100,
		Height:     30,
		Animations: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAnimations toggles spinner and cursor animation.
func WithAnimations(enabled bool) Option {
	return func(c *Config) {
		c.Animations = enabled
	}
}

// WithClock overrides the time source used for relative timestamps and loading messages.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
