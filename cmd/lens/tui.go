package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/tui"
	"github.com/Veraticus/context-lens/internal/tui/themes"
)

func tuiCmd() *cobra.Command {
	var (
		theme        string
		noAnimations bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive screen",
		Long: `Open the full-screen interface: log in, pick a photo, add a note, analyze,
and browse history in one place.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log lines would tear the alternate screen.
			if err := common.SetupLogger(io.Discard, slog.LevelError, "console"); err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return tui.Run(cmd.Context(), s.ctrl,
				tui.WithTheme(themes.ByName(theme)),
				tui.WithAnimations(!noAnimations),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin)")
	cmd.Flags().BoolVar(&noAnimations, "no-animations", false, "disable spinners and progress animation")

	return cmd
}
