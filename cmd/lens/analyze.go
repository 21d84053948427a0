package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Veraticus/context-lens/internal/cli"
	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/config"
	"github.com/Veraticus/context-lens/internal/model"
)

func analyzeCmd() *cobra.Command {
	var (
		note      string
		grounding bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Diagnose the object in a photo",
		Long: `Send a photo to the model and print what is broken, why it matters and how
to fix it. Estimates use the currency from your profile. The result is saved
to history.

Examples:
  lens analyze ~/Pictures/washer.jpg
  lens analyze phone.heic --note "screen flickers after a drop"
  lens analyze bike.png --grounding --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), func(cfg *config.Config) {
				if grounding {
					cfg.LLM.Grounding = true
				}
			})
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.ctrl.Snapshot().LoggedIn() {
				return common.NewUserError("Not logged in. Run: lens login <username>", common.ErrNotLoggedIn)
			}

			if err := s.ctrl.SelectFile(config.ExpandPath(args[0])); err != nil {
				return err
			}
			if err := s.ctrl.SetNote(note); err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Canceling analysis...")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			var resp model.FullAnalysisResponse
			err = cli.NewWaiter(cmd.ErrOrStderr()).Wait(ctx, func(ctx context.Context) error {
				var submitErr error
				resp, submitErr = s.ctrl.Submit(ctx)
				return submitErr
			})
			if err != nil {
				if handler.WasInterrupted() {
					return common.NewUserError("Analysis canceled.", common.ErrAnalysisCanceled)
				}
				return err
			}

			return printAnalysis(cmd, resp, asJSON)
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "extra context for the model, e.g. what happened")
	cmd.Flags().BoolVarP(&grounding, "grounding", "g", false, "let the model search the web and cite sources")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")

	return cmd
}

func printAnalysis(cmd *cobra.Command, resp model.FullAnalysisResponse, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return printLine(out, string(data))
	}

	if err := printLine(out, cli.RenderReport(resp)); err != nil {
		return err
	}
	if !resp.Decoded() {
		return printLine(out, cli.FormatWarning("The model's answer could not be read as a report; showing it as text."))
	}
	return nil
}
