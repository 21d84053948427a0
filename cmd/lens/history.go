package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/context-lens/internal/cli"
	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/model"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past analyses",
		Long:  `View, delete, and clear the last 10 analyses saved on this machine.`,
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())
	cmd.AddCommand(historyClearCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List past analyses, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return printLine(cmd.OutOrStdout(), cli.RenderHistoryList(s.ctrl.Snapshot().History, time.Now()))
		},
	}
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a past analysis",
		Long:  `Show a past analysis. The id may be shortened to any unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := findHistoryItem(s.ctrl.Snapshot().History, args[0])
			if err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), cli.RenderHistoryItem(item, time.Now()))
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a past analysis",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := findHistoryItem(s.ctrl.Snapshot().History, args[0])
			if err != nil {
				return err
			}
			if err := s.ctrl.DeleteHistoryItem(ctx, item.ID); err != nil {
				return err
			}
			return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s (%s)", item.Title(), item.ID)))
		},
	}
}

func historyClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every past analysis and keep the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			count := len(s.ctrl.Snapshot().History)
			if count == 0 {
				return printLine(out, cli.FormatInfo("History is already empty."))
			}

			if !yes {
				prompter := cli.NewPrompter(cmd.InOrStdin(), out)
				confirmed, err := prompter.Confirm(ctx, fmt.Sprintf("Delete %d saved analyses?", count))
				if err != nil {
					return err
				}
				if !confirmed {
					return printLine(out, cli.FormatInfo("Nothing deleted."))
				}
			}

			if err := s.ctrl.ClearHistory(ctx); err != nil {
				return err
			}
			return printLine(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d analyses.", count)))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

// findHistoryItem resolves an exact id or a unique id prefix.
func findHistoryItem(items []model.HistoryItem, ref string) (model.HistoryItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.HistoryItem{}, fmt.Errorf("%w: empty id", common.ErrHistoryNotFound)
	}
	if item, ok := model.FindHistoryItem(items, ref); ok {
		return item, nil
	}

	var matches []model.HistoryItem
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return model.HistoryItem{}, fmt.Errorf("%w: %s", common.ErrHistoryNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.HistoryItem{}, fmt.Errorf("id prefix %q matches %d analyses", ref, len(matches))
	}
}
