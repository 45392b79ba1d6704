package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished, failed, and cancelled encodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			entries, err := c.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "History is empty.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.Job.ErrorMessage
				if detail == "" && entry.Job.OutputSizeBytes > 0 {
					detail = formatSize(entry.Job.OutputSizeBytes)
				}
				rows = append(rows, []string{
					entry.Job.ID,
					entry.Job.Status,
					entry.ArchivedAt,
					orDash(detail),
					entry.Job.Input,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Status", "Archived", "Detail", "Input"},
				rows, nil))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to list")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one archived encode with its encoder transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			entry, err := c.HistoryEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"ID", entry.Job.ID},
				{"Status", entry.Job.Status},
				{"Input", entry.Job.Input},
				{"Output", entry.Job.Output},
				{"Progress", formatProgress(entry.Job.Progress)},
				{"Archived", entry.ArchivedAt},
			}
			if entry.Job.ErrorMessage != "" {
				rows = append(rows, []string{"Error", entry.Job.ErrorMessage})
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))

			if len(entry.Transcript) > 0 {
				fmt.Fprintln(out, "Transcript:")
				for _, line := range entry.Transcript {
					fmt.Fprintf(out, "  %s\n", line)
				}
			}
			return nil
		},
	}
}
