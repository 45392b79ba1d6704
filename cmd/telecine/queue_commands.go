package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"telecine/internal/api"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show queued and running encodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			state, err := c.Queue(cmd.Context())
			if err != nil {
				return err
			}
			if state.Current == nil && len(state.Pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty.")
				return nil
			}

			var rows [][]string
			if state.Current != nil {
				rows = append(rows, queueRow(*state.Current))
			}
			for _, job := range state.Pending {
				rows = append(rows, queueRow(job))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Status", "Progress", "Output size", "Est. final", "Input"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func queueRow(job api.JobView) []string {
	outputSize := "-"
	estimate := "-"
	if job.OutputSizeBytes > 0 {
		outputSize = formatSize(job.OutputSizeBytes)
		if projected := estimatedFinalSize(job.OutputSizeBytes, job.Progress); projected > 0 {
			estimate = formatSize(projected)
		}
	}
	return []string{
		job.ID,
		job.Status,
		formatProgress(job.Progress),
		outputSize,
		estimate,
		job.Input,
	}
}

func newCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel a queued or running encode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			cancelled, err := c.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !cancelled {
				return fmt.Errorf("no job with id %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", args[0])
			return nil
		},
	}
}
