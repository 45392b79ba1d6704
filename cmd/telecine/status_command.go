package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			status, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}

			state := "idle"
			if status.Encoding {
				state = "encoding"
			}
			rows := [][]string{
				{"Running", fmt.Sprintf("%t", status.Running)},
				{"PID", fmt.Sprintf("%d", status.PID)},
				{"State", state},
				{"Queue depth", fmt.Sprintf("%d", status.QueueDepth)},
				{"Media dir", status.MediaDir},
				{"Output dir", status.OutputDir},
				{"Lock file", status.LockFilePath},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
