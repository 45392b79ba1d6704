package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List source files in the media directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			resp, err := c.Files(cmd.Context())
			if err != nil {
				return err
			}
			if len(resp.Files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No source files found.")
				return nil
			}

			rows := make([][]string, 0, len(resp.Files))
			for _, file := range resp.Files {
				rows = append(rows, []string{file.RelPath, formatSize(file.SizeBytes)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
