package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScreenshotsCommand(ctx *commandContext) *cobra.Command {
	var filterChain string
	var useCorrections bool

	cmd := &cobra.Command{
		Use:   "screenshots <path>",
		Short: "Extract preview frames from a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}

			chain := filterChain
			if useCorrections && chain == "" {
				report, err := c.Inspect(cmd.Context(), args[0], "")
				if err != nil {
					return err
				}
				chain = report.FilterChain
			}

			resp, err := c.Screenshots(cmd.Context(), args[0], chain)
			if err != nil {
				return err
			}
			for _, frame := range resp.Frames {
				fmt.Fprintln(cmd.OutOrStdout(), frame)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filterChain, "filters", "", "Filter chain to apply to the frames")
	cmd.Flags().BoolVar(&useCorrections, "corrections", false, "Apply the derived correction chain")
	return cmd
}
