package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var aspect string

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Probe a source file and show the derived corrections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}
			report, err := c.Inspect(cmd.Context(), args[0], aspect)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Path", report.Path},
				{"Size", formatSize(report.SizeBytes)},
				{"Duration", formatDuration(report.DurationSeconds)},
				{"Video", fmt.Sprintf("%s %dx%d", report.VideoCodec, report.Width, report.Height)},
				{"Interlaced", fmt.Sprintf("%t", report.Interlaced)},
			}
			if report.SampleAspectRatio != "" {
				rows = append(rows, []string{"SAR", report.SampleAspectRatio})
			}
			if report.Crop != nil {
				rows = append(rows, []string{"Crop", fmt.Sprintf("%d:%d:%d:%d",
					report.Crop.Width, report.Crop.Height, report.Crop.XOffset, report.Crop.YOffset)})
			}
			if report.AspectLabel != "" {
				rows = append(rows, []string{"Aspect", report.AspectLabel})
			}
			rows = append(rows, []string{"Filter chain", orDash(report.FilterChain)})
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))

			if len(report.Corrections) > 0 {
				fmt.Fprintln(out, "Corrections:")
				for _, correction := range report.Corrections {
					fmt.Fprintf(out, "  - %s\n", correction)
				}
			}

			if len(report.AudioTracks) > 0 {
				audioRows := make([][]string, 0, len(report.AudioTracks))
				for _, track := range report.AudioTracks {
					audioRows = append(audioRows, []string{
						fmt.Sprintf("%d", track.StreamIndex),
						track.Label,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Stream", "Audio"}, audioRows, nil))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&aspect, "aspect", "",
		"Override the display aspect ratio ("+strings.Join(aspectFlagValues(), ", ")+")")
	return cmd
}
