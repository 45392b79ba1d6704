package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"telecine/internal/api"
	"telecine/internal/encode"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		codec        string
		preset       string
		crf          int
		videoBitrate string
		audioCodec   string
		audioBitrate string
		audioStreams string
		filterChain  string
		inspectFirst bool
		aspect       string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "submit <path>",
		Short: "Queue a file for encoding",
		Long: `Queue a file for encoding. Without --filters, the source is inspected
first and the derived correction chain (deinterlace, crop, scaling) is
applied automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ctx.apiClient()
			if err != nil {
				return err
			}

			streams, err := parseStreamSelection(audioStreams)
			if err != nil {
				return err
			}

			chain := strings.TrimSpace(filterChain)
			input := args[0]
			if inspectFirst && chain == "" {
				report, err := c.Inspect(cmd.Context(), input, aspect)
				if err != nil {
					return err
				}
				chain = report.FilterChain
				input = report.Path
				if len(streams) == 0 {
					for _, track := range report.AudioTracks {
						streams = append(streams, track.StreamIndex)
					}
				}
			}

			target := strings.TrimSpace(output)
			if target == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = filepath.Join(cfg.Paths.OutputDir, filepath.Base(input))
			}

			job, err := c.Submit(cmd.Context(), api.SubmitRequest{
				Input:        input,
				FilterChain:  chain,
				VideoCodec:   codec,
				Preset:       preset,
				CRF:          crf,
				VideoBitrate: videoBitrate,
				AudioCodec:   audioCodec,
				AudioBitrate: audioBitrate,
				AudioStreams: streams,
				Output:       target,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Queued %s as job %s\n", job.Input, job.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&codec, "codec", encode.CodecX264, "Video codec (libx264, libx265, h264_nvenc)")
	cmd.Flags().StringVar(&preset, "preset", "medium", "Encoder preset (software codecs)")
	cmd.Flags().IntVar(&crf, "crf", 20, "Constant rate factor (software codecs)")
	cmd.Flags().StringVar(&videoBitrate, "video-bitrate", "", "Video bitrate for hardware codecs, e.g. 8M")
	cmd.Flags().StringVar(&audioCodec, "audio-codec", "", "Audio codec (default: stream copy)")
	cmd.Flags().StringVar(&audioBitrate, "audio-bitrate", "", "Audio bitrate, e.g. 640k")
	cmd.Flags().StringVar(&audioStreams, "audio", "", "Comma-separated input audio stream indices (default: all)")
	cmd.Flags().StringVar(&filterChain, "filters", "", "Explicit ffmpeg filter chain (skips inspection)")
	cmd.Flags().BoolVar(&inspectFirst, "inspect", true, "Derive corrections by inspecting the source first")
	cmd.Flags().StringVar(&aspect, "aspect", "", "Aspect ratio override used during inspection")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: output dir + source name)")
	return cmd
}

func parseStreamSelection(value string) ([]int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	streams := make([]int, 0, len(parts))
	for _, part := range parts {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid audio stream index %q", part)
		}
		streams = append(streams, index)
	}
	return streams, nil
}
