package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/deps"
)

func newBackendsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "Report installed transcription backends and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			statuses := deps.CheckBinaries(deps.DefaultRequirements(
				cfg.Whisper.Python, cfg.CLI.Binary, cfg.Audio.FFmpeg,
			))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Detail
				if status.Available {
					detail = status.Description
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					availabilityLabel(status.Available, colorize),
					detail,
				})
			}
			fmt.Fprintln(stdout, renderTable(
				[]string{"Tool", "Command", "Available", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			detector := deps.NewDetector(cfg.Whisper.Python, cfg.CLI.Binary)
			backend := detector.Detect(cmd.Context())
			if backend == deps.BackendNone {
				fmt.Fprintln(stdout, "No transcription backend detected.")
				fmt.Fprintln(stdout, deps.InstallHint())
				return nil
			}
			fmt.Fprintf(stdout, "Selected backend: %s\n", backend)
			fmt.Fprintf(stdout, "CUDA available: %s\n", yesNo(deps.CUDAAvailable()))
			return nil
		},
	}
}
