package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/ppl/internal/adapters/render/people"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive login and person search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Records would corrupt the full-screen program, so they only go
			// to a file when one is given.
			var logOutput io.Writer
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOutput = f
			}

			app, err := wireApp(opts, logOutput)
			if err != nil {
				return err
			}
			defer app.controller.Close()

			return app.withMetricsServer(cmd.Context(), func(ctx context.Context) error {
				return people.Run(ctx, app.controller)
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append log records to this file")

	return cmd
}
