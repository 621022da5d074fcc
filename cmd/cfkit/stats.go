package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/report"
)

func newStatsCmd(a *app) *cobra.Command {
	var handle string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show user statistics from the API and the local caches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			h, err := a.cfg.RequireHandle(handle)
			if err != nil {
				return err
			}
			stats := report.Build(cmd.Context(), a.client(), a.store(), h, time.Now())
			return report.Render(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Codeforces handle (default CF_USERNAME)")
	return cmd
}
