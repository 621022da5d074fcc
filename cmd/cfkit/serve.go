package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/dashboard"
	"github.com/rodriguescarson/cfkit/internal/feed"
	"github.com/rodriguescarson/cfkit/internal/filter"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Dashboard.Addr
			}
			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			ctx := cmd.Context()
			client := a.client()

			contests := feed.New(feed.Config{
				Interval:   a.cfg.Dashboard.RefreshInterval,
				Timeout:    a.cfg.Codeforces.Timeout,
				Divisions:  filter.ParseDivisions(a.cfg.Reminders.ContestFilter),
				IncludeGym: a.cfg.Reminders.IncludeGym,
			}, client, a.logger)
			if err := contests.Start(ctx); err != nil {
				return err
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				contests.Stop(stopCtx)
			}()

			srv := dashboard.New(client,
				dashboard.WithFeed(contests),
				dashboard.WithLogger(a.logger),
				dashboard.WithDefaultFilter(a.cfg.Reminders.ContestFilter),
				dashboard.WithHandles(a.cfg.Dashboard.Handles...),
			)
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
