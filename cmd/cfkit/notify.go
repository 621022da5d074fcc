package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/notify"
)

func newNotifyCmd(a *app) *cobra.Command {
	var title, subtitle, url string

	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Send a notification through the configured sinks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			sink, err := notify.New(a.cfg.Notify, a.logger)
			if err != nil {
				return err
			}
			n := notify.Notification{
				Title:    title,
				Message:  strings.Join(args, " "),
				Subtitle: subtitle,
				Sound:    a.cfg.Notify.Sound,
				URL:      url,
			}
			if err := sink.Send(cmd.Context(), n); err != nil {
				return fmt.Errorf("send notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notification sent.")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Codeforces", "notification title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "notification subtitle")
	cmd.Flags().StringVar(&url, "url", "", "page to open with the notification")
	return cmd
}
