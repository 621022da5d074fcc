// Command cfkit is a personal Codeforces toolkit: contest reminders, progress
// sync, stats, contest pull and a small web dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cfkit",
		Short:         "Codeforces toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env", ".env", "path to .env file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRemindCmd(a))
	root.AddCommand(newSyncCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newPullCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newNotifyCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}
