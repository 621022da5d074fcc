package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/filter"
	"github.com/rodriguescarson/cfkit/internal/notify"
	"github.com/rodriguescarson/cfkit/internal/reminder"
)

const upcomingShown = 5

func newRemindCmd(a *app) *cobra.Command {
	var (
		filterFlag string
		timesFlag  string
		includeGym bool
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send reminders for upcoming contests",
		Long: "Checks the contest list once and sends every reminder that is due now.\n" +
			"Run it every few minutes from cron; each (contest, lead time) pair is\n" +
			"notified at most once.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			rc := a.cfg.Reminders
			if cmd.Flags().Changed("filter") {
				rc.ContestFilter = filterFlag
			}
			if cmd.Flags().Changed("times") {
				rc.Times = timesFlag
			}
			if cmd.Flags().Changed("include-gym") {
				rc.IncludeGym = includeGym
			}

			sink, err := notify.New(a.cfg.Notify, a.logger)
			if err != nil {
				return err
			}

			divisions := filter.ParseDivisions(rc.ContestFilter)
			leadTimes := filter.ParseLeadTimes(rc.Times)

			sched := reminder.New(sink, a.store(),
				reminder.WithLeadTimes(leadTimes),
				reminder.WithSound(a.cfg.Notify.Sound),
				reminder.WithLogger(a.logger),
			)

			res, err := sched.Check(cmd.Context(), a.client(), divisions, rc.IncludeGym)
			if err != nil {
				return err
			}

			printRemindResult(cmd.OutOrStdout(), res, divisions, leadTimes, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&filterFlag, "filter", "", "divisions to include, e.g. div2,div3 or all")
	cmd.Flags().StringVar(&timesFlag, "times", "", "lead times in minutes, e.g. 1440,60,15")
	cmd.Flags().BoolVar(&includeGym, "include-gym", false, "include gym contests")
	return cmd
}

func printRemindResult(w io.Writer, res *reminder.Result, divisions filter.Divisions, leadTimes []int, now time.Time) {
	fmt.Fprintf(w, "Checking contests (filter: %s, reminders: %v min)\n", divisions, leadTimes)

	if len(res.Contests) == 0 {
		fmt.Fprintln(w, "No upcoming contests match the filter.")
	} else {
		fmt.Fprintf(w, "Upcoming contests (%d):\n", len(res.Contests))
		for i, c := range res.Contests {
			if i == upcomingShown {
				fmt.Fprintf(w, "  ... and %d more\n", len(res.Contests)-upcomingShown)
				break
			}
			start, _ := c.StartTime()
			fmt.Fprintf(w, "  %d  %s\n      %s (in %s)\n", c.ID, c.Name,
				reminder.FormatStart(start), reminder.FormatUntil(start, now))
		}
	}

	for _, r := range res.Sent {
		fmt.Fprintf(w, "Sent %s reminder for %s\n", reminder.LeadKey(r.LeadTime), r.Name)
	}
	for _, r := range res.Failed {
		fmt.Fprintf(w, "Failed %s reminder for %s: %v\n", reminder.LeadKey(r.LeadTime), r.Name, r.Err)
	}
	if len(res.Sent) == 0 && len(res.Failed) == 0 {
		fmt.Fprintln(w, "No reminders due.")
	}
}
