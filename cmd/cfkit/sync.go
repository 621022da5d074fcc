package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/database"
	"github.com/rodriguescarson/cfkit/internal/progress"
	"github.com/rodriguescarson/cfkit/internal/report"
	"github.com/rodriguescarson/cfkit/internal/sheets"
)

func newSyncCmd(a *app) *cobra.Command {
	var handle string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync solved problems and rating history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			h, err := a.cfg.RequireHandle(handle)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			exporters, closeExporters := a.exporters(ctx)
			defer closeExporters()

			syncer := progress.NewSyncer(a.client(), a.store(),
				progress.WithPracticeLog(a.cfg.Storage.PracticeLog),
				progress.WithPaging(a.cfg.Codeforces.PageSize, a.cfg.Codeforces.PageDelay),
				progress.WithExporters(exporters...),
				progress.WithLogger(a.logger),
			)

			rep, err := syncer.Sync(ctx, h)
			if err != nil {
				return err
			}
			printSyncReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Codeforces handle (default CF_USERNAME)")
	return cmd
}

// exporters builds the optional sync exporters. A backend that cannot be
// reached is skipped with a warning so the local caches still update.
func (a *app) exporters(ctx context.Context) ([]progress.Exporter, func()) {
	var (
		out     []progress.Exporter
		closers []func()
	)

	if sc := a.cfg.Sheets; sc.Enabled() {
		exp, err := sheets.New(ctx, sc.CredentialsFile, sc.SpreadsheetID, sc.Sheet)
		if err != nil {
			a.logger.Warn("google sheets export disabled", "error", err)
		} else {
			out = append(out, exp)
		}
	}

	if a.cfg.Archive.Enabled {
		a.logger.Info("connecting to archive database",
			"host", a.cfg.Archive.Host,
			"port", a.cfg.Archive.Port,
			"database", a.cfg.Archive.Name,
		)
		pool, err := database.Connect(ctx, a.cfg.Archive)
		if err != nil {
			a.logger.Warn("archive export disabled", "error", err)
		} else {
			archive := database.NewArchive(pool, a.logger)
			if err := archive.EnsureSchema(ctx); err != nil {
				a.logger.Warn("archive export disabled", "error", err)
				pool.Close()
			} else {
				out = append(out, archive)
				closers = append(closers, pool.Close)
			}
		}
	}

	return out, func() {
		for _, c := range closers {
			c()
		}
	}
}

func printSyncReport(w io.Writer, rep *progress.Report) {
	fmt.Fprintf(w, "Synced %s\n", rep.Handle)
	fmt.Fprintf(w, "  Submissions:    %d\n", rep.Submissions)
	fmt.Fprintf(w, "  Solved:         %d\n", rep.Solved)
	if len(rep.NewSolved) > 0 {
		fmt.Fprintf(w, "  New solved:     %d (%s)\n", len(rep.NewSolved), strings.Join(rep.NewSolved, ", "))
	} else {
		fmt.Fprintln(w, "  New solved:     0")
	}
	fmt.Fprintf(w, "  Rated contests: %d\n", rep.RatingChanges)
	if rep.RatingChanges > 0 {
		fmt.Fprintf(w, "  Rating:         %s %s\n", report.FormatRating(rep.CurrentRating), report.FormatDelta(rep.LastDelta))
	}
	if len(rep.PracticeLogged) > 0 {
		fmt.Fprintf(w, "  Practice log:   +%d entries\n", len(rep.PracticeLogged))
	}
	for _, err := range rep.ExportErrors {
		fmt.Fprintf(w, "  Export failed:  %v\n", err)
	}
}
