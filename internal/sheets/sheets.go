// Package sheets exports synced progress to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/progress"
)

// Exporter appends one row per newly solved problem.
type Exporter struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheet         string
}

// New authenticates with a service account JSON file.
func New(ctx context.Context, serviceAccountJSONPath, spreadsheetID, sheet string) (*Exporter, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return NewWithOptions(ctx, spreadsheetID, sheet,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
}

// NewWithOptions builds an Exporter from raw client options.
func NewWithOptions(ctx context.Context, spreadsheetID, sheet string, opts ...option.ClientOption) (*Exporter, error) {
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Exporter{srv: srv, spreadsheetID: spreadsheetID, sheet: sheet}, nil
}

// Export implements progress.Exporter.
func (e *Exporter) Export(ctx context.Context, snap progress.Snapshot) error {
	rows := Rows(snap)
	if len(rows) == 0 {
		return nil
	}

	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := e.srv.Spreadsheets.Values.Append(e.spreadsheetID, e.sheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", e.sheet, err)
	}
	return nil
}

// Rows renders the newly solved problems of snap as sheet rows:
// date, handle, problem, name, rating, difficulty.
func Rows(snap progress.Snapshot) [][]interface{} {
	problems := model.FirstAccepted(snap.Submissions)
	date := snap.SyncedAt.Format("2006-01-02")
	rows := make([][]interface{}, 0, len(snap.NewSolved))
	for _, key := range snap.NewSolved {
		p := problems[key]
		rows = append(rows, []interface{}{
			date,
			snap.Handle,
			key,
			p.Name,
			p.Rating,
			model.Difficulty(p.Rating),
		})
	}
	return rows
}
