package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/store"
)

// API is the part of the Codeforces client used by Sync.
type API interface {
	AllUserStatus(ctx context.Context, handle string, pageSize int, delay time.Duration) ([]model.Submission, error)
	UserRating(ctx context.Context, handle string) ([]model.RatingChange, error)
}

// Snapshot is the outcome of a sync handed to exporters.
type Snapshot struct {
	Handle      string
	SyncedAt    time.Time
	Solved      model.SolvedSet
	NewSolved   []string
	Submissions []model.Submission
	Rating      []model.RatingChange
}

// Exporter receives every successful sync.
type Exporter interface {
	Export(ctx context.Context, snap Snapshot) error
}

// Report summarizes a sync for display.
type Report struct {
	Handle         string
	Submissions    int
	Solved         int
	NewSolved      []string
	RatingChanges  int
	CurrentRating  int
	LastDelta      int
	PracticeLogged []string
	ExportErrors   []error
}

// Syncer runs progress syncs.
type Syncer struct {
	api         API
	store       *store.Store
	practiceLog string
	pageSize    int
	pageDelay   time.Duration
	exporters   []Exporter
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithPracticeLog sets the practice log path. Empty disables it.
func WithPracticeLog(path string) Option {
	return func(s *Syncer) { s.practiceLog = path }
}

// WithPaging sets the user.status page size and the pause between pages.
func WithPaging(size int, delay time.Duration) Option {
	return func(s *Syncer) {
		s.pageSize = size
		s.pageDelay = delay
	}
}

// WithExporters adds exporters.
func WithExporters(exporters ...Exporter) Option {
	return func(s *Syncer) { s.exporters = append(s.exporters, exporters...) }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) { s.logger = logger }
}

// NewSyncer creates a Syncer writing into st.
func NewSyncer(api API, st *store.Store, opts ...Option) *Syncer {
	s := &Syncer{
		api:       api,
		store:     st,
		pageSize:  1000,
		pageDelay: 500 * time.Millisecond,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Sync fetches submissions and rating history for handle and updates the
// caches. Fetch and cache write failures abort the sync; exporter failures
// are collected in the report.
func (s *Syncer) Sync(ctx context.Context, handle string) (*Report, error) {
	now := s.now()
	logger := s.logger.With("handle", handle)

	subs, err := s.api.AllUserStatus(ctx, handle, s.pageSize, s.pageDelay)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}
	solved := model.DeriveSolved(subs)
	previous := s.store.LoadSolved().Set()
	newSolved := solved.Minus(previous).Sorted()

	logger.Info("fetched submissions",
		"submissions", len(subs),
		"solved", len(solved),
		"new_solved", len(newSolved),
	)

	syncedAt := now.UTC()
	if err := s.store.SaveSolved(store.SolvedDoc{
		LastSync:    &syncedAt,
		TotalSolved: len(solved),
		Problems:    solved.Sorted(),
	}); err != nil {
		return nil, err
	}
	if err := s.store.SaveSubmissions(subs, now); err != nil {
		return nil, err
	}

	history, err := s.api.UserRating(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("fetch rating history: %w", err)
	}
	if history == nil {
		history = []model.RatingChange{}
	}
	if err := s.store.SaveRating(store.RatingDoc{
		LastSync: &syncedAt,
		Handle:   handle,
		History:  history,
	}); err != nil {
		return nil, err
	}

	report := &Report{
		Handle:        handle,
		Submissions:   len(subs),
		Solved:        len(solved),
		NewSolved:     newSolved,
		RatingChanges: len(history),
	}
	if n := len(history); n > 0 {
		report.CurrentRating = history[n-1].NewRating
		if n > 1 {
			report.LastDelta = history[n-1].NewRating - history[n-2].NewRating
		}
	}

	if s.practiceLog != "" && len(solved) > 0 {
		added, err := AppendPracticeLog(s.practiceLog, solved, subs, now)
		if err != nil {
			logger.Warn("practice log not updated", "error", err)
		}
		report.PracticeLogged = added
	}

	snap := Snapshot{
		Handle:      handle,
		SyncedAt:    syncedAt,
		Solved:      solved,
		NewSolved:   newSolved,
		Submissions: subs,
		Rating:      history,
	}
	for _, e := range s.exporters {
		if err := e.Export(ctx, snap); err != nil {
			logger.Warn("export failed",
				"exporter", fmt.Sprintf("%T", e),
				"error", err,
			)
			report.ExportErrors = append(report.ExportErrors, err)
		}
	}

	return report, nil
}
