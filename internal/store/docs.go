package store

import (
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/rodriguescarson/cfkit/internal/model"
)

// File names under the data directory.
const (
	SolvedFile   = "solved_problems.json"
	RatingFile   = "rating_history.json"
	LedgerFile   = "reminders_sent.json"
	APICacheFile = "api_cache.json"
)

// APICacheLimit caps the submissions kept in api_cache.json.
const APICacheLimit = 100

// SolvedDoc is solved_problems.json.
type SolvedDoc struct {
	LastSync    *time.Time `json:"last_sync"`
	TotalSolved int        `json:"total_solved"`
	Problems    []string   `json:"problems"`
}

// Set returns the solved problem keys as a set.
func (d SolvedDoc) Set() model.SolvedSet {
	return model.NewSolvedSet(d.Problems...)
}

// RatingDoc is rating_history.json.
type RatingDoc struct {
	LastSync *time.Time           `json:"last_sync"`
	Handle   string               `json:"handle"`
	History  []model.RatingChange `json:"history"`
}

// SubmissionCache holds the most recent submissions.
type SubmissionCache struct {
	LastSync time.Time          `json:"last_sync"`
	Count    int                `json:"count"`
	Data     []model.Submission `json:"data"`
}

// APICache is api_cache.json.
type APICache struct {
	Submissions *SubmissionCache `json:"submissions,omitempty"`
}

// Ledger maps a contest id to the lead-time keys already notified ("60m").
type Ledger map[string][]string

// Sent reports whether key was recorded for contestID.
func (l Ledger) Sent(contestID, key string) bool {
	return slices.Contains(l[contestID], key)
}

// Mark records key for contestID. Marking twice is a no-op.
func (l Ledger) Mark(contestID, key string) {
	if l.Sent(contestID, key) {
		return
	}
	l[contestID] = append(l[contestID], key)
}

// Store locates the state files in one data directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New returns a Store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Path joins name onto the data directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadLedger returns the reminder ledger, empty when absent or corrupt.
func (s *Store) LoadLedger() Ledger {
	ledger := LoadOrDefault(s.Path(LedgerFile), Ledger{}, s.logger)
	if ledger == nil {
		ledger = Ledger{}
	}
	return ledger
}

// SaveLedger persists the reminder ledger.
func (s *Store) SaveLedger(l Ledger) error {
	return WriteJSON(s.Path(LedgerFile), l)
}

// LoadSolved returns the solved cache, empty when absent or corrupt.
func (s *Store) LoadSolved() SolvedDoc {
	return LoadOrDefault(s.Path(SolvedFile), SolvedDoc{Problems: []string{}}, s.logger)
}

// SaveSolved persists the solved cache.
func (s *Store) SaveSolved(d SolvedDoc) error {
	return WriteJSON(s.Path(SolvedFile), d)
}

// LoadRating returns the rating cache, empty when absent or corrupt.
func (s *Store) LoadRating() RatingDoc {
	return LoadOrDefault(s.Path(RatingFile), RatingDoc{History: []model.RatingChange{}}, s.logger)
}

// SaveRating persists the rating cache.
func (s *Store) SaveRating(d RatingDoc) error {
	return WriteJSON(s.Path(RatingFile), d)
}

// LoadAPICache returns the API cache, empty when absent or corrupt.
func (s *Store) LoadAPICache() APICache {
	return LoadOrDefault(s.Path(APICacheFile), APICache{}, s.logger)
}

// SaveSubmissions records the submission total and the newest APICacheLimit
// submissions in the API cache, keeping any other sections.
func (s *Store) SaveSubmissions(subs []model.Submission, now time.Time) error {
	cache := s.LoadAPICache()
	data := subs
	if len(data) > APICacheLimit {
		data = data[:APICacheLimit]
	}
	cache.Submissions = &SubmissionCache{
		LastSync: now.UTC(),
		Count:    len(subs),
		Data:     data,
	}
	return WriteJSON(s.Path(APICacheFile), cache)
}
