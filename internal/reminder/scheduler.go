package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rodriguescarson/cfkit/internal/filter"
	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/notify"
	"github.com/rodriguescarson/cfkit/internal/store"
)

const (
	// Title is the notification title of every reminder.
	Title = "Codeforces Contest Reminder"

	// DefaultSound is the macOS notification sound.
	DefaultSound = "Glass"

	// Window is the tolerance around a reminder instant.
	Window = 300 * time.Second
)

// LedgerStore loads and saves the reminder ledger.
type LedgerStore interface {
	LoadLedger() store.Ledger
	SaveLedger(store.Ledger) error
}

// ContestLister lists contests from the API.
type ContestLister interface {
	ContestList(ctx context.Context, gym bool) ([]model.Contest, error)
}

// Reminder identifies one (contest, lead time) notification.
type Reminder struct {
	ContestID int
	Name      string
	LeadTime  int // minutes
	Err       error
}

// Result summarizes a run.
type Result struct {
	RunID    string
	Contests []model.Contest // eligible contests, by start time
	Sent     []Reminder
	Failed   []Reminder
}

// Scheduler decides which reminders are due and sends them.
type Scheduler struct {
	sink      notify.Sink
	ledger    LedgerStore
	leadTimes []int
	sound     string
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLeadTimes sets the lead times in minutes. They are evaluated largest
// first.
func WithLeadTimes(minutes []int) Option {
	return func(s *Scheduler) {
		s.leadTimes = minutes
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithSound sets the notification sound.
func WithSound(sound string) Option {
	return func(s *Scheduler) {
		s.sound = sound
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates a Scheduler.
func New(sink notify.Sink, ledger LedgerStore, opts ...Option) *Scheduler {
	s := &Scheduler{
		sink:      sink,
		ledger:    ledger,
		leadTimes: filter.DefaultLeadTimes,
		sound:     DefaultSound,
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

// Check fetches contests, keeps the eligible ones and runs the scheduler on
// them.
func (s *Scheduler) Check(ctx context.Context, lister ContestLister, divisions filter.Divisions, includeGym bool) (*Result, error) {
	contests, err := lister.ContestList(ctx, includeGym)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}
	upcoming := filter.Upcoming(contests, divisions, s.now(), includeGym)
	return s.Run(ctx, upcoming)
}

// Run sends the reminders due now for the given eligible contests and
// persists the ledger. The returned error is non-nil only when the ledger
// cannot be saved; failed deliveries are reported in Result.Failed.
func (s *Scheduler) Run(ctx context.Context, contests []model.Contest) (*Result, error) {
	now := s.now()
	res := &Result{
		RunID:    uuid.NewString(),
		Contests: contests,
	}
	logger := s.logger.With("run_id", res.RunID)

	ledger := s.ledger.LoadLedger()

	for _, c := range contests {
		start, ok := c.StartTime()
		if !ok {
			continue
		}
		key := c.Key()
		if _, exists := ledger[key]; !exists {
			ledger[key] = []string{}
		}

		for _, lead := range s.leadTimes {
			leadKey := LeadKey(lead)
			if ledger.Sent(key, leadKey) {
				continue
			}
			if !Due(start, lead, now) {
				continue
			}

			r := Reminder{ContestID: c.ID, Name: c.Name, LeadTime: lead}
			if err := s.sink.Send(ctx, s.Notification(c, lead, now)); err != nil {
				r.Err = err
				res.Failed = append(res.Failed, r)
				logger.Warn("reminder not delivered",
					"contest_id", c.ID,
					"lead_time", leadKey,
					"error", err,
				)
				continue
			}

			ledger.Mark(key, leadKey)
			res.Sent = append(res.Sent, r)
			logger.Info("reminder sent",
				"contest_id", c.ID,
				"contest", c.Name,
				"lead_time", leadKey,
			)
		}
	}

	if err := s.ledger.SaveLedger(ledger); err != nil {
		return res, fmt.Errorf("save reminder ledger: %w", err)
	}

	logger.Debug("reminder run complete",
		"contests", len(contests),
		"sent", len(res.Sent),
		"failed", len(res.Failed),
	)
	return res, nil
}

// Due reports whether the reminder lead minutes before start is within
// Window of now. Both edges are inclusive.
func Due(start time.Time, lead int, now time.Time) bool {
	instant := start.Add(-time.Duration(lead) * time.Minute)
	diff := now.Sub(instant)
	if diff < 0 {
		diff = -diff
	}
	return diff <= Window
}

// Notification builds the reminder for contest c at lead time lead.
func (s *Scheduler) Notification(c model.Contest, lead int, now time.Time) notify.Notification {
	start, _ := c.StartTime()
	until := FormatUntil(start, now)
	when := FormatStart(start)

	n := notify.Notification{
		Title: Title,
		Sound: s.sound,
		URL:   c.URL(),
	}
	switch {
	case lead >= 1440:
		n.Message = fmt.Sprintf("%s starts in %s (%s)", c.Name, until, when)
		n.Subtitle = "Contest Reminder"
	case lead >= 60:
		n.Message = fmt.Sprintf("%s starts in %s!", c.Name, until)
		n.Subtitle = "Starts at " + when
	default:
		n.Message = fmt.Sprintf("%s starts in %s! Get ready!", c.Name, until)
		n.Subtitle = "Contest starting soon"
	}
	return n
}
