package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rodriguescarson/cfkit/internal/filter"
	"github.com/rodriguescarson/cfkit/internal/model"
)

// ContestSource lists contests.
type ContestSource interface {
	ContestList(ctx context.Context, gym bool) ([]model.Contest, error)
}

// Snapshot is one refresh result.
type Snapshot struct {
	Contests  []model.Contest `json:"contests"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Config holds feed configuration.
type Config struct {
	Interval   time.Duration    // Refresh interval (default: 5m)
	Timeout    time.Duration    // Per-request timeout (default: 10s)
	Divisions  filter.Divisions // Empty accepts every division
	IncludeGym bool
	Buffer     int // Per-subscriber channel size (default: 1)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Minute,
		Timeout:  10 * time.Second,
		Buffer:   1,
	}
}

// Feed periodically refreshes the upcoming contest list.
type Feed struct {
	cfg    Config
	source ContestSource
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	latest *Snapshot
	subs   map[uuid.UUID]chan Snapshot

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Feed.
func New(cfg Config, source ContestSource, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = def.Buffer
	}
	return &Feed{
		cfg:    cfg,
		source: source,
		logger: logger,
		now:    time.Now,
		subs:   make(map[uuid.UUID]chan Snapshot),
	}
}

// Start begins the refresh loop.
func (f *Feed) Start(ctx context.Context) error {
	f.ctx, f.cancel = context.WithCancel(ctx)

	f.wg.Add(1)
	go f.run()

	f.logger.Info("contest feed started",
		"interval", f.cfg.Interval,
		"divisions", f.cfg.Divisions.String(),
	)

	return nil
}

// Stop shuts down the refresh loop and closes every subscription.
func (f *Feed) Stop(ctx context.Context) error {
	if f.cancel != nil {
		f.cancel()
	}

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	f.mu.Lock()
	for id, ch := range f.subs {
		close(ch)
		delete(f.subs, id)
	}
	f.mu.Unlock()

	f.logger.Info("contest feed stopped")
	return nil
}

// Latest returns the most recent snapshot, or false before the first
// successful refresh.
func (f *Feed) Latest() (Snapshot, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.latest == nil {
		return Snapshot{}, false
	}
	return *f.latest, true
}

// Subscribe registers a listener. The channel receives the latest snapshot
// right away when one exists. Call cancel to unsubscribe.
func (f *Feed) Subscribe() (<-chan Snapshot, func()) {
	id := uuid.New()
	ch := make(chan Snapshot, f.cfg.Buffer)

	f.mu.Lock()
	f.subs[id] = ch
	if f.latest != nil {
		ch <- *f.latest
	}
	f.mu.Unlock()

	f.logger.Debug("feed subscriber added", "subscriber", id)

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			close(c)
			delete(f.subs, id)
			f.logger.Debug("feed subscriber removed", "subscriber", id)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of active subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// run is the main refresh loop.
func (f *Feed) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	// Refresh immediately on start.
	f.refresh(f.ctx)

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			f.refresh(f.ctx)
		}
	}
}

// Refresh fetches the contest list once and publishes the result.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.refresh(ctx)
}

func (f *Feed) refresh(ctx context.Context) error {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	contests, err := f.source.ContestList(reqCtx, false)
	if err != nil {
		f.logger.Warn("contest feed refresh failed", "error", err)
		return err
	}

	now := f.now()
	snap := Snapshot{
		Contests:  filter.Upcoming(contests, f.cfg.Divisions, now, f.cfg.IncludeGym),
		FetchedAt: now,
	}
	if snap.Contests == nil {
		snap.Contests = []model.Contest{}
	}

	f.publish(snap)

	f.logger.Debug("contest feed refreshed",
		"upcoming", len(snap.Contests),
		"duration", time.Since(start),
	)
	return nil
}

func (f *Feed) publish(snap Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = &snap
	for id, ch := range f.subs {
		// Drop the stale value so slow readers always see the newest list.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
			f.logger.Debug("feed subscriber lagging", "subscriber", id)
		}
	}
}
