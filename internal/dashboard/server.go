package dashboard

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rodriguescarson/cfkit/internal/feed"
	"github.com/rodriguescarson/cfkit/internal/filter"
	"github.com/rodriguescarson/cfkit/internal/model"
)

//go:embed static/index.html
var static embed.FS

const (
	// StatsSubmissions is the number of recent submissions /api/stats reads.
	StatsSubmissions = 10
	// StatsRatingHistory is the number of rating changes /api/stats returns.
	StatsRatingHistory = 10

	shutdownTimeout = 10 * time.Second
)

// API is the part of the Codeforces client the dashboard needs.
type API interface {
	UserInfo(ctx context.Context, handles ...string) ([]model.User, error)
	UserStatus(ctx context.Context, handle string, from, count int) ([]model.Submission, error)
	UserRating(ctx context.Context, handle string) ([]model.RatingChange, error)
	ContestList(ctx context.Context, gym bool) ([]model.Contest, error)
}

// ContestFeed is the live upcoming-contest source behind /api/live.
type ContestFeed interface {
	Latest() (feed.Snapshot, bool)
	Subscribe() (<-chan feed.Snapshot, func())
}

// Server is the dashboard HTTP server.
type Server struct {
	api           API
	feed          ContestFeed
	logger        *slog.Logger
	now           func() time.Time
	defaultFilter string
	handles       []string
	pingInterval  time.Duration
	engine        *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithFeed enables /api/live.
func WithFeed(f ContestFeed) Option {
	return func(s *Server) {
		s.feed = f
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaultFilter sets the division filter used when the request has none.
func WithDefaultFilter(raw string) Option {
	return func(s *Server) {
		s.defaultFilter = raw
	}
}

// WithHandles sets the handles the dashboard page offers.
func WithHandles(handles ...string) Option {
	return func(s *Server) {
		s.handles = handles
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithPingInterval sets the websocket keepalive interval.
func WithPingInterval(d time.Duration) Option {
	return func(s *Server) {
		s.pingInterval = d
	}
}

// New creates a dashboard server.
func New(api API, opts ...Option) *Server {
	s := &Server{
		api:           api,
		logger:        slog.Default(),
		now:           time.Now,
		defaultFilter: "div2,div3",
		pingInterval:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger), cors())

	router.GET("/", s.index)
	router.GET("/health", s.health)

	api := router.Group("/api")
	{
		api.GET("/settings", s.settings)
		api.GET("/contests", s.contests)
		api.GET("/stats", s.stats)
		api.GET("/user", s.user)
		api.GET("/live", s.live)
	}

	return router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("dashboard stopped")
	return nil
}

// divisions resolves the filter query. An absent parameter uses the default
// filter; a present but empty one means all divisions.
func (s *Server) divisions(c *gin.Context) filter.Divisions {
	raw, ok := c.GetQuery("filter")
	if !ok {
		raw = s.defaultFilter
	}
	return filter.ParseDivisions(raw)
}
