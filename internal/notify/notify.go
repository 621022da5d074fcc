// Package notify delivers reminder notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Notification is one message for the user.
type Notification struct {
	Title    string
	Message  string
	Subtitle string
	Sound    string
	URL      string
}

// Text renders the notification as plain text lines.
func (n Notification) Text() string {
	var parts []string
	for _, s := range []string{n.Title, n.Subtitle, n.Message, n.URL} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Sink delivers a notification. A nil error means it was delivered.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// Multi fans a notification out to several sinks. It succeeds when at least
// one sink succeeds.
type Multi struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewMulti returns a Multi over sinks.
func NewMulti(logger *slog.Logger, sinks ...Sink) *Multi {
	if logger == nil {
		logger = slog.Default()
	}
	return &Multi{sinks: sinks, logger: logger}
}

// Send implements Sink.
func (m *Multi) Send(ctx context.Context, n Notification) error {
	if len(m.sinks) == 0 {
		return errors.New("no notification sinks configured")
	}

	var errs []error
	delivered := false
	for _, s := range m.sinks {
		if err := s.Send(ctx, n); err != nil {
			m.logger.Warn("notification sink failed",
				"sink", fmt.Sprintf("%T", s),
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		delivered = true
	}
	if delivered {
		return nil
	}
	return errors.Join(errs...)
}

// Log writes notifications to a logger. It never fails.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a Log sink.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Send implements Sink.
func (l *Log) Send(_ context.Context, n Notification) error {
	l.logger.Info("notification",
		"title", n.Title,
		"subtitle", n.Subtitle,
		"message", n.Message,
		"url", n.URL,
	)
	return nil
}
