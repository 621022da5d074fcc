package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultBaseURL         = "https://codeforces.com/api"
	DefaultAPITimeout      = 10 * time.Second
	DefaultPageSize        = 1000
	DefaultPageDelay       = 500 * time.Millisecond
	DefaultReminderTimes   = "1440,60,15"
	DefaultContestFilter   = "div2,div3"
	DefaultSound           = "Glass"
	DefaultSheet           = "Progress"
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultDashboardAddr   = ":8080"
	DefaultRefreshInterval = 5 * time.Minute
	DefaultPullDir         = "contests"
)

// DefaultSinks is used when no sink is configured.
var DefaultSinks = []string{"desktop"}

func (c *Config) applyDefaults() {
	// Codeforces defaults
	if c.Codeforces.BaseURL == "" {
		c.Codeforces.BaseURL = DefaultBaseURL
	}
	if c.Codeforces.Timeout == 0 {
		c.Codeforces.Timeout = DefaultAPITimeout
	}
	if c.Codeforces.PageSize == 0 {
		c.Codeforces.PageSize = DefaultPageSize
	}
	if c.Codeforces.PageDelay == 0 {
		c.Codeforces.PageDelay = DefaultPageDelay
	}

	// Reminder defaults
	if c.Reminders.Times == "" {
		c.Reminders.Times = DefaultReminderTimes
	}
	if c.Reminders.ContestFilter == "" {
		c.Reminders.ContestFilter = DefaultContestFilter
	}

	// Storage defaults live under ~/cf.
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = filepath.Join(homeDir(), "cf", "data")
	}
	if c.Storage.PracticeLog == "" {
		c.Storage.PracticeLog = filepath.Join(homeDir(), "cf", "practice_log.txt")
	}

	// Notify defaults
	if len(c.Notify.Sinks) == 0 {
		c.Notify.Sinks = append([]string(nil), DefaultSinks...)
	}
	if c.Notify.Sound == "" {
		c.Notify.Sound = DefaultSound
	}

	if c.Sheets.Sheet == "" {
		c.Sheets.Sheet = DefaultSheet
	}

	// Archive defaults
	if c.Archive.Port == 0 {
		c.Archive.Port = DefaultDBPort
	}
	if c.Archive.SSLMode == "" {
		c.Archive.SSLMode = DefaultDBSSLMode
	}
	if c.Archive.MaxConns == 0 {
		c.Archive.MaxConns = DefaultMaxConns
	}
	if c.Archive.MinConns == 0 {
		c.Archive.MinConns = DefaultMinConns
	}

	// Dashboard defaults
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = DefaultDashboardAddr
	}
	if c.Dashboard.RefreshInterval == 0 {
		c.Dashboard.RefreshInterval = DefaultRefreshInterval
	}

	if c.Pull.Dir == "" {
		c.Pull.Dir = DefaultPullDir
	}
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
