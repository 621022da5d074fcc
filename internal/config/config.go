package config

import "time"

// Config is the root configuration for every cfkit command.
type Config struct {
	Codeforces CodeforcesConfig `yaml:"codeforces"`
	Reminders  RemindersConfig  `yaml:"reminders"`
	Storage    StorageConfig    `yaml:"storage"`
	Notify     NotifyConfig     `yaml:"notify"`
	Sheets     SheetsConfig     `yaml:"sheets"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Dashboard  DashboardConfig  `yaml:"dashboard"`
	Pull       PullConfig       `yaml:"pull"`
}

// CodeforcesConfig holds API settings.
type CodeforcesConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	Handle    string        `yaml:"handle"`
	Timeout   time.Duration `yaml:"timeout"`
	PageSize  int           `yaml:"page_size"`  // user.status page size during sync
	PageDelay time.Duration `yaml:"page_delay"` // pause between sync pages
}

// RemindersConfig holds contest reminder settings.
type RemindersConfig struct {
	Times         string `yaml:"times"`          // comma-separated minutes
	ContestFilter string `yaml:"contest_filter"` // comma-separated divN tokens or "all"
	IncludeGym    bool   `yaml:"include_gym"`
}

// StorageConfig locates the local JSON caches.
type StorageConfig struct {
	DataDir     string `yaml:"data_dir"`
	PracticeLog string `yaml:"practice_log"`
}

// NotifyConfig selects notification sinks.
type NotifyConfig struct {
	Sinks    []string       `yaml:"sinks"` // desktop, telegram, log
	Sound    string         `yaml:"sound"`
	NoOpen   bool           `yaml:"no_open"` // skip opening the contest page
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// SheetsConfig holds the optional Google Sheets progress export.
type SheetsConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	Sheet           string `yaml:"sheet"`
}

// Enabled reports whether a spreadsheet is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsFile != "" && s.SpreadsheetID != ""
}

// ArchiveConfig holds the optional PostgreSQL archive.
type ArchiveConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// DashboardConfig holds the HTTP dashboard settings.
type DashboardConfig struct {
	Addr            string        `yaml:"addr"`
	Handles         []string      `yaml:"handles"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// PullConfig holds contest pull settings.
type PullConfig struct {
	Dir          string `yaml:"dir"`
	TemplateFile string `yaml:"template_file"`
}
