package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads a YAML config file and expands environment variables.
// An empty path yields an empty config.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config, applies environment overrides and defaults.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies overrides and defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

// applyEnv overrides file values with environment variables. The variable
// names match the ones the toolkit has always read from .env.
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("KEY", &c.Codeforces.APIKey)
	str("SECRET", &c.Codeforces.APISecret)
	str("CF_USERNAME", &c.Codeforces.Handle)
	str("CF_API_URL", &c.Codeforces.BaseURL)
	str("REMINDER_TIMES", &c.Reminders.Times)
	str("CONTEST_FILTER", &c.Reminders.ContestFilter)
	str("CF_DATA_DIR", &c.Storage.DataDir)
	str("CF_PRACTICE_LOG", &c.Storage.PracticeLog)
	str("TELEGRAM_BOT_TOKEN", &c.Notify.Telegram.Token)
	str("GOOGLE_SERVICE_ACCOUNT_JSON", &c.Sheets.CredentialsFile)
	str("GOOGLE_SHEETS_SPREADSHEET_ID", &c.Sheets.SpreadsheetID)
	str("ARCHIVE_DB_HOST", &c.Archive.Host)
	str("ARCHIVE_DB_NAME", &c.Archive.Name)
	str("ARCHIVE_DB_USER", &c.Archive.User)
	str("ARCHIVE_DB_PASSWORD", &c.Archive.Password)
	str("HTTP_ADDR", &c.Dashboard.Addr)

	if v, ok := lookup("INCLUDE_GYM"); ok && v != "" {
		c.Reminders.IncludeGym = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	if v, ok := lookup("NOTIFY_SINKS"); ok && v != "" {
		c.Notify.Sinks = splitList(v)
	}
	if v, ok := lookup("DASHBOARD_HANDLES"); ok && v != "" {
		c.Dashboard.Handles = splitList(v)
	}
	if v, ok := lookup("TELEGRAM_CHAT_ID"); ok && v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return &ConfigError{Field: "TELEGRAM_CHAT_ID", Message: fmt.Sprintf("invalid chat id %q", v)}
		}
		c.Notify.Telegram.ChatID = id
	}
	if v, ok := lookup("ARCHIVE_DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return &ConfigError{Field: "ARCHIVE_DB_PORT", Message: fmt.Sprintf("invalid port %q", v)}
		}
		c.Archive.Port = port
	}
	if c.Archive.Host != "" && !c.Archive.Enabled {
		_, set := lookup("ARCHIVE_DB_HOST")
		c.Archive.Enabled = set
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
