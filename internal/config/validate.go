package config

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or invalid setting. It is raised before any
// network activity.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.Codeforces.Timeout <= 0 {
		return &ConfigError{Field: "codeforces.timeout", Message: "must be positive"}
	}
	if c.Codeforces.PageSize < 1 || c.Codeforces.PageSize > 10000 {
		return &ConfigError{Field: "codeforces.page_size", Message: fmt.Sprintf("must be between 1 and 10000, got %d", c.Codeforces.PageSize)}
	}
	if (c.Codeforces.APIKey == "") != (c.Codeforces.APISecret == "") {
		return &ConfigError{Field: "codeforces.api_key", Message: "api key and secret must be set together"}
	}

	for _, sink := range c.Notify.Sinks {
		switch sink {
		case "desktop", "log":
		case "telegram":
			if c.Notify.Telegram.Token == "" {
				return &ConfigError{Field: "notify.telegram.token", Message: "required by telegram sink"}
			}
			if c.Notify.Telegram.ChatID == 0 {
				return &ConfigError{Field: "notify.telegram.chat_id", Message: "required by telegram sink"}
			}
		default:
			return &ConfigError{Field: "notify.sinks", Message: fmt.Sprintf("unknown sink %q", sink)}
		}
	}

	if c.Archive.Enabled {
		if err := c.Archive.validate("archive"); err != nil {
			return err
		}
	}

	return nil
}

func (db *ArchiveConfig) validate(prefix string) error {
	if db.Host == "" {
		return &ConfigError{Field: prefix + ".host", Message: "is required"}
	}
	if db.Name == "" {
		return &ConfigError{Field: prefix + ".name", Message: "is required"}
	}
	if db.User == "" {
		return &ConfigError{Field: prefix + ".user", Message: "is required"}
	}
	if db.MaxConns < 1 {
		return &ConfigError{Field: prefix + ".max_conns", Message: "must be >= 1"}
	}
	if db.MinConns > db.MaxConns {
		return &ConfigError{Field: prefix + ".min_conns", Message: fmt.Sprintf("(%d) cannot exceed max_conns (%d)", db.MinConns, db.MaxConns)}
	}
	return nil
}

// RequireHandle returns the handle to use, preferring override.
func (c *Config) RequireHandle(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if c.Codeforces.Handle == "" {
		return "", &ConfigError{Field: "codeforces.handle", Message: "not set; add CF_USERNAME=your_handle to .env"}
	}
	return c.Codeforces.Handle, nil
}

// RequireCredentials fails unless both API key and secret are configured.
func (c *Config) RequireCredentials() error {
	if c.Codeforces.APIKey == "" || c.Codeforces.APISecret == "" {
		return &ConfigError{Field: "codeforces.api_key", Message: "KEY and SECRET are required"}
	}
	return nil
}

// IsConfigError reports whether err is a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
