package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// Load decodes the JSON document at path.
func Load[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, &CacheReadError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, &CacheReadError{Path: path, Err: err}
	}
	return v, nil
}

// LoadOrDefault decodes path, returning def when the file is missing or
// corrupt. Corruption is logged; absence is not.
func LoadOrDefault[T any](path string, def T, logger *slog.Logger) T {
	v, err := Load[T](path)
	if err == nil {
		return v
	}
	if logger == nil {
		logger = slog.Default()
	}
	if !errors.Is(err, os.ErrNotExist) {
		logger.Warn("ignoring unreadable state file",
			"path", path,
			"error", err,
		)
	}
	return def
}

// WriteJSON writes v as indented JSON, replacing path atomically.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}
