package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/codeforces"
	"github.com/rodriguescarson/cfkit/internal/config"
	"github.com/rodriguescarson/cfkit/internal/store"
	"github.com/rodriguescarson/cfkit/internal/version"
)

// app holds state shared by every command.
type app struct {
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// load sets up logging and reads configuration. Commands call it first so
// that `cfkit version` works without a valid config.
func (a *app) load(cmd *cobra.Command) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
	slog.SetDefault(a.logger)

	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.LoadAndValidate(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded",
		"version", version.Version,
		"config", a.configPath,
		"data_dir", cfg.Storage.DataDir,
	)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func (a *app) client() *codeforces.Client {
	cf := a.cfg.Codeforces
	opts := []codeforces.ClientOption{
		codeforces.WithTimeout(cf.Timeout),
		codeforces.WithLogger(a.logger),
	}
	if cf.APIKey != "" && cf.APISecret != "" {
		opts = append(opts, codeforces.WithCredentials(cf.APIKey, cf.APISecret))
	}
	return codeforces.NewClient(cf.BaseURL, opts...)
}

func (a *app) store() *store.Store {
	return store.New(a.cfg.Storage.DataDir, a.logger)
}
