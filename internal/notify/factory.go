package notify

import (
	"fmt"
	"log/slog"

	"github.com/rodriguescarson/cfkit/internal/config"
)

// New builds the configured sinks. A single sink is returned as is; several
// are wrapped in a Multi.
func New(cfg config.NotifyConfig, logger *slog.Logger) (Sink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var sinks []Sink
	for _, name := range cfg.Sinks {
		switch name {
		case "desktop":
			sinks = append(sinks, NewDesktop(!cfg.NoOpen, logger))
		case "log":
			sinks = append(sinks, NewLog(logger))
		case "telegram":
			tg, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, tg)
		default:
			return nil, fmt.Errorf("unknown notification sink %q", name)
		}
	}

	switch len(sinks) {
	case 0:
		return NewLog(logger), nil
	case 1:
		return sinks[0], nil
	default:
		return NewMulti(logger, sinks...), nil
	}
}
