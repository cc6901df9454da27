package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/platform/logger"
)

// loadAppConfig loads the configuration and sets up the JSON logger.
func loadAppConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend)
	if cfg.Database.URL != "" {
		l.Debug("database configuration", "url_present", true)
	}

	return cfg, l, nil
}
