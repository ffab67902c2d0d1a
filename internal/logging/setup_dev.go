//go:build !prod

package logging

import (
	"log/slog"
	"os"
)

// Setup installs a text logger on stdout. The returned close function is a no-op.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	})

	logger := slog.New(handler)
	setGlobal(logger)

	return logger, func() error { return nil }, nil
}
