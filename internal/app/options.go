package app

import (
	"log/slog"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	bcryptCost int
	logger     *slog.Logger
}

// WithBcryptCost sets the bcrypt cost used for new password hashes
func WithBcryptCost(cost int) Option {
	return func(cfg *appConfig) {
		cfg.bcryptCost = cost
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
