// Package cli holds the shared plumbing of the taskmanager commands: opening
// the application from configuration, output formatting and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskmanager/internal/app"
	"github.com/thenoetrevino/taskmanager/internal/config"
	"github.com/thenoetrevino/taskmanager/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	owned  bool // App was opened here and must be closed
}

// NewCLI opens the configured database and builds the application container
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	driver, dsn := cfg.Database.Driver()
	db, dialect, err := database.Open(ctx, database.Options{Driver: driver, DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application := app.New(db, dialect, app.WithBcryptCost(cfg.BcryptCost))
	return &CLI{App: application, Config: cfg, owned: true}, nil
}

type appKey struct{}
type configKey struct{}

// WithApp injects a ready application into ctx. Commands use it instead of
// opening the configured database; tests rely on this.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// WithConfig stores the loaded configuration on ctx
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored by WithConfig
func ConfigFromContext(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

// GetCLIFromContext returns a CLI over the injected application, or opens
// one from the configuration on ctx.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: ConfigFromContext(ctx)}, nil
	}
	return NewCLI(ctx, ConfigFromContext(ctx))
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
