package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/database"
	labelservice "github.com/thenoetrevino/taskmanager/internal/services/label"
	statusservice "github.com/thenoetrevino/taskmanager/internal/services/status"
	taskservice "github.com/thenoetrevino/taskmanager/internal/services/task"
	userservice "github.com/thenoetrevino/taskmanager/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db      *sql.DB
	dialect database.Dialect

	// Repository layer (direct database access)
	repo database.DataStore

	// Hasher is shared by registration, login and fixture loading
	Hasher *auth.PasswordHasher

	// Service layer (business logic)
	UserService   userservice.Service
	StatusService statusservice.Service
	LabelService  labelservice.Service
	TaskService   taskservice.Service

	logger *slog.Logger
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *sql.DB, dialect database.Dialect, opts ...Option) *App {
	cfg := &appConfig{
		bcryptCost: auth.DefaultBcryptCost,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	repo := database.NewRepository(db, dialect)
	hasher := auth.NewPasswordHasher(cfg.bcryptCost)

	return &App{
		db:            db,
		dialect:       dialect,
		repo:          repo,
		Hasher:        hasher,
		UserService:   userservice.NewService(repo, hasher),
		StatusService: statusservice.NewService(repo),
		LabelService:  labelservice.NewService(repo),
		TaskService:   taskservice.NewService(repo),
		logger:        cfg.logger,
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// DB returns the database handle together with its dialect
func (a *App) DB() (*sql.DB, database.Dialect) {
	return a.db, a.dialect
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the database connection.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
