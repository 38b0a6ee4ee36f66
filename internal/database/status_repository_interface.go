package database

import (
	"context"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// StatusReader defines read operations for statuses.
type StatusReader interface {
	GetStatusByID(ctx context.Context, id int) (*models.Status, error)
	GetStatusByName(ctx context.Context, name string) (*models.Status, error)
	ListStatuses(ctx context.Context) ([]*models.Status, error)
	CountTasksWithStatus(ctx context.Context, id int) (int, error)
}

// StatusWriter defines write operations for statuses.
type StatusWriter interface {
	CreateStatus(ctx context.Context, name string) (*models.Status, error)
	UpdateStatus(ctx context.Context, id int, name string) error
	DeleteStatus(ctx context.Context, id int) error
}

// StatusRepository combines all status-related operations.
type StatusRepository interface {
	StatusReader
	StatusWriter
}
