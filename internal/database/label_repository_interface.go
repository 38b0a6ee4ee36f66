package database

import (
	"context"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// LabelReader defines read operations for labels.
type LabelReader interface {
	GetLabelByID(ctx context.Context, id int) (*models.Label, error)
	GetLabelByName(ctx context.Context, name string) (*models.Label, error)
	ListLabels(ctx context.Context) ([]*models.Label, error)
	GetLabelsForTask(ctx context.Context, taskID int) ([]*models.Label, error)
	CountTasksWithLabel(ctx context.Context, id int) (int, error)
}

// LabelWriter defines write operations for labels.
type LabelWriter interface {
	CreateLabel(ctx context.Context, name string) (*models.Label, error)
	UpdateLabel(ctx context.Context, id int, name string) error
	DeleteLabel(ctx context.Context, id int) error
}

// TaskLabelManager defines operations for managing task-label associations.
type TaskLabelManager interface {
	SetTaskLabels(ctx context.Context, taskID int, labelIDs []int) error
}

// LabelRepository combines all label-related operations.
type LabelRepository interface {
	LabelReader
	LabelWriter
	TaskLabelManager
}
