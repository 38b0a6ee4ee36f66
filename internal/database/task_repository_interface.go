package database

import (
	"context"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	GetTaskDetail(ctx context.Context, id int) (*models.TaskDetail, error)
	ListTaskDetails(ctx context.Context, filter models.TaskFilter) ([]*models.TaskDetail, error)
	CountTasks(ctx context.Context) (int, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id int) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}
