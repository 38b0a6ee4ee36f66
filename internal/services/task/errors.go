package task

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// Task-related errors
var (
	// Validation errors
	ErrFieldRequired   = errors.New("this field is required")
	ErrNameTooLong     = fmt.Errorf("task name cannot exceed %d characters", models.MaxTaskNameLength)
	ErrUnknownStatus   = errors.New("select a valid status, that choice is not one of the available choices")
	ErrUnknownExecutor = errors.New("select a valid executor, that choice is not one of the available choices")
	ErrUnknownLabel    = errors.New("select a valid label, that choice is not one of the available choices")
	ErrInvalidFilterID = errors.New("enter a whole number")
	ErrInvalidTaskID   = fmt.Errorf("invalid task ID: %w", models.ErrNotFound)

	// Business logic errors
	ErrTaskNotFound  = fmt.Errorf("task not found: %w", models.ErrNotFound)
	ErrNotCreator    = fmt.Errorf("a task can only be deleted by its creator: %w", models.ErrPermissionDenied)
	ErrLoginRequired = fmt.Errorf("login required: %w", models.ErrPermissionDenied)
)
