package status

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// Status-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("this field is required")
	ErrNameTooLong     = fmt.Errorf("name cannot exceed %d characters", models.MaxStatusNameLength)
	ErrNameTaken       = errors.New("a status with this name already exists")
	ErrInvalidStatusID = fmt.Errorf("invalid status ID: %w", models.ErrNotFound)

	// Business logic errors
	ErrStatusNotFound = fmt.Errorf("status not found: %w", models.ErrNotFound)
	ErrStatusInUse    = fmt.Errorf("cannot delete status because it is in use: %w", models.ErrInUse)
	ErrLoginRequired  = fmt.Errorf("login required: %w", models.ErrPermissionDenied)
)
