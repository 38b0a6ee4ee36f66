package label

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// Label-related errors
var (
	// Validation errors
	ErrEmptyName      = errors.New("this field is required")
	ErrNameTooLong    = fmt.Errorf("name cannot exceed %d characters", models.MaxLabelNameLength)
	ErrNameTaken      = errors.New("a label with this name already exists")
	ErrInvalidLabelID = fmt.Errorf("invalid label ID: %w", models.ErrNotFound)

	// Business logic errors
	ErrLabelNotFound = fmt.Errorf("label not found: %w", models.ErrNotFound)
	ErrLabelInUse    = fmt.Errorf("cannot delete label because it is in use: %w", models.ErrInUse)
	ErrLoginRequired = fmt.Errorf("login required: %w", models.ErrPermissionDenied)
)
