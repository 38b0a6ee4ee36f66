package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Err: errors.New("bad flag")}, ExitUsage},
		{"data", &DataError{Err: errors.New("bad yaml")}, ExitDataErr},
		{"not found", fmt.Errorf("task 9: %w", models.ErrNotFound), ExitNotFound},
		{"validation", models.NewValidationError("name", "required"), ExitValidation},
		{"in use is a general error", models.ErrInUse, ExitError},
		{"other", errors.New("disk full"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", ErrorCode(models.ErrNotFound))
	assert.Equal(t, "USAGE_ERROR", ErrorCode(&UsageError{Err: errors.New("x")}))
	assert.Equal(t, "ERROR", ErrorCode(errors.New("x")))
}
