package status

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/testutil"
)

var actor = auth.Identity{UserID: 1, Username: "ivan"}

func setup(t *testing.T) (Service, func(string) int) {
	t.Helper()
	db, repo := testutil.SetupTestRepository(t)
	testutil.LoadDefaultFixtures(t, db)
	return NewService(repo), func(table string) int { return testutil.CountRows(t, db, table) }
}

func TestCreateStatus(t *testing.T) {
	t.Parallel()
	svc, count := setup(t)
	ctx := context.Background()

	st, err := svc.CreateStatus(ctx, actor, CreateStatusRequest{Name: "  In Review "})
	require.NoError(t, err)
	assert.Equal(t, "In Review", st.Name)
	assert.Equal(t, 5, st.ID)
	assert.Equal(t, 5, count("statuses"))
}

func TestCreateStatus_Validation(t *testing.T) {
	t.Parallel()
	svc, count := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "   ", ErrEmptyName},
		{"too long", strings.Repeat("x", models.MaxStatusNameLength+1), ErrNameTooLong},
		{"duplicate", "New", ErrNameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStatus(ctx, actor, CreateStatusRequest{Name: tt.input})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, models.ErrValidation)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, "name")
		})
	}
	assert.Equal(t, 4, count("statuses"))
}

func TestStatus_RequiresLogin(t *testing.T) {
	t.Parallel()
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.ListStatuses(ctx, auth.Anonymous)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
	_, err = svc.CreateStatus(ctx, auth.Anonymous, CreateStatusRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrLoginRequired)
	err = svc.DeleteStatus(ctx, auth.Anonymous, 3)
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()
	svc, _ := setup(t)
	ctx := context.Background()

	st, err := svc.UpdateStatus(ctx, actor, UpdateStatusRequest{ID: 3, Name: "Big DEAL"})
	require.NoError(t, err)
	assert.Equal(t, "Big DEAL", st.Name)

	// Keeping its own name is not a conflict
	_, err = svc.UpdateStatus(ctx, actor, UpdateStatusRequest{ID: 3, Name: "Big DEAL"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, actor, UpdateStatusRequest{ID: 3, Name: "Done"})
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = svc.UpdateStatus(ctx, actor, UpdateStatusRequest{ID: 99, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrStatusNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteStatus(t *testing.T) {
	t.Parallel()
	svc, count := setup(t)
	ctx := context.Background()

	err := svc.DeleteStatus(ctx, actor, 1)
	assert.ErrorIs(t, err, ErrStatusInUse)
	assert.ErrorIs(t, err, models.ErrInUse)
	assert.Equal(t, 4, count("statuses"))

	require.NoError(t, svc.DeleteStatus(ctx, actor, 3))
	_, err = svc.GetStatus(ctx, actor, 3)
	assert.ErrorIs(t, err, ErrStatusNotFound)

	err = svc.DeleteStatus(ctx, actor, 0)
	assert.ErrorIs(t, err, ErrInvalidStatusID)
}
