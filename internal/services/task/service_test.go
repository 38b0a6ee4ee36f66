package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var (
	ivan  = auth.Identity{UserID: 1, Username: "ivan"}
	maria = auth.Identity{UserID: 2, Username: "maria"}
	test1 = auth.Identity{UserID: 3, Username: "test1"}
)

func intPtr(v int) *int { return &v }

func setupService(t *testing.T) (Service, func(string) int) {
	t.Helper()
	db, repo := testutil.SetupTestRepository(t)
	testutil.LoadDefaultFixtures(t, db)
	return NewService(repo), func(table string) int { return testutil.CountRows(t, db, table) }
}

// ============================================================================
// CreateTask
// ============================================================================

func TestCreateTask_CreatorIsActor(t *testing.T) {
	t.Parallel()
	svc, count := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, test1, TaskRequest{
		Name:        "test task",
		Description: "smth",
		StatusID:    3,
		ExecutorID:  intPtr(2),
		LabelIDs:    []int{4, 1, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, test1.UserID, created.CreatorID)
	assert.Equal(t, []int{4, 1}, created.LabelIDs)
	assert.Equal(t, 4, count("tasks"))

	detail, err := svc.GetTaskDetail(ctx, maria, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "test1", detail.Creator.Username)
	assert.Equal(t, "maria", detail.Executor.Username)
	assert.Equal(t, "Testing", detail.Status.Name)
	assert.Len(t, detail.Labels, 2)
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	svc, count := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     TaskRequest
		field   string
		wantErr error
	}{
		{"missing name", TaskRequest{StatusID: 1}, "name", ErrFieldRequired},
		{"missing status", TaskRequest{Name: "x"}, "status", ErrFieldRequired},
		{"unknown status", TaskRequest{Name: "x", StatusID: 99}, "status", ErrUnknownStatus},
		{"unknown executor", TaskRequest{Name: "x", StatusID: 1, ExecutorID: intPtr(99)}, "executor", ErrUnknownExecutor},
		{"unknown label", TaskRequest{Name: "x", StatusID: 1, LabelIDs: []int{1, 99}}, "labels", ErrUnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, ivan, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, models.ErrValidation)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
	assert.Equal(t, 3, count("tasks"))
}

func TestCreateTask_RequiresLogin(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	_, err := svc.CreateTask(context.Background(), auth.Anonymous, TaskRequest{Name: "x", StatusID: 1})
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

// ============================================================================
// UpdateTask & DeleteTask
// ============================================================================

func TestUpdateTask_AnyUserKeepsCreator(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	// Task 4 was created by test1; ivan edits it
	updated, err := svc.UpdateTask(ctx, ivan, 4, TaskRequest{
		Name: "test task", StatusID: 3, ExecutorID: intPtr(2), LabelIDs: []int{3},
	})
	require.NoError(t, err)
	assert.Equal(t, test1.UserID, updated.CreatorID)

	got, err := svc.GetTask(ctx, ivan, 4)
	require.NoError(t, err)
	assert.Equal(t, "test task", got.Name)
	assert.Equal(t, []int{3}, got.LabelIDs)
	require.NotNil(t, got.ExecutorID)
	assert.Equal(t, 2, *got.ExecutorID)

	_, err = svc.UpdateTask(ctx, ivan, 77, TaskRequest{Name: "x", StatusID: 1})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask_CreatorOnly(t *testing.T) {
	t.Parallel()
	svc, count := setupService(t)
	ctx := context.Background()

	err := svc.DeleteTask(ctx, ivan, 4)
	assert.ErrorIs(t, err, ErrNotCreator)
	assert.Equal(t, 3, count("tasks"))

	require.NoError(t, svc.DeleteTask(ctx, test1, 4))
	assert.Equal(t, 2, count("tasks"))

	_, err = svc.GetTaskDetail(ctx, test1, 4)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// ============================================================================
// ListTasks & BuildFilter
// ============================================================================

func TestListTasks_WithBuiltFilter(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor auth.Identity
		in    FilterInput
		want  []int
	}{
		{"no filter", ivan, FilterInput{}, []int{2, 3, 4}},
		{"status", ivan, FilterInput{Status: "1"}, []int{2}},
		{"executor and label", ivan, FilterInput{Executor: "1", Label: "3"}, []int{3}},
		{"self tasks", maria, FilterInput{SelfTasks: true}, []int{3}},
		{"self tasks and label", test1, FilterInput{SelfTasks: true, Label: "1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildFilter(tt.actor, tt.in)
			require.NoError(t, err)

			tasks, err := svc.ListTasks(ctx, tt.actor, f)
			require.NoError(t, err)
			var ids []int
			for _, d := range tasks {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBuildFilter_InvalidIDs(t *testing.T) {
	t.Parallel()

	_, err := BuildFilter(ivan, FilterInput{Status: "abc", Label: "-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilterID)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
	assert.Contains(t, verr.Fields, "label")
	assert.NotContains(t, verr.Fields, "executor")

	f, err := BuildFilter(auth.Anonymous, FilterInput{SelfTasks: true, Executor: " "})
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
}
