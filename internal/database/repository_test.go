package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskmanager/internal/database"
	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/testutil"
)

func intPtr(v int) *int { return &v }

// ============================================================================
// User Tests
// ============================================================================

func TestCreateUser_DuplicateUsername(t *testing.T) {
	t.Parallel()
	_, repo := testutil.SetupTestRepository(t)
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, &models.User{Username: "ivan", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.CreateUser(ctx, &models.User{Username: "ivan", PasswordHash: "y"})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()
	_, repo := testutil.SetupTestRepository(t)

	_, err := repo.GetUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateUser_RoundTrip(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	ctx := context.Background()
	id := testutil.CreateTestUser(t, db, "test1", "secret-pass")

	u, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	u.Username = "KwaKwa"
	u.FirstName = "Ivan"
	require.NoError(t, repo.UpdateUser(ctx, u))

	got, err := repo.GetUserByUsername(ctx, "KwaKwa")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ivan", got.FirstName)
}

func TestDeleteUser_ReferencedByTask(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, db, "creator", "secret-pass")
	executor := testutil.CreateTestUser(t, db, "executor", "secret-pass")
	status := testutil.CreateTestStatus(t, db, "New")

	_, err := repo.CreateTask(ctx, &models.Task{
		Name: "task", StatusID: status, CreatorID: creator, ExecutorID: intPtr(executor),
	})
	require.NoError(t, err)

	n, err := repo.CountTasksReferencingUser(ctx, executor)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	err = repo.DeleteUser(ctx, creator)
	assert.ErrorIs(t, err, models.ErrInUse)
	err = repo.DeleteUser(ctx, executor)
	assert.ErrorIs(t, err, models.ErrInUse)
	assert.Equal(t, 2, testutil.CountRows(t, db, "users"))
}

// ============================================================================
// Status & Label Tests
// ============================================================================

func TestStatusCRUD(t *testing.T) {
	t.Parallel()
	_, repo := testutil.SetupTestRepository(t)
	ctx := context.Background()

	s, err := repo.CreateStatus(ctx, "New")
	require.NoError(t, err)
	_, err = repo.CreateStatus(ctx, "Done")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, s.ID, "Big DEAL"))
	err = repo.UpdateStatus(ctx, s.ID, "Done")
	assert.ErrorIs(t, err, database.ErrDuplicate)

	byName, err := repo.GetStatusByName(ctx, "Big DEAL")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byName.ID)

	list, err := repo.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Big DEAL", list[0].Name)

	require.NoError(t, repo.DeleteStatus(ctx, s.ID))
	_, err = repo.GetStatusByID(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.DeleteStatus(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteStatus_InUse(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	user := testutil.CreateTestUser(t, db, "u", "secret-pass")
	status := testutil.CreateTestStatus(t, db, "New")
	testutil.CreateTestTask(t, db, "t", status, user)

	err := repo.DeleteStatus(context.Background(), status)
	assert.ErrorIs(t, err, models.ErrInUse)
	assert.True(t, errors.Is(err, database.ErrReferenced))
}

func TestLabels_SetTaskLabelsAndDelete(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db, "u", "secret-pass")
	status := testutil.CreateTestStatus(t, db, "New")
	bug := testutil.CreateTestLabel(t, db, "bug")
	docs := testutil.CreateTestLabel(t, db, "docs")
	task := testutil.CreateTestTask(t, db, "t", status, user)

	require.NoError(t, repo.SetTaskLabels(ctx, task, []int{bug, bug}))
	labels, err := repo.GetLabelsForTask(ctx, task)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "bug", labels[0].Name)

	err = repo.DeleteLabel(ctx, bug)
	assert.ErrorIs(t, err, models.ErrInUse)
	require.NoError(t, repo.DeleteLabel(ctx, docs))

	err = repo.SetTaskLabels(ctx, task, []int{999})
	assert.ErrorIs(t, err, models.ErrValidation)
}

// ============================================================================
// Task Tests
// ============================================================================

func TestTask_CreateGetUpdateDelete(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, db, "creator", "secret-pass")
	other := testutil.CreateTestUser(t, db, "other", "secret-pass")
	newStatus := testutil.CreateTestStatus(t, db, "New")
	done := testutil.CreateTestStatus(t, db, "Done")
	label := testutil.CreateTestLabel(t, db, "bug")

	task, err := repo.CreateTask(ctx, &models.Task{Name: "Write docs", StatusID: newStatus, CreatorID: creator})
	require.NoError(t, err)
	require.NoError(t, repo.SetTaskLabels(ctx, task.ID, []int{label}))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ExecutorID)
	assert.Equal(t, []int{label}, got.LabelIDs)

	got.StatusID = done
	got.ExecutorID = intPtr(other)
	require.NoError(t, repo.UpdateTask(ctx, got))

	detail, err := repo.GetTaskDetail(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Done", detail.Status.Name)
	assert.Equal(t, "creator", detail.Creator.Username)
	require.NotNil(t, detail.Executor)
	assert.Equal(t, "other", detail.Executor.Username)
	require.Len(t, detail.Labels, 1)

	require.NoError(t, repo.DeleteTask(ctx, task.ID))
	assert.Equal(t, 0, testutil.CountRows(t, db, "task_labels"))
	_, err = repo.GetTaskDetail(ctx, task.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateTask_MissingStatus(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	user := testutil.CreateTestUser(t, db, "u", "secret-pass")

	_, err := repo.CreateTask(context.Background(), &models.Task{Name: "t", StatusID: 77, CreatorID: user})
	assert.ErrorIs(t, err, database.ErrInvalidReference)
}

func TestListTaskDetails_Filters(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	testutil.LoadDefaultFixtures(t, db)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.TaskFilter
		want   []int
	}{
		{"empty filter", models.TaskFilter{}, []int{2, 3, 4}},
		{"by status", models.TaskFilter{StatusID: intPtr(2)}, []int{3}},
		{"by executor", models.TaskFilter{ExecutorID: intPtr(2)}, []int{2}},
		{"by label", models.TaskFilter{LabelID: intPtr(2)}, []int{2, 4}},
		{"by creator", models.TaskFilter{CreatorID: intPtr(3)}, []int{4}},
		{"combined", models.TaskFilter{LabelID: intPtr(1), ExecutorID: intPtr(1)}, []int{3}},
		{"no match", models.TaskFilter{LabelID: intPtr(4)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := repo.ListTaskDetails(ctx, tt.filter)
			require.NoError(t, err)

			var ids []int
			for _, d := range details {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListTaskDetails_ResolvesLabels(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	testutil.LoadDefaultFixtures(t, db)

	details, err := repo.ListTaskDetails(context.Background(), models.TaskFilter{LabelID: intPtr(3)})
	require.NoError(t, err)
	require.Len(t, details, 1)

	// The label filter must not drop the task's other labels
	assert.Equal(t, []int{1, 3}, details[0].LabelIDs)
	assert.Equal(t, "maria", details[0].Creator.Username)
}

// ============================================================================
// Transaction & Fixture Tests
// ============================================================================

func TestInTx_RollsBackOnError(t *testing.T) {
	t.Parallel()
	db, repo := testutil.SetupTestRepository(t)
	boom := errors.New("boom")

	err := repo.InTx(context.Background(), func(tx database.DataStore) error {
		if _, err := tx.CreateStatus(context.Background(), "New"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.CountRows(t, db, "statuses"))
}

func TestLoadFixtures_Counts(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)

	counts, err := database.LoadFixtures(context.Background(), db, database.DialectSQLite,
		database.DefaultFixtures(), testutil.HashPassword)
	require.NoError(t, err)
	assert.Equal(t, database.FixtureCounts{Users: 3, Statuses: 4, Labels: 4, Tasks: 3}, *counts)

	// AUTOINCREMENT continues after the explicit fixture ids
	repo := database.NewRepository(db, database.DialectSQLite)
	label, err := repo.CreateLabel(context.Background(), "My label")
	require.NoError(t, err)
	assert.Equal(t, 5, label.ID)

	// Loading twice violates the primary keys and changes nothing
	_, err = database.LoadFixtures(context.Background(), db, database.DialectSQLite,
		database.DefaultFixtures(), testutil.HashPassword)
	assert.Error(t, err)
	assert.Equal(t, 3, testutil.CountRows(t, db, "users"))
}

func TestRebind(t *testing.T) {
	t.Parallel()
	q := "SELECT * FROM tasks WHERE a = ? AND b = ?"
	assert.Equal(t, q, database.DialectSQLite.Rebind(q))
	assert.Equal(t, "SELECT * FROM tasks WHERE a = $1 AND b = $2", database.DialectPostgres.Rebind(q))
}

func TestParseDialect(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]database.Dialect{
		"": database.DialectSQLite, "sqlite3": database.DialectSQLite,
		"postgres": database.DialectPostgres, "PGX": database.DialectPostgres,
	} {
		got, err := database.ParseDialect(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := database.ParseDialect("mysql")
	assert.Error(t, err)
}
