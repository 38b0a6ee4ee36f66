package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// ============================================================================
// Task Operations
// ============================================================================

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	c conn
}

// CreateTask inserts the task row. Labels are written separately with SetTaskLabels.
func (r *TaskRepo) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	created := now()
	id, err := r.c.insertReturningID(ctx,
		`INSERT INTO tasks (name, description, status_id, creator_id, executor_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		t.Name, t.Description, t.StatusID, t.CreatorID, ptrToNullInt64(t.ExecutorID), created,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}

	out := *t
	out.ID = id
	out.CreatedAt = created
	return &out, nil
}

// GetTaskByID retrieves the task row together with its label IDs
func (r *TaskRepo) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	t := &models.Task{}
	var executor sql.NullInt64
	var created timestamp
	err := r.c.queryRow(ctx,
		`SELECT id, name, description, status_id, creator_id, executor_id, created_at
		 FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.StatusID, &t.CreatorID, &executor, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, err
	}
	t.ExecutorID = nullInt64ToPtr(executor)
	t.CreatedAt = created.Time

	rows, err := r.c.query(ctx,
		`SELECT label_id FROM task_labels WHERE task_id = ? ORDER BY label_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var labelID int
		if err := rows.Scan(&labelID); err != nil {
			return nil, err
		}
		t.LabelIDs = append(t.LabelIDs, labelID)
	}
	return t, rows.Err()
}

// UpdateTask overwrites the editable task fields. Creator and creation time never change.
func (r *TaskRepo) UpdateTask(ctx context.Context, t *models.Task) error {
	res, err := r.c.exec(ctx,
		`UPDATE tasks SET name = ?, description = ?, status_id = ?, executor_id = ?
		 WHERE id = ?`,
		t.Name, t.Description, t.StatusID, ptrToNullInt64(t.ExecutorID), t.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return requireAffected(res, "task", t.ID)
}

// DeleteTask removes a task; its label associations cascade
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	res, err := r.c.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "task", id)
}

// CountTasks returns the total number of tasks
func (r *TaskRepo) CountTasks(ctx context.Context) (int, error) {
	return r.c.count(ctx, `SELECT COUNT(*) FROM tasks`)
}

const taskDetailSelect = `
	SELECT t.id, t.name, t.description, t.status_id, t.creator_id, t.executor_id, t.created_at,
	       s.name, s.created_at,
	       c.username, c.first_name, c.last_name, c.created_at,
	       e.username, e.first_name, e.last_name, e.created_at
	FROM tasks t
	INNER JOIN statuses s ON s.id = t.status_id
	INNER JOIN users c ON c.id = t.creator_id
	LEFT JOIN users e ON e.id = t.executor_id`

func scanTaskDetail(row interface{ Scan(...any) error }) (*models.TaskDetail, error) {
	d := &models.TaskDetail{Status: &models.Status{}, Creator: &models.User{}}
	var (
		executorID                        sql.NullInt64
		taskCreated, statusCreated        timestamp
		creatorCreated, executorCreated   timestamp
		execUsername, execFirst, execLast sql.NullString
	)
	if err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.StatusID, &d.CreatorID, &executorID, &taskCreated,
		&d.Status.Name, &statusCreated,
		&d.Creator.Username, &d.Creator.FirstName, &d.Creator.LastName, &creatorCreated,
		&execUsername, &execFirst, &execLast, &executorCreated,
	); err != nil {
		return nil, err
	}

	d.CreatedAt = taskCreated.Time
	d.Status.ID = d.StatusID
	d.Status.CreatedAt = statusCreated.Time
	d.Creator.ID = d.CreatorID
	d.Creator.CreatedAt = creatorCreated.Time
	d.ExecutorID = nullInt64ToPtr(executorID)
	if d.ExecutorID != nil {
		d.Executor = &models.User{
			ID:        *d.ExecutorID,
			Username:  NullStringToString(execUsername),
			FirstName: NullStringToString(execFirst),
			LastName:  NullStringToString(execLast),
			CreatedAt: executorCreated.Time,
		}
	}
	return d, nil
}

// ListTaskDetails returns tasks matching the filter, ordered by id, with their
// status, creator, executor and labels resolved.
func (r *TaskRepo) ListTaskDetails(ctx context.Context, filter models.TaskFilter) ([]*models.TaskDetail, error) {
	where, args := buildTaskWhere(filter)

	rows, err := r.c.query(ctx, taskDetailSelect+where+` ORDER BY t.id`, args...)
	if err != nil {
		return nil, err
	}

	var details []*models.TaskDetail
	byID := make(map[int]*models.TaskDetail)
	for rows.Next() {
		d, err := scanTaskDetail(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		details = append(details, d)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(details) == 0 {
		return details, nil
	}

	// One query for every matched task's labels
	labelRows, err := r.c.query(ctx, `
		SELECT tl.task_id, l.id, l.name, l.created_at
		FROM task_labels tl
		INNER JOIN labels l ON l.id = tl.label_id
		WHERE tl.task_id IN (SELECT t.id FROM tasks t`+where+`)
		ORDER BY tl.task_id, l.id`, args...)
	if err != nil {
		return nil, err
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var taskID int
		var created timestamp
		l := &models.Label{}
		if err := labelRows.Scan(&taskID, &l.ID, &l.Name, &created); err != nil {
			return nil, err
		}
		l.CreatedAt = created.Time
		if d, ok := byID[taskID]; ok {
			d.Labels = append(d.Labels, l)
			d.LabelIDs = append(d.LabelIDs, l.ID)
		}
	}
	return details, labelRows.Err()
}

// GetTaskDetail returns one task with its relations resolved
func (r *TaskRepo) GetTaskDetail(ctx context.Context, id int) (*models.TaskDetail, error) {
	d, err := scanTaskDetail(r.c.queryRow(ctx, taskDetailSelect+` WHERE t.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, err
	}

	labels, err := (&LabelRepo{c: r.c}).GetLabelsForTask(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Labels = labels
	for _, l := range labels {
		d.LabelIDs = append(d.LabelIDs, l.ID)
	}
	return d, nil
}
