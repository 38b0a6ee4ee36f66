package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// ============================================================================
// Label Operations
// ============================================================================

// LabelRepo handles labels and the task_labels association.
type LabelRepo struct {
	c conn
}

func scanLabel(row interface{ Scan(...any) error }) (*models.Label, error) {
	l := &models.Label{}
	var created timestamp
	if err := row.Scan(&l.ID, &l.Name, &created); err != nil {
		return nil, err
	}
	l.CreatedAt = created.Time
	return l, nil
}

func collectLabels(rows *sql.Rows) ([]*models.Label, error) {
	defer rows.Close()

	var labels []*models.Label
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// CreateLabel inserts a new label. A taken name yields ErrDuplicate.
func (r *LabelRepo) CreateLabel(ctx context.Context, name string) (*models.Label, error) {
	created := now()
	id, err := r.c.insertReturningID(ctx,
		`INSERT INTO labels (name, created_at) VALUES (?, ?) RETURNING id`,
		name, created,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &models.Label{ID: id, Name: name, CreatedAt: created}, nil
}

// GetLabelByID retrieves a single label
func (r *LabelRepo) GetLabelByID(ctx context.Context, id int) (*models.Label, error) {
	l, err := scanLabel(r.c.queryRow(ctx,
		`SELECT id, name, created_at FROM labels WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("label", id)
	}
	return l, err
}

// GetLabelByName retrieves a label by its unique name
func (r *LabelRepo) GetLabelByName(ctx context.Context, name string) (*models.Label, error) {
	l, err := scanLabel(r.c.queryRow(ctx,
		`SELECT id, name, created_at FROM labels WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("label", name)
	}
	return l, err
}

// ListLabels returns every label ordered by id
func (r *LabelRepo) ListLabels(ctx context.Context) ([]*models.Label, error) {
	rows, err := r.c.query(ctx, `SELECT id, name, created_at FROM labels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectLabels(rows)
}

// UpdateLabel renames a label
func (r *LabelRepo) UpdateLabel(ctx context.Context, id int, name string) error {
	res, err := r.c.exec(ctx, `UPDATE labels SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return mapWriteError(err)
	}
	return requireAffected(res, "label", id)
}

// DeleteLabel removes a label. Fails with ErrReferenced while attached to a task.
func (r *LabelRepo) DeleteLabel(ctx context.Context, id int) error {
	res, err := r.c.exec(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return requireAffected(res, "label", id)
}

// CountTasksWithLabel counts tasks the label is attached to
func (r *LabelRepo) CountTasksWithLabel(ctx context.Context, id int) (int, error) {
	return r.c.count(ctx, `SELECT COUNT(*) FROM task_labels WHERE label_id = ?`, id)
}

// GetLabelsForTask retrieves all labels associated with a task
func (r *LabelRepo) GetLabelsForTask(ctx context.Context, taskID int) ([]*models.Label, error) {
	rows, err := r.c.query(ctx, `
		SELECT l.id, l.name, l.created_at
		FROM labels l
		INNER JOIN task_labels tl ON l.id = tl.label_id
		WHERE tl.task_id = ?
		ORDER BY l.id
	`, taskID)
	if err != nil {
		return nil, err
	}
	return collectLabels(rows)
}

// SetTaskLabels replaces all labels for a task with the given label IDs.
// Callers run it inside InTx together with the task write.
func (r *LabelRepo) SetTaskLabels(ctx context.Context, taskID int, labelIDs []int) error {
	if _, err := r.c.exec(ctx, `DELETE FROM task_labels WHERE task_id = ?`, taskID); err != nil {
		return err
	}

	seen := make(map[int]struct{}, len(labelIDs))
	for _, labelID := range labelIDs {
		if _, dup := seen[labelID]; dup {
			continue
		}
		seen[labelID] = struct{}{}

		if _, err := r.c.exec(ctx,
			`INSERT INTO task_labels (task_id, label_id) VALUES (?, ?)`,
			taskID, labelID,
		); err != nil {
			return mapWriteError(err)
		}
	}
	return nil
}
