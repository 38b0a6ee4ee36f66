package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// StatusRepo handles all status-related database operations.
type StatusRepo struct {
	c conn
}

func scanStatus(row interface{ Scan(...any) error }) (*models.Status, error) {
	s := &models.Status{}
	var created timestamp
	if err := row.Scan(&s.ID, &s.Name, &created); err != nil {
		return nil, err
	}
	s.CreatedAt = created.Time
	return s, nil
}

// CreateStatus inserts a new status. A taken name yields ErrDuplicate.
func (r *StatusRepo) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	created := now()
	id, err := r.c.insertReturningID(ctx,
		`INSERT INTO statuses (name, created_at) VALUES (?, ?) RETURNING id`,
		name, created,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &models.Status{ID: id, Name: name, CreatedAt: created}, nil
}

// GetStatusByID retrieves a single status
func (r *StatusRepo) GetStatusByID(ctx context.Context, id int) (*models.Status, error) {
	s, err := scanStatus(r.c.queryRow(ctx,
		`SELECT id, name, created_at FROM statuses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("status", id)
	}
	return s, err
}

// GetStatusByName retrieves a status by its unique name
func (r *StatusRepo) GetStatusByName(ctx context.Context, name string) (*models.Status, error) {
	s, err := scanStatus(r.c.queryRow(ctx,
		`SELECT id, name, created_at FROM statuses WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("status", name)
	}
	return s, err
}

// ListStatuses returns every status ordered by id
func (r *StatusRepo) ListStatuses(ctx context.Context) ([]*models.Status, error) {
	rows, err := r.c.query(ctx, `SELECT id, name, created_at FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// UpdateStatus renames a status
func (r *StatusRepo) UpdateStatus(ctx context.Context, id int, name string) error {
	res, err := r.c.exec(ctx, `UPDATE statuses SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return mapWriteError(err)
	}
	return requireAffected(res, "status", id)
}

// DeleteStatus removes a status. Fails with ErrReferenced while tasks use it.
func (r *StatusRepo) DeleteStatus(ctx context.Context, id int) error {
	res, err := r.c.exec(ctx, `DELETE FROM statuses WHERE id = ?`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return requireAffected(res, "status", id)
}

// CountTasksWithStatus counts tasks currently in the status
func (r *StatusRepo) CountTasksWithStatus(ctx context.Context, id int) (int, error) {
	return r.c.count(ctx, `SELECT COUNT(*) FROM tasks WHERE status_id = ?`, id)
}
