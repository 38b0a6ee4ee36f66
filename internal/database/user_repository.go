package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	c conn
}

const userColumns = `id, username, first_name, last_name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var created timestamp
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &created); err != nil {
		return nil, err
	}
	u.CreatedAt = created.Time
	return u, nil
}

// CreateUser inserts a new user. A taken username yields ErrDuplicate.
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	created := now()
	id, err := r.c.insertReturningID(ctx,
		`INSERT INTO users (username, first_name, last_name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		u.Username, u.FirstName, u.LastName, u.PasswordHash, created,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}

	out := *u
	out.ID = id
	out.CreatedAt = created
	return &out, nil
}

// GetUserByID retrieves a single user
func (r *UserRepo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.c.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	return u, err
}

// GetUserByUsername retrieves a user by login name
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.c.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", username)
	}
	return u, err
}

// ListUsers returns every user ordered by id
func (r *UserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.c.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites profile fields and the password hash
func (r *UserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := r.c.exec(ctx,
		`UPDATE users SET username = ?, first_name = ?, last_name = ?, password_hash = ?
		 WHERE id = ?`,
		u.Username, u.FirstName, u.LastName, u.PasswordHash, u.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return requireAffected(res, "user", u.ID)
}

// DeleteUser removes a user. Fails with ErrReferenced while tasks point at it.
func (r *UserRepo) DeleteUser(ctx context.Context, id int) error {
	res, err := r.c.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return requireAffected(res, "user", id)
}

// CountTasksReferencingUser counts tasks the user created or is assigned to
func (r *UserRepo) CountTasksReferencingUser(ctx context.Context, id int) (int, error) {
	return r.c.count(ctx,
		`SELECT COUNT(*) FROM tasks WHERE creator_id = ? OR executor_id = ?`, id, id)
}
