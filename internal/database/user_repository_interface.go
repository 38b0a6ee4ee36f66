package database

import (
	"context"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// UserReader defines read operations for users.
type UserReader interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	CountTasksReferencingUser(ctx context.Context, id int) (int, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int) error
}

// UserRepository combines all user-related operations.
type UserRepository interface {
	UserReader
	UserWriter
}
