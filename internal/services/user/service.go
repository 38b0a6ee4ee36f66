package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/database"
	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/perm"
)

// Service defines all user-related business operations
type Service interface {
	// Read operations
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)

	// Authentication
	Register(ctx context.Context, p Profile) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// Write operations
	UpdateUser(ctx context.Context, actor auth.Identity, id int, p Profile) (*models.User, error)
	DeleteUser(ctx context.Context, actor auth.Identity, id int) error
}

// Profile is the registration and profile form. Both password fields must
// match; the password is replaced on every update.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Password1 string
	Password2 string
}

// Hasher hashes and verifies passwords
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// service implements Service interface
type service struct {
	repo   database.DataStore
	hasher Hasher
}

// NewService creates a new user service
func NewService(repo database.DataStore, hasher Hasher) Service {
	return &service{repo: repo, hasher: hasher}
}

// ListUsers returns every user ordered by id
func (s *service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser retrieves a single user
func (s *service) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Register creates a new account. No session is required.
func (s *service) Register(ctx context.Context, p Profile) (*models.User, error) {
	p, err := validateProfile(p)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(p.Password1)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var created *models.User
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetUserByUsername(ctx, p.Username); err == nil {
			return models.FieldError("username", ErrUsernameTaken)
		} else if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		u, err := tx.CreateUser(ctx, &models.User{
			Username:     p.Username,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			PasswordHash: hash,
		})
		if err != nil {
			return mapWriteError(err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	slog.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Authenticate checks credentials. Unknown users and wrong passwords fail
// with the same error.
func (s *service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.FieldError("__all__", ErrInvalidCredentials)
	}

	u, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.FieldError("__all__", ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, models.FieldError("__all__", ErrInvalidCredentials)
	}
	return u, nil
}

// UpdateUser replaces the profile and password of the actor's own account
func (s *service) UpdateUser(ctx context.Context, actor auth.Identity, id int, p Profile) (*models.User, error) {
	if err := checkOwner(actor, id, perm.CanEditUser); err != nil {
		return nil, err
	}

	p, err := validateProfile(p)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(p.Password1)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var updated *models.User
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetUserByID(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if other, err := tx.GetUserByUsername(ctx, p.Username); err == nil && other.ID != id {
			return models.FieldError("username", ErrUsernameTaken)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}

		existing.Username = p.Username
		existing.FirstName = p.FirstName
		existing.LastName = p.LastName
		existing.PasswordHash = hash
		if err := tx.UpdateUser(ctx, existing); err != nil {
			return mapWriteError(err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes the actor's own account when no task references it
func (s *service) DeleteUser(ctx context.Context, actor auth.Identity, id int) error {
	if err := checkOwner(actor, id, perm.CanDeleteUser); err != nil {
		return err
	}

	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetUserByID(ctx, id); errors.Is(err, models.ErrNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}

		n, err := tx.CountTasksReferencingUser(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrUserInUse
		}

		if err := tx.DeleteUser(ctx, id); err != nil {
			if errors.Is(err, database.ErrReferenced) {
				return ErrUserInUse
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

func checkOwner(actor auth.Identity, id int, allowed func(auth.Identity, int) bool) error {
	if !actor.IsAuthenticated() {
		return ErrLoginRequired
	}
	if id <= 0 {
		return ErrInvalidUserID
	}
	if !allowed(actor, id) {
		return ErrNotOwner
	}
	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return models.FieldError("username", ErrUsernameTaken)
	}
	return err
}
