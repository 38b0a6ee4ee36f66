package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/database"
	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/perm"
)

// Service defines all status-related business operations
type Service interface {
	// Read operations
	ListStatuses(ctx context.Context, actor auth.Identity) ([]*models.Status, error)
	GetStatus(ctx context.Context, actor auth.Identity, id int) (*models.Status, error)

	// Write operations
	CreateStatus(ctx context.Context, actor auth.Identity, req CreateStatusRequest) (*models.Status, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, req UpdateStatusRequest) (*models.Status, error)
	DeleteStatus(ctx context.Context, actor auth.Identity, id int) error
}

// CreateStatusRequest encapsulates data for creating a status
type CreateStatusRequest struct {
	Name string
}

// UpdateStatusRequest encapsulates data for renaming a status
type UpdateStatusRequest struct {
	ID   int
	Name string
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new status service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// ListStatuses returns every status ordered by id
func (s *service) ListStatuses(ctx context.Context, actor auth.Identity) ([]*models.Status, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	return s.repo.ListStatuses(ctx)
}

// GetStatus retrieves a single status
func (s *service) GetStatus(ctx context.Context, actor auth.Identity, id int) (*models.Status, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	if id <= 0 {
		return nil, ErrInvalidStatusID
	}
	st, err := s.repo.GetStatusByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrStatusNotFound
	}
	return st, err
}

// CreateStatus creates a status with a unique name
func (s *service) CreateStatus(ctx context.Context, actor auth.Identity, req CreateStatusRequest) (*models.Status, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	var created *models.Status
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetStatusByName(ctx, name); err == nil {
			return models.FieldError("name", ErrNameTaken)
		} else if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		st, err := tx.CreateStatus(ctx, name)
		if err != nil {
			return mapWriteError(err)
		}
		created = st
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return created, nil
}

// UpdateStatus renames a status. The new name must not belong to another status.
func (s *service) UpdateStatus(ctx context.Context, actor auth.Identity, req UpdateStatusRequest) (*models.Status, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	if req.ID <= 0 {
		return nil, ErrInvalidStatusID
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	var updated *models.Status
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetStatusByID(ctx, req.ID)
		if errors.Is(err, models.ErrNotFound) {
			return ErrStatusNotFound
		}
		if err != nil {
			return err
		}

		if other, err := tx.GetStatusByName(ctx, name); err == nil && other.ID != req.ID {
			return models.FieldError("name", ErrNameTaken)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}

		if err := tx.UpdateStatus(ctx, req.ID, name); err != nil {
			return mapWriteError(err)
		}
		existing.Name = name
		updated = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return updated, nil
}

// DeleteStatus removes a status no task refers to
func (s *service) DeleteStatus(ctx context.Context, actor auth.Identity, id int) error {
	if !perm.CanManageCatalog(actor) {
		return ErrLoginRequired
	}
	if id <= 0 {
		return ErrInvalidStatusID
	}

	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetStatusByID(ctx, id); errors.Is(err, models.ErrNotFound) {
			return ErrStatusNotFound
		} else if err != nil {
			return err
		}

		n, err := tx.CountTasksWithStatus(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrStatusInUse
		}

		if err := tx.DeleteStatus(ctx, id); err != nil {
			if errors.Is(err, database.ErrReferenced) {
				return ErrStatusInUse
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", models.FieldError("name", ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > models.MaxStatusNameLength {
		return "", models.FieldError("name", ErrNameTooLong)
	}
	return name, nil
}

// mapWriteError turns a lost uniqueness race into the same validation error
// the pre-check reports.
func mapWriteError(err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return models.FieldError("name", ErrNameTaken)
	}
	return err
}
