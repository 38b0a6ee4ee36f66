package label

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

// Service defines all label-related business operations
type Service interface {
	// Read operations
	ListLabels(ctx context.Context, actor auth.Identity) ([]*models.Label, error)
	GetLabel(ctx context.Context, actor auth.Identity, id int) (*models.Label, error)

	// Write operations
	CreateLabel(ctx context.Context, actor auth.Identity, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, actor auth.Identity, req UpdateLabelRequest) (*models.Label, error)
	DeleteLabel(ctx context.Context, actor auth.Identity, id int) error
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	Name string
}

// UpdateLabelRequest encapsulates data for renaming a label
type UpdateLabelRequest struct {
	ID   int
	Name string
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new label service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// ListLabels returns every label ordered by id
func (s *service) ListLabels(ctx context.Context, actor auth.Identity) ([]*models.Label, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	return s.repo.ListLabels(ctx)
}

// GetLabel retrieves a single label
func (s *service) GetLabel(ctx context.Context, actor auth.Identity, id int) (*models.Label, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	if id <= 0 {
		return nil, ErrInvalidLabelID
	}
	lbl, err := s.repo.GetLabelByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrLabelNotFound
	}
	return lbl, err
}

// CreateLabel creates a label with a unique name
func (s *service) CreateLabel(ctx context.Context, actor auth.Identity, req CreateLabelRequest) (*models.Label, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	var created *models.Label
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetLabelByName(ctx, name); err == nil {
			return models.FieldError("name", ErrNameTaken)
		} else if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		lbl, err := tx.CreateLabel(ctx, name)
		if err != nil {
			return mapWriteError(err)
		}
		created = lbl
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return created, nil
}

// UpdateLabel renames a label. The new name must not belong to another label.
func (s *service) UpdateLabel(ctx context.Context, actor auth.Identity, req UpdateLabelRequest) (*models.Label, error) {
	if !perm.CanManageCatalog(actor) {
		return nil, ErrLoginRequired
	}
	if req.ID <= 0 {
		return nil, ErrInvalidLabelID
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	var updated *models.Label
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetLabelByID(ctx, req.ID)
		if errors.Is(err, models.ErrNotFound) {
			return ErrLabelNotFound
		}
		if err != nil {
			return err
		}

		if other, err := tx.GetLabelByName(ctx, name); err == nil && other.ID != req.ID {
			return models.FieldError("name", ErrNameTaken)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}

		if err := tx.UpdateLabel(ctx, req.ID, name); err != nil {
			return mapWriteError(err)
		}
		existing.Name = name
		updated = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return updated, nil
}

// DeleteLabel removes a label that is not attached to any task
func (s *service) DeleteLabel(ctx context.Context, actor auth.Identity, id int) error {
	if !perm.CanManageCatalog(actor) {
		return ErrLoginRequired
	}
	if id <= 0 {
		return ErrInvalidLabelID
	}

	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetLabelByID(ctx, id); errors.Is(err, models.ErrNotFound) {
			return ErrLabelNotFound
		} else if err != nil {
			return err
		}

		n, err := tx.CountTasksWithLabel(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrLabelInUse
		}

		if err := tx.DeleteLabel(ctx, id); err != nil {
			if errors.Is(err, database.ErrReferenced) {
				return ErrLabelInUse
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", models.FieldError("name", ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > models.MaxLabelNameLength {
		return "", models.FieldError("name", ErrNameTooLong)
	}
	return name, nil
}

// mapWriteError maps a UNIQUE violation to ErrNameTaken
func mapWriteError(err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return models.FieldError("name", ErrNameTaken)
	}
	return err
}
