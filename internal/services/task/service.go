package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/database"
	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/perm"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, actor auth.Identity, filter models.TaskFilter) ([]*models.TaskDetail, error)
	GetTask(ctx context.Context, actor auth.Identity, taskID int) (*models.Task, error)
	GetTaskDetail(ctx context.Context, actor auth.Identity, taskID int) (*models.TaskDetail, error)

	// Write operations
	CreateTask(ctx context.Context, actor auth.Identity, req TaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, actor auth.Identity, taskID int, req TaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, actor auth.Identity, taskID int) error
}

// TaskRequest encapsulates the editable fields of a task.
// The creator is never part of the request: it always comes from the actor.
type TaskRequest struct {
	Name        string
	Description string
	StatusID    int   // required
	ExecutorID  *int  // optional
	LabelIDs    []int // replaces the task's labels
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new task service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// ListTasks returns the tasks matching filter with their relations resolved
func (s *service) ListTasks(ctx context.Context, actor auth.Identity, filter models.TaskFilter) ([]*models.TaskDetail, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	return s.repo.ListTaskDetails(ctx, filter)
}

// GetTask retrieves the raw task, used to prefill the edit form
func (s *service) GetTask(ctx context.Context, actor auth.Identity, taskID int) (*models.Task, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	t, err := s.repo.GetTaskByID(ctx, taskID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// GetTaskDetail retrieves full task details
func (s *service) GetTaskDetail(ctx context.Context, actor auth.Identity, taskID int) (*models.TaskDetail, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	d, err := s.repo.GetTaskDetail(ctx, taskID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return d, err
}

// CreateTask handles task creation with validation and business rules.
// The creator is the actor.
func (s *service) CreateTask(ctx context.Context, actor auth.Identity, req TaskRequest) (*models.Task, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	var created *models.Task
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		if err := checkReferences(ctx, tx, req); err != nil {
			return err
		}

		t, err := tx.CreateTask(ctx, &models.Task{
			Name:        req.Name,
			Description: req.Description,
			StatusID:    req.StatusID,
			CreatorID:   actor.UserID,
			ExecutorID:  req.ExecutorID,
		})
		if err != nil {
			return err
		}
		if err := tx.SetTaskLabels(ctx, t.ID, req.LabelIDs); err != nil {
			return fmt.Errorf("failed to attach labels: %w", err)
		}
		t.LabelIDs = req.LabelIDs
		created = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	slog.Info("task created", "task_id", created.ID, "creator_id", actor.UserID)
	return created, nil
}

// UpdateTask replaces the editable fields and the label set of a task.
// Creator and creation time are kept.
func (s *service) UpdateTask(ctx context.Context, actor auth.Identity, taskID int, req TaskRequest) (*models.Task, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrLoginRequired
	}
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Task
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetTaskByID(ctx, taskID)
		if errors.Is(err, models.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}
		if !perm.CanUpdateTask(actor, existing) {
			return fmt.Errorf("cannot update task %d: %w", taskID, models.ErrPermissionDenied)
		}

		if err := checkReferences(ctx, tx, req); err != nil {
			return err
		}

		existing.Name = req.Name
		existing.Description = req.Description
		existing.StatusID = req.StatusID
		existing.ExecutorID = req.ExecutorID
		if err := tx.UpdateTask(ctx, existing); err != nil {
			return err
		}
		if err := tx.SetTaskLabels(ctx, taskID, req.LabelIDs); err != nil {
			return fmt.Errorf("failed to replace labels: %w", err)
		}
		existing.LabelIDs = req.LabelIDs
		updated = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a task. Only its creator may do so.
func (s *service) DeleteTask(ctx context.Context, actor auth.Identity, taskID int) error {
	if !actor.IsAuthenticated() {
		return ErrLoginRequired
	}
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetTaskByID(ctx, taskID)
		if errors.Is(err, models.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}
		if !perm.CanDeleteTask(actor, existing) {
			return ErrNotCreator
		}
		return tx.DeleteTask(ctx, taskID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	slog.Info("task deleted", "task_id", taskID, "actor_id", actor.UserID)
	return nil
}

// normalize trims the request and checks the fields that need no database access
func normalize(req TaskRequest) (TaskRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	verr := &models.ValidationError{}
	switch {
	case req.Name == "":
		verr.AddErr("name", ErrFieldRequired)
	case utf8.RuneCountInString(req.Name) > models.MaxTaskNameLength:
		verr.AddErr("name", ErrNameTooLong)
	}
	if req.StatusID <= 0 {
		verr.AddErr("status", ErrFieldRequired)
	}
	if req.ExecutorID != nil && *req.ExecutorID <= 0 {
		req.ExecutorID = nil
	}

	labels := make([]int, 0, len(req.LabelIDs))
	seen := make(map[int]struct{}, len(req.LabelIDs))
	for _, id := range req.LabelIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		labels = append(labels, id)
	}
	req.LabelIDs = labels

	return req, verr.OrNil()
}

// checkReferences verifies that status, executor and labels exist
func checkReferences(ctx context.Context, tx database.DataStore, req TaskRequest) error {
	verr := &models.ValidationError{}

	if _, err := tx.GetStatusByID(ctx, req.StatusID); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}
		verr.AddErr("status", ErrUnknownStatus)
	}

	if req.ExecutorID != nil {
		if _, err := tx.GetUserByID(ctx, *req.ExecutorID); err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				return err
			}
			verr.AddErr("executor", ErrUnknownExecutor)
		}
	}

	for _, labelID := range req.LabelIDs {
		if _, err := tx.GetLabelByID(ctx, labelID); err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				return err
			}
			verr.AddErr("labels", ErrUnknownLabel)
			break
		}
	}

	return verr.OrNil()
}
