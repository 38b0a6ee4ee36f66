package task

import (
	"strconv"
	"strings"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

// FilterInput is the raw task list query: ids as submitted, empty meaning "any"
type FilterInput struct {
	Status    string
	Executor  string
	Label     string
	SelfTasks bool
}

// BuildFilter turns the raw query into a TaskFilter. SelfTasks restricts the
// list to tasks created by actor. Malformed ids are a validation error.
func BuildFilter(actor auth.Identity, in FilterInput) (models.TaskFilter, error) {
	var f models.TaskFilter
	verr := &models.ValidationError{}

	f.StatusID = parseOptionalID(verr, "status", in.Status)
	f.ExecutorID = parseOptionalID(verr, "executor", in.Executor)
	f.LabelID = parseOptionalID(verr, "label", in.Label)

	if in.SelfTasks && actor.IsAuthenticated() {
		id := actor.UserID
		f.CreatorID = &id
	}

	if err := verr.OrNil(); err != nil {
		return models.TaskFilter{}, err
	}
	return f, nil
}

func parseOptionalID(verr *models.ValidationError, field, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		verr.AddErr(field, ErrInvalidFilterID)
		return nil
	}
	return &id
}
