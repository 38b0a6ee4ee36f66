package models

import "time"

// Task represents a single unit of work tracked by the application
type Task struct {
	ID          int
	Name        string
	Description string
	StatusID    int
	CreatorID   int
	ExecutorID  *int // nil when nobody is assigned
	LabelIDs    []int
	CreatedAt   time.Time
}

// GetID returns the task ID
func (t *Task) GetID() int { return t.ID }

// HasLabel reports whether labelID is attached to the task
func (t *Task) HasLabel(labelID int) bool {
	for _, id := range t.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}

// TaskDetail is a DTO for list and detail pages.
// Contains the task plus its resolved status, creator, executor and labels.
type TaskDetail struct {
	Task
	Status   *Status
	Creator  *User
	Executor *User // nil when nobody is assigned
	Labels   []*Label
}
