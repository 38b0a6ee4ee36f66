package models

import "time"

// Status is a named workflow state a task can be in (e.g. "New", "In Progress").
// It is a free label, not a state machine: any task may move to any status.
type Status struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

// GetID returns the status ID
func (s *Status) GetID() int { return s.ID }
