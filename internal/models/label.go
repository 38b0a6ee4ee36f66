package models

import "time"

// Label represents a tag that can be attached to any number of tasks
type Label struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

// GetID returns the label ID
func (l *Label) GetID() int { return l.ID }
