package models

// TaskFilter selects which tasks a listing returns.
// Every non-nil field adds one predicate; predicates are AND-ed together.
// The zero value matches every task.
type TaskFilter struct {
	StatusID   *int
	ExecutorID *int
	LabelID    *int
	CreatorID  *int // "only my tasks"
}

// IsEmpty reports whether the filter has no predicates
func (f TaskFilter) IsEmpty() bool {
	return f.StatusID == nil && f.ExecutorID == nil && f.LabelID == nil && f.CreatorID == nil
}
