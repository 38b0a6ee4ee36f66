package database

import (
	"strings"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// buildTaskWhere turns a TaskFilter into a WHERE clause over the "t" alias.
// Each set field contributes one predicate; the label predicate is an EXISTS
// subquery so a task with several labels is never returned twice.
func buildTaskWhere(f models.TaskFilter) (string, []any) {
	var preds []string
	var args []any

	if f.StatusID != nil {
		preds = append(preds, "t.status_id = ?")
		args = append(args, *f.StatusID)
	}
	if f.ExecutorID != nil {
		preds = append(preds, "t.executor_id = ?")
		args = append(args, *f.ExecutorID)
	}
	if f.LabelID != nil {
		preds = append(preds,
			"EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = ?)")
		args = append(args, *f.LabelID)
	}
	if f.CreatorID != nil {
		preds = append(preds, "t.creator_id = ?")
		args = append(args, *f.CreatorID)
	}

	if len(preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}
