// Package task holds the task listing and detail commands
package task

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect tasks",
	}
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	return cmd
}

// taskView is the JSON shape shared by list and show
type taskView struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Creator     string    `json:"creator"`
	Executor    string    `json:"executor,omitempty"`
	Labels      []string  `json:"labels"`
	CreatedAt   time.Time `json:"created_at"`
}

func toView(d *models.TaskDetail, withDescription bool) taskView {
	v := taskView{
		ID:        d.ID,
		Name:      d.Name,
		Labels:    make([]string, 0, len(d.Labels)),
		CreatedAt: d.CreatedAt,
	}
	if withDescription {
		v.Description = d.Description
	}
	if d.Status != nil {
		v.Status = d.Status.Name
	}
	if d.Creator != nil {
		v.Creator = d.Creator.Username
	}
	if d.Executor != nil {
		v.Executor = d.Executor.Username
	}
	for _, l := range d.Labels {
		v.Labels = append(v.Labels, l.Name)
	}
	return v
}
