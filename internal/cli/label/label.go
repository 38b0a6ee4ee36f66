// Package label holds the label listing command
package label

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
)

// LabelCmd returns the label parent command
func LabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Inspect labels",
	}
	cmd.AddCommand(ListCmd())
	return cmd
}

// ListCmd returns the label list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels",
		Long: `List all labels with the number of tasks using each.

Examples:
  # Human-readable list
  taskmanager label list

  # JSON output for agents
  taskmanager label list --json

  # Quiet mode (one ID per line)
  taskmanager label list --quiet
`,
		RunE: runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

type labelView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Tasks int    `json:"tasks"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	repo := cliInstance.App.Repo()
	labels, err := repo.ListLabels(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	views := make([]labelView, 0, len(labels))
	ids := make([]int, 0, len(labels))
	for _, l := range labels {
		n, err := repo.CountTasksWithLabel(ctx, l.ID)
		if err != nil {
			return formatter.Fail(err)
		}
		views = append(views, labelView{ID: l.ID, Name: l.Name, Tasks: n})
		ids = append(ids, l.ID)
	}

	return formatter.List("labels", views, ids, func() error {
		if len(views) == 0 {
			fmt.Println("No labels found")
			return nil
		}
		rows := make([][]string, 0, len(views))
		for _, v := range views {
			rows = append(rows, []string{strconv.Itoa(v.ID), v.Name, strconv.Itoa(v.Tasks)})
		}
		fmt.Printf("Found %d labels:\n", len(views))
		fmt.Println(styles.Table([]string{"ID", "Name", "Tasks"}, rows))
		return nil
	})
}
