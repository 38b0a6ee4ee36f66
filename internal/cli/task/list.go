package task

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally filtered. Filters are combined with AND.

Examples:
  # Every task
  taskmanager task list

  # Tasks labelled 3 that are assigned to user 1
  taskmanager task list --label=3 --executor=1

  # IDs only, for scripts
  taskmanager task list --status=2 --quiet
`,
		RunE: runList,
	}

	cmd.Flags().Int("status", 0, "Only tasks with this status ID")
	cmd.Flags().Int("executor", 0, "Only tasks assigned to this user ID")
	cmd.Flags().Int("label", 0, "Only tasks carrying this label ID")
	cmd.Flags().Int("creator", 0, "Only tasks created by this user ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func buildFilter(cmd *cobra.Command) (models.TaskFilter, error) {
	var f models.TaskFilter
	var err error
	if f.StatusID, err = cli.OptionalID(cmd, "status"); err != nil {
		return f, err
	}
	if f.ExecutorID, err = cli.OptionalID(cmd, "executor"); err != nil {
		return f, err
	}
	if f.LabelID, err = cli.OptionalID(cmd, "label"); err != nil {
		return f, err
	}
	if f.CreatorID, err = cli.OptionalID(cmd, "creator"); err != nil {
		return f, err
	}
	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	filter, err := buildFilter(cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	tasks, err := cliInstance.App.Repo().ListTaskDetails(ctx, filter)
	if err != nil {
		return formatter.Fail(err)
	}

	views := make([]taskView, 0, len(tasks))
	ids := make([]int, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toView(t, false))
		ids = append(ids, t.ID)
	}

	return formatter.List("tasks", views, ids, func() error {
		if len(views) == 0 {
			fmt.Println("No tasks found")
			return nil
		}
		rows := make([][]string, 0, len(views))
		for _, v := range views {
			rows = append(rows, []string{
				strconv.Itoa(v.ID), v.Name, v.Status, v.Creator, v.Executor, strings.Join(v.Labels, ", "),
			})
		}
		fmt.Printf("Found %d tasks:\n", len(views))
		fmt.Println(styles.Table([]string{"ID", "Name", "Status", "Creator", "Executor", "Labels"}, rows))
		return nil
	})
}
