// Package status holds the status listing command
package status

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
)

// StatusCmd returns the status parent command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect task statuses",
	}
	cmd.AddCommand(ListCmd())
	return cmd
}

// ListCmd returns the status list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List statuses",
		Long: `List all statuses ordered by id.

Examples:
  taskmanager status list
  taskmanager status list --quiet
`,
		RunE: runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

type statusView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	statuses, err := cliInstance.App.Repo().ListStatuses(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	views := make([]statusView, 0, len(statuses))
	ids := make([]int, 0, len(statuses))
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		views = append(views, statusView{ID: s.ID, Name: s.Name})
		ids = append(ids, s.ID)
		rows = append(rows, []string{strconv.Itoa(s.ID), s.Name})
	}

	return formatter.List("statuses", views, ids, func() error {
		if len(rows) == 0 {
			fmt.Println("No statuses found")
			return nil
		}
		fmt.Println(styles.Table([]string{"ID", "Name"}, rows))
		return nil
	})
}
