// Package user holds the user listing command
package user

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect users",
	}
	cmd.AddCommand(ListCmd())
	return cmd
}

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long: `List all registered users ordered by id.

Examples:
  # Human-readable table
  taskmanager user list

  # JSON output for agents
  taskmanager user list --json
`,
		RunE: runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// userView is the JSON shape of a user; it never carries the password hash
type userView struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	users, err := cliInstance.App.UserService.ListUsers(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	views := make([]userView, 0, len(users))
	ids := make([]int, 0, len(users))
	for _, u := range users {
		views = append(views, toView(u))
		ids = append(ids, u.ID)
	}

	return formatter.List("users", views, ids, func() error {
		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}
		rows := make([][]string, 0, len(views))
		for _, v := range views {
			rows = append(rows, []string{strconv.Itoa(v.ID), v.Username, v.FirstName + " " + v.LastName, v.CreatedAt})
		}
		fmt.Println(styles.Table([]string{"ID", "Username", "Full name", "Created"}, rows))
		return nil
	})
}

func toView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04"),
	}
}
