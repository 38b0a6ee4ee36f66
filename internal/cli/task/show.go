package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display a task with its status, people, labels and the description rendered as Markdown.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Task ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	var taskID int
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return formatter.Fail(&cli.UsageError{Err: fmt.Errorf("invalid task id %q", args[0])})
		}
		taskID = id
	} else {
		taskID, _ = cmd.Flags().GetInt("id")
	}
	if taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("USAGE_ERROR",
			"task ID must be a positive integer",
			"Usage: taskmanager task show <id> or taskmanager task show --id=<id>"); fmtErr != nil {
			return fmtErr
		}
		return &cli.UsageError{Err: errors.New("task ID must be a positive integer")}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	task, err := cliInstance.App.Repo().GetTaskDetail(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	view := toView(task, true)
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"task":    view,
		})
	}

	return outputHuman(view)
}

func outputHuman(v taskView) error {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", v.ID, v.Name)))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render("Created " + v.CreatedAt.Format("2006-01-02 15:04")))
	content.WriteString("\n\n")

	executor := v.Executor
	if executor == "" {
		executor = "nobody"
	}
	content.WriteString(styles.Field("Status", v.Status) + "\n")
	content.WriteString(styles.Field("Creator", v.Creator) + "\n")
	content.WriteString(styles.Field("Executor", executor) + "\n")

	labels := "none"
	if len(v.Labels) > 0 {
		labels = strings.Join(v.Labels, ", ")
	}
	content.WriteString(styles.Field("Labels", labels) + "\n")

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(styles.Markdown(v.Description, styles.CardWidth-6))

	fmt.Println(styles.CardStyle.Render(content.String()))
	return nil
}
