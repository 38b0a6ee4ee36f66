package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/label"
	"github.com/thenoetrevino/taskmanager/internal/cli/serve"
	"github.com/thenoetrevino/taskmanager/internal/cli/setup"
	"github.com/thenoetrevino/taskmanager/internal/cli/status"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
	"github.com/thenoetrevino/taskmanager/internal/cli/task"
	"github.com/thenoetrevino/taskmanager/internal/cli/user"
	"github.com/thenoetrevino/taskmanager/internal/config"
	"github.com/thenoetrevino/taskmanager/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "taskmanager",
	Short: "Taskmanager - a multi-user task tracker",
	Long: `Taskmanager tracks tasks with statuses, labels, creators and executors.
Run "taskmanager serve" for the web interface; the other commands inspect
and prepare the database from the terminal.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/taskmanager/config.yaml)")

	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(setup.MigrateCmd())
	rootCmd.AddCommand(setup.SeedCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(status.StatusCmd())
	rootCmd.AddCommand(label.LabelCmd())
	rootCmd.AddCommand(task.TaskCmd())
}

// loadConfig reads configuration, installs the logger and styles, and hands
// the configuration to the command through its context
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	if err := logging.Init(cfg.Log.Level, cfg.Log.Format, os.Stderr); err != nil {
		return &cli.UsageError{Err: err}
	}
	styles.Init(cfg.Theme)

	cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
