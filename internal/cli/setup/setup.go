// Package setup holds the schema and demo data commands
package setup

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/cli/styles"
	"github.com/thenoetrevino/taskmanager/internal/database"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Apply the schema to the configured database. Safe to run repeatedly.

The database is chosen by DATABASE_URL: a postgres:// URL selects PostgreSQL,
anything else is a SQLite file path.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	db, dialect := cliInstance.App.DB()
	if err := database.Migrate(ctx, db, dialect); err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(map[string]string{"dialect": string(dialect)})
	}
	if !formatter.Quiet {
		fmt.Println(styles.SuccessStyle.Render("Schema is up to date") + " " +
			styles.SubtitleStyle.Render("("+string(dialect)+")"))
	}
	return nil
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data",
		Long: `Load users, statuses, labels and tasks from a YAML fixture file.
Without --file the built-in demo data set is loaded.

Examples:
  taskmanager seed
  taskmanager seed --file=fixtures.yaml --json
`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
	cmd.Flags().String("file", "", "YAML fixture file (defaults to the built-in data set)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	data := database.DefaultFixtures()
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return formatter.Fail(&cli.UsageError{Err: fmt.Errorf("failed to read fixtures: %w", err)})
		}
		data = b
	}
	if _, err := database.ParseFixtures(data); err != nil {
		return formatter.Fail(&cli.DataError{Err: err})
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() { _ = cliInstance.Close() }()

	db, dialect := cliInstance.App.DB()
	counts, err := database.LoadFixtures(ctx, db, dialect, data, cliInstance.App.Hasher.Hash)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Success(counts)
	}
	fmt.Println(styles.SuccessStyle.Render("Loaded") + " " + counts.String())
	return nil
}
