// Package cli holds helpers for command tests. It is separate from testutil
// so that service tests importing testutil do not pull in the commands.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/taskmanager/internal/app"
	clipkg "github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/database"
	"github.com/thenoetrevino/taskmanager/internal/testutil"
)

// SetupCLITest creates an in-memory DB loaded with the default fixtures and
// returns both the DB and an App over it
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.LoadDefaultFixtures(t, db)
	return db, app.New(db, database.DialectSQLite, app.WithBcryptCost(bcrypt.MinCost))
}

// SetupEmptyCLITest is SetupCLITest without fixtures
func SetupEmptyCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(db, database.DialectSQLite, app.WithBcryptCost(bcrypt.MinCost))
}

// ExecuteCLICommand runs cmd against testApp and returns what it printed to stdout
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctx := clipkg.WithApp(context.Background(), testApp)

	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})
	return output, executeErr
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}
