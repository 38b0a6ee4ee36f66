package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/testutil"
	clitest "github.com/thenoetrevino/taskmanager/internal/testutil/cli"
)

func TestSeed_Default(t *testing.T) {
	db, app := clitest.SetupEmptyCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--json"})
	require.NoError(t, err)

	result := clitest.ParseJSON(t, output)
	counts := result["data"].(map[string]any)
	assert.Equal(t, float64(3), counts["users"])
	assert.Equal(t, float64(4), counts["statuses"])
	assert.Equal(t, float64(4), counts["labels"])
	assert.Equal(t, float64(3), counts["tasks"])

	assert.Equal(t, 3, testutil.CountRows(t, db, "tasks"))

	// Seeded passwords are hashed and usable for login
	u, err := app.UserService.Authenticate(t.Context(), "test1", testutil.FixturePassword)
	require.NoError(t, err)
	assert.Equal(t, 3, u.ID)
}

func TestSeed_File(t *testing.T) {
	db, app := clitest.SetupEmptyCLITest(t)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
statuses:
  - id: 1
    name: Open
labels:
  - id: 1
    name: ops
`), 0o600))

	output, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--file", path})
	require.NoError(t, err)
	assert.Contains(t, output, "0 users, 1 statuses, 1 labels, 0 tasks")
	assert.Equal(t, 1, testutil.CountRows(t, db, "statuses"))
}

func TestSeed_Negative(t *testing.T) {
	_, app := clitest.SetupEmptyCLITest(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [unclosed"), 0o600))

	_, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--file", path, "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataErr, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--file", filepath.Join(t.TempDir(), "missing.yaml"), "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestMigrate(t *testing.T) {
	_, app := clitest.SetupEmptyCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, MigrateCmd(), []string{"--json"})
	require.NoError(t, err)
	result := clitest.ParseJSON(t, output)
	assert.Equal(t, "sqlite", result["data"].(map[string]any)["dialect"])
}
