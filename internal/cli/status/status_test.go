package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/thenoetrevino/taskmanager/internal/testutil/cli"
)

func TestListStatuses(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	for _, name := range []string{"New", "In progress", "Testing", "Done"} {
		assert.Contains(t, output, name)
	}

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	result := clitest.ParseJSON(t, output)
	assert.Len(t, result["statuses"], 4)
}

func TestListStatuses_Empty(t *testing.T) {
	_, app := clitest.SetupEmptyCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No statuses found")
}
