package task

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskmanager/internal/cli"
	clitest "github.com/thenoetrevino/taskmanager/internal/testutil/cli"
)

func TestListTask_Positive(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("List tasks human readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)

		require.NoError(t, err)
		assert.Contains(t, output, "Found 3 tasks")
		assert.Contains(t, output, "Write README")
		assert.Contains(t, output, "Fix login redirect")
		assert.Contains(t, output, "Plan release")
	})

	t.Run("List tasks quiet mode", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})

		require.NoError(t, err)
		assert.Equal(t, []string{"2", "3", "4"}, strings.Fields(output))
	})

	t.Run("List tasks JSON mode", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		var result struct {
			Success bool       `json:"success"`
			Tasks   []taskView `json:"tasks"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &result))
		assert.True(t, result.Success)
		require.Len(t, result.Tasks, 3)
		assert.Equal(t, "ivan", result.Tasks[0].Creator)
		assert.Equal(t, "maria", result.Tasks[0].Executor)
		assert.Equal(t, []string{"bug", "feature"}, result.Tasks[0].Labels)
	})
}

func TestListTask_Filters(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"by label", []string{"--label", "3"}, []string{"3"}},
		{"by creator", []string{"--creator", "3"}, []string{"4"}},
		{"by executor", []string{"--executor", "1"}, []string{"3"}},
		{"by status and label", []string{"--status", "1", "--label", "2"}, []string{"2"}},
		{"no match", []string{"--status", "3"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), append(tt.args, "--quiet"))
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, strings.TrimSpace(output))
				return
			}
			assert.Equal(t, tt.want, strings.Fields(output))
		})
	}
}

func TestListTask_InvalidFilter(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", "0", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestShowTask(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("human readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"2"})
		require.NoError(t, err)
		assert.Contains(t, output, "Write README")
		assert.Contains(t, output, "maria")
		assert.Contains(t, output, "setup")
	})

	t.Run("json by flag", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", "3", "--json"})
		require.NoError(t, err)

		result := clitest.ParseJSON(t, output)
		task := result["task"].(map[string]any)
		assert.Equal(t, "Fix login redirect", task["name"])
		assert.Equal(t, "In progress", task["status"])
		assert.Contains(t, task["description"], "next")
	})

	t.Run("quiet", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"4", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, "4\n", output)
	})
}

func TestShowTask_Negative(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"999", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"abc", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}
