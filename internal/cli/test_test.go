package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTest_AllPass(t *testing.T) {
	out, err := runCLI(t, "test", "testdata/scenarios")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ orders-basic (2 cases)")
	assert.Contains(t, out, "✓ orders-errors (1 cases)")
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	out, err := runCLI(t, "test", "testdata/scenarios", "--filter", "*-basic")
	require.NoError(t, err)

	assert.Contains(t, out, "orders-basic")
	assert.NotContains(t, out, "orders-errors")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTest_NoScenarios(t *testing.T) {
	out, err := runCLI(t, "test", "testdata/scenarios", "--filter", "nothing-*")
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTest_Failure(t *testing.T) {
	out, err := runCLI(t, "test", "testdata/failing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ orders-wrong")
	assert.Contains(t, out, `city = "Oslo": expected matches [1], got [0]`)
	assert.Contains(t, out, "0 passed, 1 failed, 1 total")
}

func TestTest_JSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "test", "testdata/failing")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "orders-wrong", resp.Data.Scenarios[0].Name)
	assert.False(t, resp.Data.Scenarios[0].Pass)
}

func TestTest_MissingDir(t *testing.T) {
	out, err := runCLI(t, "test", "testdata/nowhere")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNotFound+"]")
}
