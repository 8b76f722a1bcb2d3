package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Text(t *testing.T) {
	out, err := runCLI(t, "tree", `city = "Oslo" or (total > 10 and total < 20)`)
	require.NoError(t, err)

	assert.Contains(t, out, "WHERE")
	assert.Contains(t, out, "OR")
	assert.Contains(t, out, "AND")
	assert.Contains(t, out, `city = "Oslo"`)
	assert.Contains(t, out, "total > 10")
	assert.Contains(t, out, "total < 20")
}

func TestTree_JSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "tree", `city = "Oslo" or total > 10`)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   treeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, `(city = "Oslo" OR total > 10)`, resp.Data.Expression)
	assert.Contains(t, resp.Data.Tree, "OR")
}

func TestTree_ParseError(t *testing.T) {
	out, err := runCLI(t, "tree", `city ==`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeParse+"]")
}
