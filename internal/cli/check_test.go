package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Agree(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"plain columns", `city = "Oslo" and total > 6`, "both matched 2 of 3 records [0 2]"},
		{"timestamp column", `createdAt > "2024-01-01T00:00:00Z"`, "both matched 2 of 3 records [0 1]"},
		{"null json", `meta = null`, "both matched 1 of 3 records [2]"},
		{"or group", `city = "Bergen" or total between 20 and 30`, "both matched 2 of 3 records [0 1]"},
		{"no matches", `city = "Paris"`, "both matched 0 of 3 records []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "check", tt.expr, "--entity", ordersEntity, "--records", ordersRecords)
			require.NoError(t, err)
			assert.Contains(t, out, "ok: SQL and predicate "+tt.want)
		})
	}
}

func TestCheck_JSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "check", `city = "Oslo"`, "--entity", ordersEntity, "--records", ordersRecords)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   checkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, checkResult{Agree: true, Total: 3, SQL: []int{0, 2}, Predicate: []int{0, 2}}, resp.Data)
}

func TestCheck_Mismatch(t *testing.T) {
	// SQLite coerces the text operand to the integer column; the predicate
	// does not compare text with numbers.
	out, err := runCLI(t, "check", `id = "1"`, "--entity", ordersEntity, "--records", ordersRecords)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeMismatch)
	assert.Contains(t, out, "MISMATCH: SQL matched [0], predicate matched [] (of 3 records)")
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"unknown property", []string{"check", `country = "NO"`, "--entity", ordersEntity, "--records", ordersRecords}, "COLUMN_RESOLUTION"},
		{"parse error", []string{"check", `city = `, "--entity", ordersEntity, "--records", ordersRecords}, ErrCodeParse},
		{"missing records", []string{"check", `city = "Oslo"`, "--entity", ordersEntity, "--records", "testdata/missing.json"}, ErrCodeNotFound},
		{"no entity", []string{"check", `city = "Oslo"`, "--records", ordersRecords}, ErrCodeInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}
