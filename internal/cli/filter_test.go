package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Text(t *testing.T) {
	out, err := runCLI(t, "filter", `city = "Oslo"`, "--records", ordersRecords)
	require.NoError(t, err)

	assert.Contains(t, out, "2 of 3 records matched")
	assert.Contains(t, out, "Oslo")
	assert.Contains(t, out, "createdAt")
	assert.NotContains(t, out, "Bergen")
}

func TestFilter_NoMatches(t *testing.T) {
	out, err := runCLI(t, "filter", `city = "Paris"`, "--records", ordersRecords)
	require.NoError(t, err)
	assert.Equal(t, "0 of 3 records matched\n", out)
}

func TestFilter_JSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "filter", `meta.vip = true or total < 6`, "--records", ordersRecords)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   filterResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Matched)
	assert.Equal(t, 3, resp.Data.Total)
	require.Len(t, resp.Data.Records, 2)
	assert.Equal(t, float64(1), resp.Data.Records[0]["id"])
	assert.Equal(t, float64(2), resp.Data.Records[1]["id"])
}

func TestFilter_Errors(t *testing.T) {
	dir := t.TempDir()
	notArray := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(notArray, []byte(`{"city":"Oslo"}`), 0644))
	notObjects := filepath.Join(dir, "numbers.json")
	require.NoError(t, os.WriteFile(notObjects, []byte(`[1, 2]`), 0644))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`[{"city":`), 0644))

	tests := []struct {
		name     string
		expr     string
		records  string
		wantCode string
	}{
		{"parse error", `city = `, ordersRecords, ErrCodeParse},
		{"missing file", `city = "Oslo"`, filepath.Join(dir, "missing.json"), ErrCodeNotFound},
		{"not an array", `city = "Oslo"`, notArray, ErrCodeInvalidRecords},
		{"not objects", `city = "Oslo"`, notObjects, ErrCodeInvalidRecords},
		{"invalid json", `city = "Oslo"`, broken, ErrCodeInvalidRecords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "filter", tt.expr, "--records", tt.records)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestRecordTable(t *testing.T) {
	header, rows := recordTable([]map[string]any{
		{"city": "Oslo", "id": float64(1), "meta": map[string]any{"vip": true}},
		{"city": "Bergen", "total": 2.5, "meta": nil},
	})

	assert.Equal(t, []string{"city", "id", "meta", "total"}, header)
	assert.Equal(t, [][]string{
		{"Oslo", "1", `{"vip":true}`, ""},
		{"Bergen", "", "NULL", "2.5"},
	}, rows)
}
