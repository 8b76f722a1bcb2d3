package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCompile_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "compile_where_postgres",
			args: []string{"compile", `city = "Oslo" and total > 10`, "--entity", ordersEntity, "--dialect", "postgres", "--where-only"},
		},
		{
			name: "compile_where_mysql",
			args: []string{"compile", `createdAt between "2024-01-01" and "2024-02-01" or city = "Bergen"`, "--entity", ordersEntity, "--where-only"},
		},
		{
			name: "compile_delete_postgres",
			args: []string{"compile", `city = "Oslo"`, "--entity", ordersEntity, "--dialect", "pg", "--delete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestCompile_JSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "compile", `city = "Oslo" and total > 10`,
		"--entity", ordersEntity, "--dialect", "postgres", "--where-only")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   compileResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "postgres", resp.Data.Dialect)
	assert.Equal(t, `("orders"."city" = $1 AND "orders"."total" > $2)`, resp.Data.SQL)
	assert.Equal(t, []any{"Oslo", float64(10)}, resp.Data.Values)
}

func TestCompile_Select(t *testing.T) {
	out, err := runCLI(t, "compile", `city = "Oslo"`, "--entity", ordersEntity,
		"--dialect", "postgres", "--order-by", "total", "--limit", "5")
	require.NoError(t, err)

	assert.Contains(t, out, `SELECT "orders"."id"::text AS "id"`)
	assert.Contains(t, out, `WHERE ("orders"."city" = $1)`)
	assert.Contains(t, out, `ORDER BY "orders"."total" LIMIT 5`)
	assert.Contains(t, out, `1: "Oslo"`)
	assert.NotContains(t, out, "customer")
}

func TestCompile_TableOverride(t *testing.T) {
	out, err := runCLI(t, "compile", `city = "Oslo"`, "--entity", ordersEntity,
		"--dialect", "postgres", "--where-only", "--table", "archived_orders")
	require.NoError(t, err)
	assert.Contains(t, out, `"archived_orders"."city" = $1`)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{
			name:     "parse error",
			args:     []string{"compile", `city = `, "--entity", ordersEntity},
			wantCode: ErrCodeParse,
		},
		{
			name:     "unknown property",
			args:     []string{"compile", `country = "NO"`, "--entity", ordersEntity},
			wantCode: "COLUMN_RESOLUTION",
		},
		{
			name:     "relation property",
			args:     []string{"compile", `customer = 1`, "--entity", ordersEntity},
			wantCode: "COLUMN_RESOLUTION",
		},
		{
			name:     "json ordering",
			args:     []string{"compile", `meta > 1`, "--entity", ordersEntity},
			wantCode: "UNSUPPORTED_CONSTRUCT",
		},
		{
			name:     "missing entity file",
			args:     []string{"compile", `city = "Oslo"`, "--entity", "testdata/missing.yaml"},
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "no entity",
			args:     []string{"compile", `city = "Oslo"`},
			wantCode: ErrCodeInvalidEntity,
		},
		{
			name:     "unknown dialect",
			args:     []string{"compile", `city = "Oslo"`, "--entity", ordersEntity, "--dialect", "oracle"},
			wantCode: ErrCodeGeneric,
		},
		{
			name:     "delete without where",
			args:     []string{"compile", ``, "--entity", ordersEntity, "--delete"},
			wantCode: ErrCodeGeneric,
		},
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

func TestCompile_ErrorJSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "compile", `country = "NO"`, "--entity", ordersEntity)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "COLUMN_RESOLUTION", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "property=country")
}

func TestCompile_WhereOnlyAndDeleteExclusive(t *testing.T) {
	_, err := runCLI(t, "compile", `city = "Oslo"`, "--entity", ordersEntity, "--where-only", "--delete")
	require.Error(t, err)
}
