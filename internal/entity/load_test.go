package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var ordersDefinition = &Definition{
	Table: "orders",
	Fields: []Field{
		{PropertyName: "id", ColumnName: "id", FieldType: FieldTypeBigInt},
		{PropertyName: "city", ColumnName: "city", FieldType: FieldTypeString},
		{PropertyName: "createdAt", ColumnName: "created_at", FieldType: FieldTypeString, ColumnDefinition: "TIMESTAMPTZ"},
	},
	Temporal: []TemporalProperty{
		{PropertyName: "createdAt", TemporalType: TemporalTimestamp},
	},
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "orders.yaml", `
table: orders
fields:
  - property: id
    column: id
    type: bigint
  - property: city
    column: city
    type: string
  - property: createdAt
    column: created_at
    type: string
    definition: TIMESTAMPTZ
temporal:
  - property: createdAt
    type: TIMESTAMP
`)

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ordersDefinition, def)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "orders.json", `{
  "table": "orders",
  "fields": [
    {"property": "id", "column": "id", "type": "bigint"},
    {"property": "city", "column": "city", "type": "string"},
    {"property": "createdAt", "column": "created_at", "type": "string", "definition": "TIMESTAMPTZ"}
  ],
  "temporal": [{"property": "createdAt", "type": "TIMESTAMP"}]
}`)

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ordersDefinition, def)
}

func TestLoad_CUE(t *testing.T) {
	path := writeFile(t, "orders.cue", `
#Field: {
	property:    string
	column?:     string
	type:        string
	definition?: string
}

entity: {
	table: "orders"
	fields: [...#Field] & [
		{property: "id", column: "id", type: "bigint"},
		{property: "city", column: "city", type: "string"},
		{property: "createdAt", column: "created_at", type: "string", definition: "TIMESTAMPTZ"},
	]
	temporal: [{property: "createdAt", type: "TIMESTAMP"}]
}
`)

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ordersDefinition, def)
}

func TestLoad_CUEErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, "bad.cue", `entity: {table: `)
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("not concrete", func(t *testing.T) {
		path := writeFile(t, "open.cue", `entity: {table: string, fields: []}`)
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"unknown extension", "orders.toml", "", "unsupported entity file extension"},
		{"unknown key", "orders.yaml", "table: orders\ncolour: red\n", "colour"},
		{"missing table", "orders.yaml", "fields:\n  - {property: a, column: a}\n", "table name is required"},
		{"no fields", "orders.yaml", "table: orders\n", "at least one field"},
		{"duplicate property", "orders.yaml", "table: orders\nfields:\n  - {property: a, column: a}\n  - {property: a, column: b}\n", "duplicate property"},
		{"missing column", "orders.yaml", "table: orders\nfields:\n  - {property: a, type: string}\n", "column name is required"},
		{"unknown type", "orders.yaml", "table: orders\nfields:\n  - {property: a, column: a, type: decimal}\n", "unknown field type"},
		{"unknown temporal type", "orders.yaml", "table: orders\nfields:\n  - {property: a, column: a}\ntemporal:\n  - {property: a, type: YEAR}\n", "unknown temporal type"},
		{"placeholder in table", "orders.yaml", "table: \"ord$?ers\"\nfields:\n  - {property: a, column: a}\n", "table name must not contain"},
		{"placeholder in column", "orders.yaml", "table: orders\nfields:\n  - {property: a, column: \"a$?b\"}\n", "column name must not contain"},
		{"temporal for unknown property", "orders.yaml", "table: orders\nfields:\n  - {property: a, column: a}\ntemporal:\n  - {property: b, type: DATE}\n", "unknown property"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read entity file")
}

func TestValidate_RelationWithoutColumn(t *testing.T) {
	def := &Definition{
		Table: "orders",
		Fields: []Field{
			{PropertyName: "id", ColumnName: "id"},
			{PropertyName: "customer", FieldType: FieldTypeJoinedEntity},
		},
	}
	assert.NoError(t, def.Validate())
}
