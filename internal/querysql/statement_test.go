package querysql

import (
	"strings"
	"testing"
	"time"

	pg_query "github.com/pganalyze/pg_query_go/v5"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/where"
)

var ordersFields = []entity.Field{
	{PropertyName: "id", ColumnName: "id", FieldType: entity.FieldTypeBigInt},
	{PropertyName: "city", ColumnName: "city", FieldType: entity.FieldTypeString},
	{PropertyName: "createdAt", ColumnName: "created_at", FieldType: entity.FieldTypeDateTime},
	{PropertyName: "meta", ColumnName: "meta", FieldType: entity.FieldTypeJSON},
	{PropertyName: "customer", FieldType: entity.FieldTypeManyToOne},
}

// ordersFilter is: city = "New York" AND (createdAt in January OR meta = {"vip":true}).
func ordersFilter(t *testing.T) where.Where {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	either, err := where.Or(
		where.PropertyBetween("createdAt", start, end),
		where.PropertyEquals("meta", `{"vip":true}`),
	)
	require.NoError(t, err)
	return where.And(where.PropertyEquals("city", "New York"), either)
}

func renderStatement(st Statement) []byte {
	var b strings.Builder
	b.WriteString(st.SQL)
	b.WriteString("\n-- values\n")
	for _, value := range st.Values {
		b.WriteString(where.FormatValue(value))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestSelect_Golden(t *testing.T) {
	for _, d := range []Dialect{MySQL, Postgres} {
		t.Run(string(d), func(t *testing.T) {
			st, err := Select{
				Dialect: d,
				Table:   "orders",
				Fields:  ordersFields,
				Where:   ordersFilter(t),
				Limit:   10,
			}.Build()
			require.NoError(t, err)

			newGoldie(t).Assert(t, "select_"+string(d), renderStatement(st))
		})
	}
}

func TestDelete_Golden(t *testing.T) {
	for _, d := range []Dialect{MySQL, Postgres} {
		t.Run(string(d), func(t *testing.T) {
			st, err := Delete{
				Dialect: d,
				Table:   "orders",
				Fields:  ordersFields,
				Where:   where.PropertyBefore("createdAt", time.Date(2023, 6, 30, 12, 0, 0, 0, time.UTC)),
			}.Build()
			require.NoError(t, err)

			newGoldie(t).Assert(t, "delete_"+string(d), renderStatement(st))
		})
	}
}

func TestSelect_PostgresParses(t *testing.T) {
	list, err := where.PropertyListEquals("city", []any{"A", "B", "C"})
	require.NoError(t, err)

	filters := map[string]where.Where{
		"none":   {},
		"orders": ordersFilter(t),
		"list":   list,
		"null":   where.PropertyEquals("city", nil),
		"nested": where.And(list, where.PropertyAfter("id", 10)),
	}

	for name, w := range filters {
		t.Run(name, func(t *testing.T) {
			st, err := Select{Dialect: Postgres, Table: "orders", Fields: ordersFields, Where: w, Limit: 5}.Build()
			require.NoError(t, err)
			assert.NotContains(t, st.SQL, PlaceholderToken)

			_, err = pg_query.Parse(st.SQL)
			require.NoError(t, err, st.SQL)

			del, err := Delete{Dialect: Postgres, Table: "orders", Fields: ordersFields, Where: w}.Build()
			if w.IsEmpty() {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, err = pg_query.Parse(del.SQL)
			require.NoError(t, err, del.SQL)
		})
	}
}

func TestSelect_PlaceholdersMatchValues(t *testing.T) {
	st, err := Select{Dialect: Postgres, Table: "orders", Fields: ordersFields, Where: ordersFilter(t)}.Build()
	require.NoError(t, err)
	assert.Contains(t, st.SQL, "$4")
	assert.NotContains(t, st.SQL, "$5")
	assert.Len(t, st.Values, 4)

	st, err = Select{Dialect: MySQL, Table: "orders", Fields: ordersFields, Where: ordersFilter(t)}.Build()
	require.NoError(t, err)
	expanded, args, err := ExpandIdentifiers(st.SQL, st.Values)
	require.NoError(t, err)
	assert.NotContains(t, expanded, "??")
	assert.Len(t, args, 4)
}

func TestSelect_OrderByAndLimit(t *testing.T) {
	st, err := Select{
		Dialect: Postgres,
		Table:   "orders",
		Fields:  ordersFields,
		OrderBy: []string{"createdAt", "id"},
	}.Build()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(st.SQL, ` FROM "orders" ORDER BY "orders"."created_at", "orders"."id"`), st.SQL)
	assert.Empty(t, st.Values)
}

func TestSelect_Errors(t *testing.T) {
	testCases := []struct {
		name string
		sel  Select
	}{
		{"unknown dialect", Select{Dialect: "oracle", Table: "orders", Fields: ordersFields}},
		{"no table", Select{Dialect: MySQL, Fields: ordersFields}},
		{"negative limit", Select{Dialect: MySQL, Table: "orders", Fields: ordersFields, Limit: -1}},
		{"no columns", Select{Dialect: MySQL, Table: "orders", Fields: []entity.Field{{PropertyName: "customer", FieldType: entity.FieldTypeOneToMany}}}},
		{"unknown order property", Select{Dialect: MySQL, Table: "orders", Fields: ordersFields, OrderBy: []string{"zip"}}},
		{"relation order property", Select{Dialect: MySQL, Table: "orders", Fields: ordersFields, OrderBy: []string{"customer"}}},
		{"bad where", Select{Dialect: MySQL, Table: "orders", Fields: ordersFields, Where: where.PropertyEquals("zip", 1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.sel.Build()
			require.Error(t, err)
		})
	}
}

func TestDelete_RequiresWhere(t *testing.T) {
	_, err := Delete{Dialect: MySQL, Table: "orders", Fields: ordersFields}.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a where clause")
}
