package filterlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/querysql"
	"github.com/roach88/wherec/internal/where"
)

func mustOr(t *testing.T, a, b where.Where) where.Where {
	t.Helper()
	w, err := where.Or(a, b)
	require.NoError(t, err)
	return w
}

func mustList(t *testing.T, property string, values ...any) where.Where {
	t.Helper()
	w, err := where.PropertyListEquals(property, values)
	require.NoError(t, err)
	return w
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want func(t *testing.T) where.Where
	}{
		{"equals string", `city = 'New York'`, func(t *testing.T) where.Where {
			return where.PropertyEquals("city", "New York")
		}},
		{"double quoted escapes", `note = "say \"hi\""`, func(t *testing.T) where.Where {
			return where.PropertyEquals("note", `say "hi"`)
		}},
		{"single quote doubled", `name = 'O''Brien'`, func(t *testing.T) where.Where {
			return where.PropertyEquals("name", "O'Brien")
		}},
		{"integer", `age = 42`, func(t *testing.T) where.Where {
			return where.PropertyEquals("age", int64(42))
		}},
		{"negative float", `delta > -1.5`, func(t *testing.T) where.Where {
			return where.PropertyAfter("delta", -1.5)
		}},
		{"before", `age < 18`, func(t *testing.T) where.Where {
			return where.PropertyBefore("age", int64(18))
		}},
		{"bool and null", `active = TRUE and deleted = null`, func(t *testing.T) where.Where {
			return where.And(where.PropertyEquals("active", true), where.PropertyEquals("deleted", nil))
		}},
		{"dotted property", `owner.address.city = 'Oslo'`, func(t *testing.T) where.Where {
			return where.PropertyEquals("owner.address.city", "Oslo")
		}},
		{"between", `created BETWEEN '2024-01-01' AND '2024-02-01'`, func(t *testing.T) where.Where {
			return where.PropertyBetween("created", "2024-01-01", "2024-02-01")
		}},
		{"between then and", `age between 1 and 5 and city = 'A'`, func(t *testing.T) where.Where {
			return where.And(where.PropertyBetween("age", int64(1), int64(5)), where.PropertyEquals("city", "A"))
		}},
		{"in list", `status in ('open', 'held', 'closed')`, func(t *testing.T) where.Where {
			return mustList(t, "status", "open", "held", "closed")
		}},
		{"in single", `status IN ('open')`, func(t *testing.T) where.Where {
			return mustList(t, "status", "open")
		}},
		{"or", `city = 'A' or city = 'B'`, func(t *testing.T) where.Where {
			return mustOr(t, where.PropertyEquals("city", "A"), where.PropertyEquals("city", "B"))
		}},
		{"and binds tighter", `a = 1 or b = 2 and c = 3`, func(t *testing.T) where.Where {
			return mustOr(t, where.PropertyEquals("a", int64(1)),
				where.And(where.PropertyEquals("b", int64(2)), where.PropertyEquals("c", int64(3))))
		}},
		{"or folds left", `a = 1 or b = 2 or c = 3`, func(t *testing.T) where.Where {
			ab := mustOr(t, where.PropertyEquals("a", int64(1)), where.PropertyEquals("b", int64(2)))
			return mustOr(t, ab, where.PropertyEquals("c", int64(3)))
		}},
		{"group", `city = 'A' and (age < 18 or age > 65)`, func(t *testing.T) where.Where {
			return where.And(where.PropertyEquals("city", "A"),
				mustOr(t, where.PropertyBefore("age", int64(18)), where.PropertyAfter("age", int64(65))))
		}},
		{"keyword prefix identifiers", `order = 1 and index = 2 and nullable = true`, func(t *testing.T) where.Where {
			return where.And(where.And(where.PropertyEquals("order", int64(1)), where.PropertyEquals("index", int64(2))),
				where.PropertyEquals("nullable", true))
		}},
		{"empty", `   `, func(t *testing.T) where.Where {
			return where.Where{}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want(t), got)
		})
	}
}

func TestParse_NormalizesStrings(t *testing.T) {
	// "e" followed by a combining acute accent.
	got, err := Parse("name = 'Jose\u0301'")
	require.NoError(t, err)
	assert.Equal(t, where.PropertyEquals("name", "Jos\u00e9"), got)
}

func TestParse_RoundTripsString(t *testing.T) {
	w := where.And(
		where.PropertyEquals("city", "A"),
		mustOr(t, where.PropertyBefore("age", int64(3)), where.PropertyAfter("age", int64(9))),
	)
	w = where.And(w, where.PropertyBetween("score", int64(1), int64(2)))

	got, err := Parse(w.String())
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestParse_DateTextBindsAsTimestamp(t *testing.T) {
	fields := []entity.Field{{PropertyName: "createdAt", ColumnName: "created_at", FieldType: entity.FieldTypeDateTime}}

	w, err := Parse(`createdAt between "2024-01-01" and "2024-02-01"`)
	require.NoError(t, err)

	q, err := querysql.Compile(querysql.MySQL, w, "orders", fields, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"orders", "created_at", "2024-01-01T00:00:00.000Z", "2024-02-01T00:00:00.000Z"}, q.BuildQueryValues())
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{
		`city`,
		`city = `,
		`city == 'A'`,
		`= 'A'`,
		`(city = 'A'`,
		`city in ()`,
		`age between 1`,
		`age = 99999999999999999999`,
		`a = 1 or`,
		`city = 'unterminated`,
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			assert.Error(t, err)
		})
	}
}
