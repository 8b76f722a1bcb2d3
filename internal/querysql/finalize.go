package querysql

import (
	"strconv"
	"strings"
)

// PlaceholderToken is the unnumbered value placeholder Postgres chains emit.
const PlaceholderToken = "$?"

// FinalizePlaceholders rewrites every PlaceholderToken in query, left to
// right, as $1, $2, ... $N. A query without tokens is returned unchanged.
//
// Call it exactly once, on the fully concatenated statement.
func FinalizePlaceholders(query string) string {
	if !strings.Contains(query, PlaceholderToken) {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for {
		i := strings.Index(query, PlaceholderToken)
		if i < 0 {
			b.WriteString(query)
			return b.String()
		}
		n++
		b.WriteString(query[:i])
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
		query = query[i+len(PlaceholderToken):]
	}
}
