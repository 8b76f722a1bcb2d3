package querysql

import (
	"fmt"
	"reflect"
	"strings"
)

// ExpandIdentifiers completes a MySQL-style statement for drivers that only
// understand `?`.
//
// Each `??` consumes the next value, which must be a string, and is replaced
// by the backtick-quoted identifier. Each `?` consumes the next value; a
// slice or array (other than []byte) expands to one `?` per element. Tokens
// inside single-quoted literals are left alone. The number of values must
// match the tokens exactly.
func ExpandIdentifiers(query string, values []any) (string, []any, error) {
	var b strings.Builder
	b.Grow(len(query) + 16)
	args := make([]any, 0, len(values))

	next := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch == '\'' {
			inQuote = !inQuote
		}
		if ch != '?' || inQuote {
			b.WriteByte(ch)
			continue
		}

		if next >= len(values) {
			return "", nil, fmt.Errorf("expand identifiers: placeholder at offset %d has no value (%d values)", i, len(values))
		}
		v := values[next]
		next++

		if i+1 < len(query) && query[i+1] == '?' {
			name, ok := v.(string)
			if !ok {
				return "", nil, fmt.Errorf("expand identifiers: identifier at offset %d must be a string, got %T", i, v)
			}
			b.WriteString(QuoteMySQLIdentifier(name))
			i++
			continue
		}

		if list, ok := expandList(v); ok {
			if len(list) == 0 {
				return "", nil, fmt.Errorf("expand identifiers: empty list at offset %d", i)
			}
			b.WriteString(repeat("?", len(list)))
			args = append(args, list...)
			continue
		}

		b.WriteByte('?')
		args = append(args, v)
	}

	if inQuote {
		return "", nil, fmt.Errorf("expand identifiers: unterminated string literal")
	}
	if next != len(values) {
		return "", nil, fmt.Errorf("expand identifiers: %d values for %d placeholders", len(values), next)
	}
	return b.String(), args, nil
}

// QuoteMySQLIdentifier wraps name in backticks, doubling embedded backticks.
func QuoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func expandList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// Byte slices are blobs.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
