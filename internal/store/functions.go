package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/wherec/internal/querysql"
)

func registerFunctions(conn *sqlite3.SQLiteConn) error {
	funcs := map[string]any{
		"str_to_date": strToDate,
		"date_format": dateFormat,
		"time_format": timeFormat,
		"left":        left,
		"concat":      concat,
	}
	for name, fn := range funcs {
		if err := conn.RegisterFunc(name, fn, true); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

// strToDate accepts only TimestampLayout text, the one form the MySQL chain
// binds. Anything else is NULL, as STR_TO_DATE returns on a format mismatch.
func strToDate(v any, _ string) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(querysql.TimestampLayout, s)
	if err != nil {
		return nil
	}
	return t.Format(querysql.TimestampLayout)
}

// dateFormat renders canonical timestamp text for the two formats the
// projection uses. %f yields six digits, as in MySQL.
func dateFormat(v any, format string) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(querysql.TimestampLayout, s)
	if err != nil {
		return s
	}
	switch format {
	case "%Y-%m-%d":
		return t.Format("2006-01-02")
	case "%Y-%m-%dT%H:%i:%s.%f":
		return t.Format("2006-01-02T15:04:05.000000")
	default:
		return s
	}
}

// timeFormat returns v: time columns are stored as entered.
func timeFormat(v any, _ string) any {
	return v
}

func left(v any, n int64) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	if int64(len(s)) <= n {
		return s
	}
	return s[:n]
}

// concat is NULL when any part is NULL, unlike the SQLite builtin.
func concat(parts ...any) any {
	var b strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case nil:
			return nil
		case string:
			b.WriteString(v)
		case []byte:
			b.Write(v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}
