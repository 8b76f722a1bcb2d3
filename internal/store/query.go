package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/wherec/internal/querysql"
)

// sqlite spells MySQL's JSON cast differently.
var jsonCast = strings.NewReplacer("CAST(? AS JSON)", "json(?)")

// prepare turns a MySQL-style statement into SQLite text and arguments.
func prepare(stmt querysql.Statement) (string, []any, error) {
	query, args, err := querysql.ExpandIdentifiers(stmt.SQL, stmt.Values)
	if err != nil {
		return "", nil, err
	}
	return jsonCast.Replace(query), args, nil
}

// Select runs a MySQL-dialect SELECT and returns each row keyed by column
// label. Text and blob values come back as string.
func (s *Store) Select(ctx context.Context, stmt querysql.Statement) ([]map[string]any, error) {
	query, args, err := prepare(stmt)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	slog.Debug("executing select", "sql", query, "args", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("select: columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("select: scan: %w", err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return out, nil
}

// Exec runs a MySQL-dialect statement that returns no rows, such as a
// DELETE, and reports the affected row count.
func (s *Store) Exec(ctx context.Context, stmt querysql.Statement) (int64, error) {
	query, args, err := prepare(stmt)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	slog.Debug("executing statement", "sql", query, "args", len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("exec: rows affected: %w", err)
	}
	return n, nil
}
