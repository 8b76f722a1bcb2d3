package querysql

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/roach88/wherec/internal/chain"
)

// Dialect selects the SQL flavour a statement is rendered in.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect accepts "mysql", "postgres", "postgresql" or "pg", in any case.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (want mysql or postgres)", s)
	}
}

// Validate reports an error for a Dialect not produced by ParseDialect.
func (d Dialect) Validate() error {
	switch d {
	case MySQL, Postgres:
		return nil
	default:
		return fmt.Errorf("unknown dialect %q", string(d))
	}
}

// NewAnd returns an empty AND chain for d, or nil for an unknown dialect.
func (d Dialect) NewAnd() chain.Builder {
	switch d {
	case MySQL:
		return NewMySQLAnd()
	case Postgres:
		return NewPostgresAnd()
	default:
		return nil
	}
}

// NewOr returns an empty OR chain for d, or nil for an unknown dialect.
func (d Dialect) NewOr() chain.Builder {
	switch d {
	case MySQL:
		return NewMySQLOr()
	case Postgres:
		return NewPostgresOr()
	default:
		return nil
	}
}

// Finalize completes a fully concatenated statement: Postgres placeholders
// are numbered, MySQL text is returned as is.
func (d Dialect) Finalize(query string) string {
	if d == Postgres {
		return FinalizePlaceholders(query)
	}
	return query
}

// identifier renders a bare identifier, returning the values it consumes.
func (d Dialect) identifier(name string) (string, []any) {
	if d == Postgres {
		return pq.QuoteIdentifier(name), nil
	}
	return "??", []any{name}
}

// qualified renders table.column, returning the values it consumes.
func (d Dialect) qualified(table, column string) (string, []any) {
	if d == Postgres {
		return QualifiedColumn(table, column), nil
	}
	return "??.??", []any{table, column}
}
