package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/querysql"
)

// KeyColumn is the generated primary key column of every table.
const KeyColumn = "_key"

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// KeyField describes KeyColumn as an entity field, for projecting it.
func KeyField() entity.Field {
	return entity.Field{PropertyName: KeyColumn, ColumnName: KeyColumn, FieldType: entity.FieldTypeString}
}

// WithKey returns fields with KeyField prepended.
func WithKey(fields []entity.Field) []entity.Field {
	out := make([]entity.Field, 0, len(fields)+1)
	out = append(out, KeyField())
	return append(out, fields...)
}

// CreateTable creates the table for def if it does not exist.
func (s *Store) CreateTable(ctx context.Context, def *entity.Definition) error {
	if err := checkIdentifier(def.Table); err != nil {
		return err
	}

	cols := []string{querysql.QuoteMySQLIdentifier(KeyColumn) + " TEXT PRIMARY KEY"}
	for _, f := range storedFields(def) {
		if err := checkIdentifier(f.ColumnName); err != nil {
			return err
		}
		col := querysql.QuoteMySQLIdentifier(f.ColumnName)
		if affinity := columnAffinity(f, def.Temporal); affinity != "" {
			col += " " + affinity
		}
		cols = append(cols, col)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		querysql.QuoteMySQLIdentifier(def.Table), strings.Join(cols, ", "))
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", def.Table, err)
	}
	slog.Debug("table created", "table", def.Table, "columns", len(cols))
	return nil
}

// Insert stores record under a new key and returns the key. Properties the
// definition does not name are ignored; missing ones are stored as NULL.
func (s *Store) Insert(ctx context.Context, def *entity.Definition, record map[string]any) (string, error) {
	key := uuid.NewString()

	fields := storedFields(def)
	cols := make([]string, 0, len(fields)+1)
	marks := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)

	cols = append(cols, querysql.QuoteMySQLIdentifier(KeyColumn))
	marks = append(marks, "?")
	args = append(args, key)

	for _, f := range fields {
		v, err := storedValue(f, def.Temporal, record[f.PropertyName])
		if err != nil {
			return "", fmt.Errorf("insert into %s: property %s: %w", def.Table, f.PropertyName, err)
		}
		cols = append(cols, querysql.QuoteMySQLIdentifier(f.ColumnName))
		if entity.IsJSON(f) && v != nil {
			marks = append(marks, "json(?)")
		} else {
			marks = append(marks, "?")
		}
		args = append(args, v)
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		querysql.QuoteMySQLIdentifier(def.Table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return "", fmt.Errorf("insert into %s: %w", def.Table, err)
	}
	return key, nil
}

func checkIdentifier(name string) error {
	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// storedFields are the fields backed by a column of the table.
func storedFields(def *entity.Definition) []entity.Field {
	out := make([]entity.Field, 0, len(def.Fields))
	for _, f := range def.Fields {
		if f.FieldType.IsRelation() || f.ColumnName == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

func columnAffinity(f entity.Field, temporals []entity.TemporalProperty) string {
	if kind, ok := entity.KindOf(f, temporals); ok && kind.IsTemporal() {
		return "TEXT"
	}
	switch f.FieldType {
	case entity.FieldTypeInteger, entity.FieldTypeBigInt, entity.FieldTypeBoolean:
		return "INTEGER"
	case entity.FieldTypeNumber:
		return "REAL"
	case entity.FieldTypeString, entity.FieldTypeJSON:
		return "TEXT"
	default:
		return ""
	}
}

// storedValue converts a record value to what the column holds: canonical
// timestamp text for timestamp and date columns, JSON text for json columns.
func storedValue(f entity.Field, temporals []entity.TemporalProperty, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	if entity.IsJSON(f) {
		if s, ok := v.(string); ok && json.Valid([]byte(s)) {
			return s, nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}

	if kind, ok := entity.KindOf(f, temporals); ok && (kind == entity.KindTimestamp || kind == entity.KindDate) {
		switch v.(type) {
		case time.Time, *time.Time, string:
			return querysql.TemporalValue(v), nil
		}
	}

	switch v.(type) {
	case map[string]any, []any:
		return nil, fmt.Errorf("nested value for non-json column %s", f.ColumnName)
	case bool:
		if v.(bool) {
			return int64(1), nil
		}
		return int64(0), nil
	}
	return v, nil
}
