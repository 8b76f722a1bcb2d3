package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/predicate"
	"github.com/roach88/wherec/internal/querysql"
	"github.com/roach88/wherec/internal/store"
	"github.com/roach88/wherec/internal/where"
)

// Fixture is a set of records loaded into a fresh in-memory table.
type Fixture struct {
	store     *store.Store
	def       *entity.Definition
	positions map[string]int
}

// Load creates the table for def in a new in-memory database and inserts
// records in order. Close releases the database.
func Load(ctx context.Context, def *entity.Definition, records []map[string]any) (*Fixture, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}

	if err := st.CreateTable(ctx, def); err != nil {
		st.Close()
		return nil, err
	}

	positions := make(map[string]int, len(records))
	for i, r := range records {
		key, err := st.Insert(ctx, def, r)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		positions[key] = i
	}

	slog.Debug("fixture loaded", "table", def.Table, "records", len(records))
	return &Fixture{store: st, def: def, positions: positions}, nil
}

// Close closes the underlying database.
func (f *Fixture) Close() error {
	return f.store.Close()
}

// SQLMatches returns the sorted positions of the records selected by the
// MySQL SELECT compiled from w.
func (f *Fixture) SQLMatches(ctx context.Context, w where.Where) ([]int, error) {
	st, err := querysql.Select{
		Dialect:  querysql.MySQL,
		Table:    f.def.Table,
		Fields:   store.WithKey(f.def.Fields),
		Temporal: f.def.Temporal,
		Where:    w,
	}.Build()
	if err != nil {
		return nil, err
	}

	rows, err := f.store.Select(ctx, st)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(rows))
	for _, row := range rows {
		key, _ := row[store.KeyColumn].(string)
		i, ok := f.positions[key]
		if !ok {
			return nil, fmt.Errorf("select returned unknown key %q", key)
		}
		out = append(out, i)
	}
	slices.Sort(out)
	return out, nil
}

// PredicateMatches returns the positions of the records the predicate
// compiled from w accepts.
func PredicateMatches(w where.Where, records []map[string]any) ([]int, error) {
	match, err := predicate.CompileAnd(w)
	if err != nil {
		return nil, err
	}
	out := []int{}
	for i, r := range records {
		if match(r) {
			out = append(out, i)
		}
	}
	return out, nil
}
