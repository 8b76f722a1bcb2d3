package querysql

import (
	"fmt"

	"github.com/roach88/wherec/internal/chain"
	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/where"
)

// Compile walks w into a fresh AND chain of the given dialect.
//
// The returned query's text is not finalized: Postgres callers embedding it
// in a larger statement must call FinalizePlaceholders on the result.
func Compile(d Dialect, w where.Where, table string, fields []entity.Field, temporals []entity.TemporalProperty) (chain.Query, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	root := d.NewAnd()
	if err := chain.Walk(root, w, table, fields, temporals, d.NewAnd, d.NewOr); err != nil {
		return nil, fmt.Errorf("compile %s where for %s: %w", d, table, err)
	}
	return root, nil
}
