package querysql

import (
	"github.com/lib/pq"

	"github.com/roach88/wherec/internal/chain"
)

// PostgresChain renders predicates with quoted identifiers and unnumbered
// PlaceholderToken values.
//
// Temporal setters bind the same placeholder as their plain counterparts:
// Postgres infers the parameter type from the compared column and accepts
// ISO-8601 text for it.
type PostgresChain struct {
	fragments
}

var _ chain.Builder = (*PostgresChain)(nil)

// NewPostgresAnd returns an empty chain joined with AND.
func NewPostgresAnd() chain.Builder { return &PostgresChain{fragments{op: andOp}} }

// NewPostgresOr returns an empty chain joined with OR.
func NewPostgresOr() chain.Builder { return &PostgresChain{fragments{op: orOp}} }

// QualifiedColumn returns "table"."column" with both parts quoted.
func QualifiedColumn(table, column string) string {
	return pq.QuoteIdentifier(table) + "." + pq.QuoteIdentifier(column)
}

func (c *PostgresChain) SetColumnEquals(table, column string, v chain.ValueFactory) {
	c.push(QualifiedColumn(table, column)+" = "+PlaceholderToken, v)
}

func (c *PostgresChain) SetColumnEqualsAsTime(table, column string, v chain.ValueFactory) {
	c.push(QualifiedColumn(table, column)+" = "+PlaceholderToken, asTime(v))
}

func (c *PostgresChain) SetColumnEqualsAsJSON(table, column string, v chain.ValueFactory) {
	c.push(QualifiedColumn(table, column)+"::jsonb = "+PlaceholderToken+"::jsonb", v)
}

func (c *PostgresChain) SetColumnBetween(table, column string, start, end chain.ValueFactory) {
	c.push(QualifiedColumn(table, column)+" BETWEEN "+PlaceholderToken+" AND "+PlaceholderToken, start, end)
}

func (c *PostgresChain) SetColumnBetweenAsTime(table, column string, start, end chain.ValueFactory) {
	c.SetColumnBetween(table, column, asTime(start), asTime(end))
}

func (c *PostgresChain) SetColumnBefore(table, column string, v chain.ValueFactory) {
	c.push(QualifiedColumn(table, column)+" < "+PlaceholderToken, v)
}

func (c *PostgresChain) SetColumnBeforeAsTime(table, column string, v chain.ValueFactory) {
	c.SetColumnBefore(table, column, asTime(v))
}

func (c *PostgresChain) SetColumnAfter(table, column string, v chain.ValueFactory) {
	c.push(QualifiedColumn(table, column)+" > "+PlaceholderToken, v)
}

func (c *PostgresChain) SetColumnAfterAsTime(table, column string, v chain.ValueFactory) {
	c.SetColumnAfter(table, column, asTime(v))
}

func (c *PostgresChain) SetColumnIsNull(table, column string) {
	c.push(QualifiedColumn(table, column) + " IS NULL")
}

func (c *PostgresChain) SetColumnInList(table, column string, values []chain.ValueFactory) {
	if len(values) == 0 {
		c.push("FALSE")
		return
	}
	c.push(QualifiedColumn(table, column)+" IN ("+repeat(PlaceholderToken, len(values))+")", values...)
}

func (c *PostgresChain) SetColumnInListAsTime(table, column string, values []chain.ValueFactory) {
	c.SetColumnInList(table, column, asTimeAll(values))
}
