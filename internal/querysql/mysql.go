package querysql

import (
	"strings"

	"github.com/roach88/wherec/internal/chain"
)

// mysqlTimestampFormat mirrors TimestampLayout in MySQL format specifiers.
const mysqlTimestampFormat = "'%Y-%m-%dT%H:%i:%s.%fZ'"

const mysqlStrToDate = "STR_TO_DATE(?, " + mysqlTimestampFormat + ")"

// MySQLChain renders predicates with `??` identifier tokens.
type MySQLChain struct {
	fragments
}

var _ chain.Builder = (*MySQLChain)(nil)

// NewMySQLAnd returns an empty chain joined with AND.
func NewMySQLAnd() chain.Builder { return &MySQLChain{fragments{op: andOp}} }

// NewMySQLOr returns an empty chain joined with OR.
func NewMySQLOr() chain.Builder { return &MySQLChain{fragments{op: orOp}} }

// column pushes "??.?? <rest>" with the identifiers ahead of values.
func (c *MySQLChain) column(table, column, rest string, values ...chain.ValueFactory) {
	factories := append([]chain.ValueFactory{constant(table), constant(column)}, values...)
	c.push("??.?? "+rest, factories...)
}

func (c *MySQLChain) SetColumnEquals(table, column string, v chain.ValueFactory) {
	c.column(table, column, "= ?", v)
}

func (c *MySQLChain) SetColumnEqualsAsTime(table, column string, v chain.ValueFactory) {
	c.column(table, column, "= "+mysqlStrToDate, asTime(v))
}

func (c *MySQLChain) SetColumnEqualsAsJSON(table, column string, v chain.ValueFactory) {
	c.column(table, column, "= CAST(? AS JSON)", v)
}

func (c *MySQLChain) SetColumnBetween(table, column string, start, end chain.ValueFactory) {
	c.column(table, column, "BETWEEN ? AND ?", start, end)
}

func (c *MySQLChain) SetColumnBetweenAsTime(table, column string, start, end chain.ValueFactory) {
	c.column(table, column, "BETWEEN "+mysqlStrToDate+" AND "+mysqlStrToDate, asTime(start), asTime(end))
}

func (c *MySQLChain) SetColumnBefore(table, column string, v chain.ValueFactory) {
	c.column(table, column, "< ?", v)
}

func (c *MySQLChain) SetColumnBeforeAsTime(table, column string, v chain.ValueFactory) {
	c.column(table, column, "< "+mysqlStrToDate, asTime(v))
}

func (c *MySQLChain) SetColumnAfter(table, column string, v chain.ValueFactory) {
	c.column(table, column, "> ?", v)
}

func (c *MySQLChain) SetColumnAfterAsTime(table, column string, v chain.ValueFactory) {
	c.column(table, column, "> "+mysqlStrToDate, asTime(v))
}

func (c *MySQLChain) SetColumnIsNull(table, column string) {
	c.column(table, column, "IS NULL")
}

func (c *MySQLChain) SetColumnInList(table, column string, values []chain.ValueFactory) {
	c.inList(table, column, "?", values)
}

func (c *MySQLChain) SetColumnInListAsTime(table, column string, values []chain.ValueFactory) {
	c.inList(table, column, mysqlStrToDate, asTimeAll(values))
}

func (c *MySQLChain) inList(table, column, placeholder string, values []chain.ValueFactory) {
	if len(values) == 0 {
		c.push("FALSE")
		return
	}
	c.column(table, column, "IN ("+repeat(placeholder, len(values))+")", values...)
}

// repeat joins n copies of placeholder with ", ".
func repeat(placeholder string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = placeholder
	}
	return strings.Join(parts, ", ")
}
