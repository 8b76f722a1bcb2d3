package querysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/where"
)

// Statement is a complete, finalized SQL statement and its parameters.
type Statement struct {
	SQL    string
	Values []any
}

// Select assembles a SELECT over one entity table.
//
// Every non-relation field is projected under its property name, with
// temporal columns formatted as text and bigint columns cast to text.
// The statement always ends in ORDER BY: OrderBy names properties, and
// when empty every projected column is used in field order.
type Select struct {
	Dialect  Dialect
	Table    string
	Fields   []entity.Field
	Temporal []entity.TemporalProperty
	Where    where.Where
	OrderBy  []string
	Limit    int
}

// Build renders the statement. Value factories are evaluated here.
func (s Select) Build() (Statement, error) {
	if err := s.Dialect.Validate(); err != nil {
		return Statement{}, err
	}
	if s.Table == "" {
		return Statement{}, fmt.Errorf("select: table is required")
	}
	if s.Limit < 0 {
		return Statement{}, fmt.Errorf("select %s: negative limit %d", s.Table, s.Limit)
	}

	proj := &projection{dialect: s.Dialect}
	entity.Classify(s.Table, s.Fields, s.Temporal, proj)
	if len(proj.columns) == 0 {
		return Statement{}, fmt.Errorf("select %s: no selectable columns", s.Table)
	}

	var b strings.Builder
	values := proj.values

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(proj.columns, ", "))

	from, fromValues := s.Dialect.identifier(s.Table)
	b.WriteString(" FROM ")
	b.WriteString(from)
	values = append(values, fromValues...)

	whereValues, err := writeWhere(&b, s.Dialect, s.Where, s.Table, s.Fields, s.Temporal)
	if err != nil {
		return Statement{}, err
	}
	values = append(values, whereValues...)

	orderValues, err := s.writeOrderBy(&b, proj.order)
	if err != nil {
		return Statement{}, err
	}
	values = append(values, orderValues...)

	if s.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.Limit))
	}

	return Statement{SQL: s.Dialect.Finalize(b.String()), Values: values}, nil
}

func (s Select) writeOrderBy(b *strings.Builder, defaults []string) ([]any, error) {
	columns := defaults
	if len(s.OrderBy) > 0 {
		columns = make([]string, 0, len(s.OrderBy))
		for _, property := range s.OrderBy {
			f, ok := entity.FindByProperty(s.Fields, property)
			if !ok || f.FieldType.IsRelation() || f.ColumnName == "" {
				return nil, where.NewColumnResolutionError(property, s.Table)
			}
			columns = append(columns, f.ColumnName)
		}
	}

	var values []any
	parts := make([]string, len(columns))
	for i, column := range columns {
		text, vs := s.Dialect.qualified(s.Table, column)
		parts[i] = text
		values = append(values, vs...)
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(parts, ", "))
	return values, nil
}

// Delete assembles a DELETE over one entity table. An empty Where is
// rejected.
type Delete struct {
	Dialect  Dialect
	Table    string
	Fields   []entity.Field
	Temporal []entity.TemporalProperty
	Where    where.Where
}

// Build renders the statement. Value factories are evaluated here.
func (d Delete) Build() (Statement, error) {
	if err := d.Dialect.Validate(); err != nil {
		return Statement{}, err
	}
	if d.Table == "" {
		return Statement{}, fmt.Errorf("delete: table is required")
	}
	if d.Where.IsEmpty() {
		return Statement{}, fmt.Errorf("delete %s: refusing to delete without a where clause", d.Table)
	}

	var b strings.Builder
	table, values := d.Dialect.identifier(d.Table)
	b.WriteString("DELETE FROM ")
	b.WriteString(table)

	whereValues, err := writeWhere(&b, d.Dialect, d.Where, d.Table, d.Fields, d.Temporal)
	if err != nil {
		return Statement{}, err
	}
	values = append(values, whereValues...)

	return Statement{SQL: d.Dialect.Finalize(b.String()), Values: values}, nil
}

func writeWhere(b *strings.Builder, d Dialect, w where.Where, table string, fields []entity.Field, temporals []entity.TemporalProperty) ([]any, error) {
	q, err := Compile(d, w, table, fields, temporals)
	if err != nil {
		return nil, err
	}
	text := q.BuildQueryString()
	if text == "" {
		return nil, nil
	}
	b.WriteString(" WHERE ")
	b.WriteString(text)
	return q.BuildQueryValues(), nil
}

// projection is an entity.Sink rendering the SELECT column list.
type projection struct {
	dialect Dialect
	columns []string
	values  []any
	order   []string
}

var _ entity.Sink = (*projection)(nil)

const (
	mysqlTimeFormat = "'%H:%i:%s'"
	mysqlDateFormat = "'%Y-%m-%d'"
	pgTimestamp     = `'YYYY-MM-DD"T"HH24:MI:SS.MS"Z"'`
	pgDate          = "'YYYY-MM-DD'"

	// %f prints microseconds; LEFT keeps the milliseconds of TimestampLayout.
	mysqlTimestamp = "CONCAT(LEFT(DATE_FORMAT({col}, '%Y-%m-%dT%H:%i:%s.%f'), 23), 'Z')"

	// colMarker stands for the qualified column in projection expressions.
	colMarker = "{col}"
)

func (p *projection) add(table string, f entity.Field, mysqlExpr, pgExpr string) {
	col, vs := p.dialect.qualified(table, f.ColumnName)
	alias, avs := p.dialect.identifier(f.PropertyName)

	expr := mysqlExpr
	if p.dialect == Postgres {
		expr = pgExpr
	}
	p.columns = append(p.columns, strings.Replace(expr, colMarker, col, 1)+" AS "+alias)
	p.values = append(p.values, vs...)
	p.values = append(p.values, avs...)
	p.order = append(p.order, f.ColumnName)
}

func (p *projection) AsTimestamp(table string, f entity.Field) {
	p.add(table, f,
		mysqlTimestamp,
		"to_char({col} AT TIME ZONE 'UTC', "+pgTimestamp+")")
}

func (p *projection) AsTime(table string, f entity.Field) {
	p.add(table, f, "TIME_FORMAT({col}, "+mysqlTimeFormat+")", "{col}::text")
}

func (p *projection) AsDate(table string, f entity.Field) {
	p.add(table, f, "DATE_FORMAT({col}, "+mysqlDateFormat+")", "to_char({col}, "+pgDate+")")
}

func (p *projection) AsText(table string, f entity.Field) {
	p.add(table, f, "CAST({col} AS CHAR)", "{col}::text")
}

func (p *projection) AsSelf(table string, f entity.Field) {
	p.add(table, f, "{col}", "{col}")
}
