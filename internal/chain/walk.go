package chain

import (
	"fmt"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/where"
)

// columnClass is how a leaf is dispatched to the builder.
type columnClass int

const (
	classPlain columnClass = iota
	classTemporal
	classJSON
)

// Walk feeds every condition of w, in list order and depth first, into
// builder.
//
// newAnd and newOr create the child builders for nested And and Or
// conditions. temporals overrides or extends the temporal classification
// carried by fields. Timestamp and date columns use the AsTime setters;
// time-of-day columns compare their text as entered and use the plain ones.
//
// A literal nil Equal value becomes SetColumnIsNull. A Deferred value is not
// resolved here, so one that later yields nil binds NULL to `= ?` and matches
// nothing; callers wanting IS NULL pass nil directly.
func Walk(builder Builder, w where.Where, table string, fields []entity.Field, temporals []entity.TemporalProperty, newAnd, newOr Factory) error {
	if builder == nil {
		return fmt.Errorf("walk %s: nil builder", table)
	}
	if newAnd == nil || newOr == nil {
		return fmt.Errorf("walk %s: nil builder factory", table)
	}

	wk := &walker{
		builder:   builder,
		table:     table,
		fields:    fields,
		temporals: temporals,
		newAnd:    newAnd,
		newOr:     newOr,
	}
	return wk.walk(w)
}

// walker implements where.Visitor for one builder. Nested groups get their
// own walker sharing the same metadata.
type walker struct {
	builder   Builder
	table     string
	fields    []entity.Field
	temporals []entity.TemporalProperty
	newAnd    Factory
	newOr     Factory
}

var _ where.Visitor = (*walker)(nil)

func (wk *walker) walk(w where.Where) error {
	for _, c := range w.Conditions() {
		if c == nil {
			return where.NewUnsupportedConstructError("nil condition in %s", wk.table)
		}
		if err := c.Accept(wk); err != nil {
			return err
		}
	}
	return nil
}

func (wk *walker) child(b Builder) *walker {
	return &walker{
		builder:   b,
		table:     wk.table,
		fields:    wk.fields,
		temporals: wk.temporals,
		newAnd:    wk.newAnd,
		newOr:     wk.newOr,
	}
}

func (wk *walker) VisitAnd(c where.AndCondition) error {
	return wk.group("And", c.Target, wk.newAnd)
}

func (wk *walker) VisitOr(c where.OrCondition) error {
	return wk.group("Or", c.Target, wk.newOr)
}

func (wk *walker) group(kind string, target where.ConditionTarget, factory Factory) error {
	wt, ok := target.(where.WhereConditionTarget)
	if !ok {
		return where.NewUnsupportedConstructError("%s condition requires a nested where, got %s", kind, targetName(target))
	}

	b := factory()
	if b == nil {
		return fmt.Errorf("walk %s: %s factory returned nil builder", wk.table, kind)
	}
	if err := wk.child(b).walk(wt.Where); err != nil {
		return err
	}
	wk.builder.MergeFrom(b)
	return nil
}

func (wk *walker) VisitEqual(c where.EqualCondition) error {
	column, class, err := wk.resolve("Equal", c.Target)
	if err != nil {
		return err
	}

	// `= NULL` never matches; a literal nil means IS NULL.
	if c.Value == nil {
		wk.builder.SetColumnIsNull(wk.table, column)
		return nil
	}

	v := factoryOf(c.Value)
	switch class {
	case classTemporal:
		wk.builder.SetColumnEqualsAsTime(wk.table, column, v)
	case classJSON:
		wk.builder.SetColumnEqualsAsJSON(wk.table, column, v)
	default:
		wk.builder.SetColumnEquals(wk.table, column, v)
	}
	return nil
}

func (wk *walker) VisitBetween(c where.BetweenCondition) error {
	column, class, err := wk.resolveOrdered("Between", c.Target)
	if err != nil {
		return err
	}

	start, end := factoryOf(c.Start), factoryOf(c.End)
	if class == classTemporal {
		wk.builder.SetColumnBetweenAsTime(wk.table, column, start, end)
	} else {
		wk.builder.SetColumnBetween(wk.table, column, start, end)
	}
	return nil
}

func (wk *walker) VisitBefore(c where.BeforeCondition) error {
	column, class, err := wk.resolveOrdered("Before", c.Target)
	if err != nil {
		return err
	}

	v := factoryOf(c.Value)
	if class == classTemporal {
		wk.builder.SetColumnBeforeAsTime(wk.table, column, v)
	} else {
		wk.builder.SetColumnBefore(wk.table, column, v)
	}
	return nil
}

func (wk *walker) VisitAfter(c where.AfterCondition) error {
	column, class, err := wk.resolveOrdered("After", c.Target)
	if err != nil {
		return err
	}

	v := factoryOf(c.Value)
	if class == classTemporal {
		wk.builder.SetColumnAfterAsTime(wk.table, column, v)
	} else {
		wk.builder.SetColumnAfter(wk.table, column, v)
	}
	return nil
}

// resolve maps a leaf target to its column and classification.
func (wk *walker) resolve(kind string, target where.ConditionTarget) (string, columnClass, error) {
	pt, ok := target.(where.PropertyNameTarget)
	if !ok {
		return "", classPlain, where.NewUnsupportedConstructError("%s condition requires a property target, got %s", kind, targetName(target))
	}

	field, ok := entity.FindByProperty(wk.fields, pt.PropertyName)
	if !ok || field.FieldType.IsRelation() || field.ColumnName == "" {
		return "", classPlain, where.NewColumnResolutionError(pt.PropertyName, wk.table)
	}

	class := classPlain
	if k, ok := entity.KindOf(field, wk.temporals); ok && (k == entity.KindTimestamp || k == entity.KindDate) {
		class = classTemporal
	} else if entity.IsJSON(field) {
		class = classJSON
	}
	return field.ColumnName, class, nil
}

// resolveOrdered is resolve for range comparisons, which JSON columns do
// not support.
func (wk *walker) resolveOrdered(kind string, target where.ConditionTarget) (string, columnClass, error) {
	column, class, err := wk.resolve(kind, target)
	if err != nil {
		return "", classPlain, err
	}
	if class == classJSON {
		pt := target.(where.PropertyNameTarget)
		return "", classPlain, &where.Error{
			Code:     where.ErrCodeUnsupportedConstruct,
			Message:  fmt.Sprintf("%s is not supported on a json column", kind),
			Property: pt.PropertyName,
			Table:    wk.table,
		}
	}
	return column, class, nil
}

// factoryOf defers v until render time.
func factoryOf(v any) ValueFactory {
	return func() any { return where.Resolve(v) }
}

func targetName(t where.ConditionTarget) string {
	switch t.(type) {
	case nil:
		return "no target"
	case where.PropertyNameTarget:
		return "property target"
	case where.WhereConditionTarget:
		return "where target"
	default:
		return fmt.Sprintf("%T", t)
	}
}
