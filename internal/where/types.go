package where

// Condition is one node of the AST.
//
// This is a sealed interface - only types in this package implement it.
// Use Accept with a Visitor to dispatch on the concrete variant.
type Condition interface {
	conditionTarget() ConditionTarget

	// Accept calls the Visitor method matching the concrete variant.
	Accept(v Visitor) error
}

// ConditionTarget is what a condition refers to.
//
// Sealed: PropertyNameTarget for leaf conditions, WhereConditionTarget for
// And/Or.
type ConditionTarget interface {
	targetNode()
}

// Visitor receives one call per condition variant.
//
// Implementations must handle every variant; a new variant is a new method
// here, which breaks every incomplete implementation at compile time.
type Visitor interface {
	VisitEqual(c EqualCondition) error
	VisitBetween(c BetweenCondition) error
	VisitBefore(c BeforeCondition) error
	VisitAfter(c AfterCondition) error
	VisitAnd(c AndCondition) error
	VisitOr(c OrCondition) error
}

// PropertyNameTarget refers to an entity property, resolved to a column by
// the SQL compilers and to a (possibly dotted) path by the predicate compiler.
type PropertyNameTarget struct {
	PropertyName string
}

func (PropertyNameTarget) targetNode() {}

// WhereConditionTarget refers to a nested expression. Only And and Or use it.
type WhereConditionTarget struct {
	Where Where
}

func (WhereConditionTarget) targetNode() {}

// EqualCondition matches when the target equals Value.
type EqualCondition struct {
	Target ConditionTarget
	Value  any
}

func (c EqualCondition) conditionTarget() ConditionTarget { return c.Target }

// Accept implements Condition.
func (c EqualCondition) Accept(v Visitor) error { return v.VisitEqual(c) }

// BetweenCondition matches when Start <= target <= End.
type BetweenCondition struct {
	Target ConditionTarget
	Start  any
	End    any
}

func (c BetweenCondition) conditionTarget() ConditionTarget { return c.Target }

// Accept implements Condition.
func (c BetweenCondition) Accept(v Visitor) error { return v.VisitBetween(c) }

// BeforeCondition matches when target < Value.
type BeforeCondition struct {
	Target ConditionTarget
	Value  any
}

func (c BeforeCondition) conditionTarget() ConditionTarget { return c.Target }

// Accept implements Condition.
func (c BeforeCondition) Accept(v Visitor) error { return v.VisitBefore(c) }

// AfterCondition matches when target > Value.
type AfterCondition struct {
	Target ConditionTarget
	Value  any
}

func (c AfterCondition) conditionTarget() ConditionTarget { return c.Target }

// Accept implements Condition.
func (c AfterCondition) Accept(v Visitor) error { return v.VisitAfter(c) }

// AndCondition matches when every condition of the nested Where matches.
type AndCondition struct {
	Target ConditionTarget
}

func (c AndCondition) conditionTarget() ConditionTarget { return c.Target }

// Accept implements Condition.
func (c AndCondition) Accept(v Visitor) error { return v.VisitAnd(c) }

// OrCondition matches when any condition of the nested Where matches.
type OrCondition struct {
	Target ConditionTarget
}

func (c OrCondition) conditionTarget() ConditionTarget { return c.Target }

// Accept implements Condition.
func (c OrCondition) Accept(v Visitor) error { return v.VisitOr(c) }

// TargetOf returns the target of any condition.
func TargetOf(c Condition) ConditionTarget {
	if c == nil {
		return nil
	}
	return c.conditionTarget()
}

// Deferred is a value computed when the query is rendered or a record is
// tested, not when the Where is built.
type Deferred func() any

// Resolve evaluates v if it is a Deferred (or a bare func() any) and
// returns it unchanged otherwise.
func Resolve(v any) any {
	switch d := v.(type) {
	case Deferred:
		if d == nil {
			return nil
		}
		return d()
	case func() any:
		if d == nil {
			return nil
		}
		return d()
	default:
		return v
	}
}
