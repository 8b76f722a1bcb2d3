package where

import (
	"fmt"
	"strings"
	"time"
)

// Where is an immutable ordered list of conditions.
//
// The zero value is the empty Where. List order is the textual and
// evaluation order; it does not change the logical meaning.
type Where struct {
	conditions []Condition
}

// New creates a Where holding conds in order. The slice is copied.
func New(conds ...Condition) Where {
	if len(conds) == 0 {
		return Where{}
	}
	copied := make([]Condition, len(conds))
	copy(copied, conds)
	return Where{conditions: copied}
}

// Conditions returns a copy of the condition list in construction order.
func (w Where) Conditions() []Condition {
	out := make([]Condition, len(w.conditions))
	copy(out, w.conditions)
	return out
}

// Len returns the number of top-level conditions.
func (w Where) Len() int {
	return len(w.conditions)
}

// IsEmpty reports whether w has no conditions.
func (w Where) IsEmpty() bool {
	return len(w.conditions) == 0
}

// NewAnd wraps w in an AndCondition.
func NewAnd(w Where) AndCondition {
	return AndCondition{Target: WhereConditionTarget{Where: w}}
}

// NewOr wraps w in an OrCondition.
func NewOr(w Where) OrCondition {
	return OrCondition{Target: WhereConditionTarget{Where: w}}
}

// PropertyEquals returns a Where with one Equal condition on property.
func PropertyEquals(property string, value any) Where {
	return New(EqualCondition{Target: PropertyNameTarget{PropertyName: property}, Value: value})
}

// PropertyBetween returns a Where with one inclusive Between condition.
func PropertyBetween(property string, start, end any) Where {
	return New(BetweenCondition{Target: PropertyNameTarget{PropertyName: property}, Start: start, End: end})
}

// PropertyBefore returns a Where with one strict less-than condition.
func PropertyBefore(property string, value any) Where {
	return New(BeforeCondition{Target: PropertyNameTarget{PropertyName: property}, Value: value})
}

// PropertyAfter returns a Where with one strict greater-than condition.
func PropertyAfter(property string, value any) Where {
	return New(AfterCondition{Target: PropertyNameTarget{PropertyName: property}, Value: value})
}

// PropertyListEquals returns a Where with one Or of Equal conditions, one
// per value, all on property. An empty values list is a domain error.
func PropertyListEquals(property string, values []any) (Where, error) {
	if len(values) == 0 {
		return Where{}, NewDomainValidationError("property list for %q must contain at least one value", property)
	}
	target := PropertyNameTarget{PropertyName: property}
	leaves := make([]Condition, 0, len(values))
	for _, v := range values {
		leaves = append(leaves, EqualCondition{Target: target, Value: v})
	}
	return New(NewOr(New(leaves...))), nil
}

// And concatenates the condition lists of a and b. It never wraps.
func And(a, b Where) Where {
	out := make([]Condition, 0, len(a.conditions)+len(b.conditions))
	out = append(out, a.conditions...)
	out = append(out, b.conditions...)
	return Where{conditions: out}
}

// Or returns a Where holding exactly one OrCondition over a and b.
//
// Each side contributes its single condition verbatim when it has exactly
// one, otherwise an AndCondition wrapping the whole side. Either side being
// empty is a domain error.
func Or(a, b Where) (Where, error) {
	if a.IsEmpty() {
		return Where{}, NewDomainValidationError("left side of or() has no conditions")
	}
	if b.IsEmpty() {
		return Where{}, NewDomainValidationError("right side of or() has no conditions")
	}
	return New(NewOr(New(orOperand(a), orOperand(b)))), nil
}

func orOperand(w Where) Condition {
	if len(w.conditions) == 1 {
		return w.conditions[0]
	}
	return NewAnd(w)
}

// And is the method form of the package-level And.
func (w Where) And(other Where) Where {
	return And(w, other)
}

// Or is the method form of the package-level Or; both produce identical
// results.
func (w Where) Or(other Where) (Where, error) {
	return Or(w, other)
}

// String renders w in a readable infix form, e.g.
// `city = "A" AND (age < 3 OR age > 9)`.
func (w Where) String() string {
	parts := make([]string, 0, len(w.conditions))
	for _, c := range w.conditions {
		parts = append(parts, describe(c))
	}
	return strings.Join(parts, " AND ")
}

func describe(c Condition) string {
	switch cond := c.(type) {
	case EqualCondition:
		return fmt.Sprintf("%s = %s", targetLabel(cond.Target), FormatValue(cond.Value))
	case BetweenCondition:
		return fmt.Sprintf("%s BETWEEN %s AND %s", targetLabel(cond.Target), FormatValue(cond.Start), FormatValue(cond.End))
	case BeforeCondition:
		return fmt.Sprintf("%s < %s", targetLabel(cond.Target), FormatValue(cond.Value))
	case AfterCondition:
		return fmt.Sprintf("%s > %s", targetLabel(cond.Target), FormatValue(cond.Value))
	case AndCondition:
		return describeGroup(cond.Target, " AND ")
	case OrCondition:
		return describeGroup(cond.Target, " OR ")
	default:
		return fmt.Sprintf("<%T>", c)
	}
}

func describeGroup(target ConditionTarget, sep string) string {
	wt, ok := target.(WhereConditionTarget)
	if !ok {
		return "(" + targetLabel(target) + ")"
	}
	parts := make([]string, 0, wt.Where.Len())
	for _, c := range wt.Where.conditions {
		parts = append(parts, describe(c))
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func targetLabel(t ConditionTarget) string {
	switch target := t.(type) {
	case PropertyNameTarget:
		return target.PropertyName
	case WhereConditionTarget:
		return "(" + target.Where.String() + ")"
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

// FormatValue renders a condition value for display. Deferred values are
// not evaluated.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case Deferred, func() any:
		return "<deferred>"
	case string:
		return fmt.Sprintf("%q", val)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}
