// Package predicate compiles a where.Where into an in-memory record test.
//
// Mode is chosen by the condition kind encountered: a nested And is always
// combined with AND and a nested Or with OR, whatever the enclosing mode.
// All four leaf kinds are supported in both modes. An empty AND group
// matches every record and an empty OR group matches none.
//
// Deferred values are evaluated each time a record is tested.
package predicate

import (
	"github.com/roach88/wherec/internal/where"
)

// Func reports whether record satisfies the compiled expression.
type Func func(record any) bool

// CompileAnd compiles w with its top-level conditions joined by AND.
func CompileAnd(w where.Where) (Func, error) {
	return compileGroup(w, true)
}

// CompileOr compiles w with its top-level conditions joined by OR.
func CompileOr(w where.Where) (Func, error) {
	return compileGroup(w, false)
}

// Filter returns the records fn accepts, in their original order.
func Filter[T any](records []T, fn Func) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if fn(r) {
			out = append(out, r)
		}
	}
	return out
}

func compileGroup(w where.Where, all bool) (Func, error) {
	conds := w.Conditions()
	tests := make([]Func, 0, len(conds))
	for _, c := range conds {
		if c == nil {
			return nil, where.NewUnsupportedConstructError("nil condition")
		}
		comp := &compiler{}
		if err := c.Accept(comp); err != nil {
			return nil, err
		}
		tests = append(tests, comp.out)
	}

	if all {
		return func(record any) bool {
			for _, test := range tests {
				if !test(record) {
					return false
				}
			}
			return true
		}, nil
	}
	return func(record any) bool {
		for _, test := range tests {
			if test(record) {
				return true
			}
		}
		return false
	}, nil
}

// compiler turns one condition into a Func.
type compiler struct {
	out Func
}

var _ where.Visitor = (*compiler)(nil)

func (c *compiler) VisitAnd(cond where.AndCondition) error {
	return c.group("And", cond.Target, true)
}

func (c *compiler) VisitOr(cond where.OrCondition) error {
	return c.group("Or", cond.Target, false)
}

func (c *compiler) group(kind string, target where.ConditionTarget, all bool) error {
	wt, ok := target.(where.WhereConditionTarget)
	if !ok {
		return where.NewUnsupportedConstructError("%s condition requires a nested where, got %T", kind, target)
	}
	fn, err := compileGroup(wt.Where, all)
	if err != nil {
		return err
	}
	c.out = fn
	return nil
}

func (c *compiler) VisitEqual(cond where.EqualCondition) error {
	path, err := propertyPath("Equal", cond.Target)
	if err != nil {
		return err
	}
	value := cond.Value
	c.out = func(record any) bool {
		got, _ := Lookup(record, path)
		return Equal(got, where.Resolve(value))
	}
	return nil
}

func (c *compiler) VisitBetween(cond where.BetweenCondition) error {
	path, err := propertyPath("Between", cond.Target)
	if err != nil {
		return err
	}
	start, end := cond.Start, cond.End
	c.out = func(record any) bool {
		got, ok := Lookup(record, path)
		if !ok {
			return false
		}
		lo, ok := Compare(got, where.Resolve(start))
		if !ok || lo < 0 {
			return false
		}
		hi, ok := Compare(got, where.Resolve(end))
		return ok && hi <= 0
	}
	return nil
}

func (c *compiler) VisitBefore(cond where.BeforeCondition) error {
	path, err := propertyPath("Before", cond.Target)
	if err != nil {
		return err
	}
	c.out = ordered(path, cond.Value, func(n int) bool { return n < 0 })
	return nil
}

func (c *compiler) VisitAfter(cond where.AfterCondition) error {
	path, err := propertyPath("After", cond.Target)
	if err != nil {
		return err
	}
	c.out = ordered(path, cond.Value, func(n int) bool { return n > 0 })
	return nil
}

func ordered(path string, value any, accept func(int) bool) Func {
	return func(record any) bool {
		got, ok := Lookup(record, path)
		if !ok {
			return false
		}
		n, ok := Compare(got, where.Resolve(value))
		return ok && accept(n)
	}
}

func propertyPath(kind string, target where.ConditionTarget) (string, error) {
	pt, ok := target.(where.PropertyNameTarget)
	if !ok {
		return "", where.NewUnsupportedConstructError("%s condition requires a property target, got %T", kind, target)
	}
	if pt.PropertyName == "" {
		return "", where.NewUnsupportedConstructError("%s condition has an empty property name", kind)
	}
	return pt.PropertyName, nil
}
