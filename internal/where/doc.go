// Package where provides the condition AST shared by every filter compiler.
//
// A Where is an immutable, ordered list of Conditions. Leaf conditions
// (Equal, Between, Before, After) refer to an entity property through a
// PropertyNameTarget; composite conditions (And, Or) wrap a nested Where
// through a WhereConditionTarget. Nesting depth is unbounded.
//
// ALGEBRA:
//
// Where values are built with the Property* constructors and combined with
// And and Or. Every operation returns a new Where; nothing is mutated after
// construction.
//
//	city := where.PropertyEquals("city", "Helsinki")
//	age := where.PropertyBetween("age", 18, 65)
//	both := city.And(age)          // two conditions, no wrapping
//	either, err := city.Or(age)    // one Or wrapping two conditions
//
// And is list conjunction: the result is the concatenation of both condition
// lists. Or always yields exactly one OrCondition whose nested Where holds one
// element per side: the side's single condition verbatim, or an AndCondition
// wrapping the side when it had more than one.
//
// SEALED VARIANTS:
//
// Condition and ConditionTarget are sealed with unexported marker methods.
// Compilers dispatch conditions through Visitor, which has one method per
// variant. Adding a variant means adding a Visitor method, so every compiler
// that forgets the new case stops compiling.
//
// DEFERRED VALUES:
//
// A condition value may be a Deferred. Compilers call Resolve when the final
// query is rendered or a record is tested, never while the Where is built.
// Callers must not mutate the state a Deferred captures between building a
// query and rendering it.
package where
