// Package chain drives dialect chain builders from a where.Where.
//
// The walker knows nothing about SQL. It resolves each property to a column,
// classifies the column as temporal, JSON or plain, and calls the matching
// Builder setter. Nested And/Or conditions get a fresh child builder from the
// supplied factories, which is merged back into the parent once complete.
package chain

// ValueFactory returns a bound parameter value. Factories run when a query is
// rendered, never when it is built.
type ValueFactory func() any

// Query is the rendered output of a chain.
type Query interface {
	// BuildQueryString renders the chain as one parenthesized fragment, or
	// "" when the chain is empty.
	BuildQueryString() string

	// BuildQueryValues evaluates every value factory, in placeholder order.
	BuildQueryValues() []any

	// QueryValueFactories returns the unevaluated factories, in placeholder
	// order.
	QueryValueFactories() []ValueFactory
}

// Builder accumulates column predicates for one AND or OR group.
type Builder interface {
	Query

	SetColumnEquals(table, column string, value ValueFactory)
	SetColumnEqualsAsTime(table, column string, value ValueFactory)
	SetColumnEqualsAsJSON(table, column string, value ValueFactory)

	SetColumnBetween(table, column string, start, end ValueFactory)
	SetColumnBetweenAsTime(table, column string, start, end ValueFactory)

	SetColumnBefore(table, column string, value ValueFactory)
	SetColumnBeforeAsTime(table, column string, value ValueFactory)

	SetColumnAfter(table, column string, value ValueFactory)
	SetColumnAfterAsTime(table, column string, value ValueFactory)

	SetColumnIsNull(table, column string)

	SetColumnInList(table, column string, values []ValueFactory)
	SetColumnInListAsTime(table, column string, values []ValueFactory)

	// MergeFrom appends child's rendered text as a single fragment, followed
	// by its value factories. An empty child is ignored.
	MergeFrom(child Query)
}

// Factory creates an empty child builder for a nested group.
type Factory func() Builder
