// Package entity describes the entity metadata consumed by the compilers and
// classifies columns by their effective SQL type.
//
// Field and TemporalProperty records come from an external metadata
// provider; this package only reads them. Definition bundles them with a
// table name and can be loaded from CUE, YAML or JSON files.
//
// CLASSIFICATION:
//
// KindOf decides, in priority order, how a column is read and compared:
//
//  1. Relation fields (joined entity, one-to-many, many-to-one) are skipped.
//  2. BIGINT (field type or column definition) is read as text.
//  3. date-time, an explicit TIMESTAMP temporal property, or a
//     timestamp-family column definition is a timestamp.
//  4. The same pattern for TIME, then DATE.
//  5. Anything else is read as itself.
//
// Classify (projection) and the tree walker (filtering) both use KindOf, so
// the read path and the filter path always agree on a column's type.
package entity
