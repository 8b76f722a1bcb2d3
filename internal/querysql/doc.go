// Package querysql renders where.Where expressions as parameterized SQL.
//
// Two dialects implement chain.Builder:
//
//   - MySQL chains emit identifiers as `??` tokens and push the table and
//     column names into the value list ahead of the bound values. The
//     statement text is completed by the driver, or by ExpandIdentifiers.
//   - Postgres chains quote identifiers into the text and emit every value
//     as PlaceholderToken. FinalizePlaceholders numbers the tokens once the
//     whole statement has been concatenated.
//
// Values are never interpolated into the text. Every SELECT built by this
// package carries an ORDER BY so results are deterministic.
package querysql
