// Package store runs compiled statements against SQLite.
//
// It is a test and verification harness rather than a persister: one
// connection, no transactions, no retries. Tables are created from entity
// definitions, records are inserted with a generated key, and MySQL-style
// statements from querysql are executed after ExpandIdentifiers.
//
// # MySQL functions
//
// SQLite lacks the MySQL date functions the MySQL chain emits. Every
// connection registers STR_TO_DATE, DATE_FORMAT, TIME_FORMAT, LEFT and
// CONCAT over canonical text timestamps, and CAST(? AS JSON) is rewritten
// to json(?). STR_TO_DATE is as strict as MySQL's: text not in
// querysql.TimestampLayout yields NULL.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
