// Package store provides the in-memory recipe store and the category index
// derived from it.
//
// Recipes live in an SQLite database opened with ":memory:" on a single
// pooled connection, so the collection exists only for the lifetime of the
// process and is reset to the seed catalog on every restart.
//
// # Invariants
//
//   - Append-only: recipes are inserted, never updated or deleted
//   - Unique ids: id is the primary key; Create assigns MAX(id)+1 (or 1)
//     and inserts inside one transaction under the writer mutex
//   - Insertion order: every query orders by seq ASC, a counter assigned
//     at insert time
//   - Categories are derived on every read, never stored separately
//
// # Database Configuration
//
//   - One open connection: the in-memory database is per connection and
//     must not be closed by the pool
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - category comparisons use COLLATE BINARY (exact, case-sensitive)
package store
