// Package repositories implements SQLite persistence for resolved catalog queries.
//
// The [ResolutionRepository] handles CRUD operations with atomic sequence generation for human-readable ordering.
// It supports soft deletes via deleted_at timestamps and excludes deleted records from queries by default.
//
// [ResolutionCacheAdapter] bridges the repository to the build engine's cache
// interface, so repeated runs against the same chart can skip catalog searches
// already resolved on a previous run.
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
