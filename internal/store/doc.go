// Package store implements the durable store: an owned, in-memory tree of
// users and studysets guarded by a single mutex and mirrored to a persisted
// JSON snapshot after every mutation.
//
// Persistence is whole-snapshot and synchronous. A failed write is logged and
// never rolls back the in-memory state, which remains the source of truth for
// the running process. The snapshot target is pluggable through Persister;
// FileSnapshot writes a local JSON file atomically, and the postgres package
// provides a single-row JSONB alternative.
package store
