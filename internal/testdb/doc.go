// Package testdb provides helpers for tests that need a live PostgreSQL
// database.
//
// Tests call Open to get a migrated connection; Open skips the test when no
// database URL is configured, except in CI where a missing database is a
// failure. WithTx runs a test body inside a transaction that is always rolled
// back, so tests can share one database and run in parallel:
//
//	func TestSnapshot(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewSnapshotStore(tx, "test", nil)
//	        ...
//	    })
//	}
package testdb
