// Package postgres provides a PostgreSQL-backed store.Persister. The whole
// store snapshot is kept as a single JSONB row, upserted on every save, so
// the service can run on hosts without durable local disk.
//
// Schema changes ship as embedded goose migrations; see Migrate.
package postgres
