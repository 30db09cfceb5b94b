// Package postgres provides a lending.UserStatusOracle backed by a PostgreSQL readers table.
//
// The table is expected to look like this:
//
//	CREATE TABLE readers (
//	    reader_id TEXT PRIMARY KEY,
//	    active    BOOLEAN NOT NULL DEFAULT FALSE
//	);
//
// The oracle can be created from a pgxpool.Pool, a sql.DB or a sqlx.DB. OpenSQLDB opens a sql.DB
// with the lib/pq driver for callers that only have a DSN.
//
// A lookup has no failure mode towards the lending.Manager: query errors are logged and answer "not active".
package postgres
