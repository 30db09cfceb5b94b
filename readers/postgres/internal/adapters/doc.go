// Package adapters lets the readers oracle run its lookup on pgxpool.Pool, sql.DB or sqlx.DB
// through one DBAdapter interface.
package adapters
