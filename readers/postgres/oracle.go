package postgres

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver "postgres"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
	"github.com/AntonStoeckl/lending-tracker-go/readers/postgres/internal/adapters"
)

const (
	defaultReadersTableName = "readers"
	driverNamePostgres      = "postgres"
	dialectPostgres         = "postgres"
	colReaderID             = "reader_id"
	colActive               = "active"
	logMsgBuildQueryFailed  = "failed to build reader status query"
	logMsgDBQueryFailed     = "reader status query failed"
	logMsgScanRowFailed     = "failed to scan reader status row"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgSQLExecuted       = "executed sql for: reader status"
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrReaderID         = "reader_id"
	logAttrDurationMS       = "duration_ms"
)

var (
	// ErrNilDatabaseConnection is returned when a constructor receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyReadersTableName is returned when WithTableName receives an empty name.
	ErrEmptyReadersTableName = errors.New("readers table name must not be empty")

	// ErrBuildingQueryFailed is logged when goqu cannot render the status query.
	ErrBuildingQueryFailed = errors.New("building reader status query failed")
)

// Oracle answers lending.UserStatusOracle questions from a readers table.
type Oracle struct {
	db               adapters.DBAdapter
	tableName        string
	logger           lending.Logger
	contextualLogger lending.ContextualLogger
}

// NewOracleFromPGXPool creates a new Oracle using a pgx Pool with optional configuration.
func NewOracleFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Oracle, error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newOracle(adapters.NewPGXAdapter(pool), options...)
}

// NewOracleFromSQLDB creates a new Oracle using a sql.DB with optional configuration.
func NewOracleFromSQLDB(db *sql.DB, options ...Option) (*Oracle, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newOracle(adapters.NewSQLAdapter(db), options...)
}

// NewOracleFromSQLX creates a new Oracle using a sqlx.DB with optional configuration.
func NewOracleFromSQLX(db *sqlx.DB, options ...Option) (*Oracle, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newOracle(adapters.NewSQLXAdapter(db), options...)
}

// OpenSQLDB opens a sql.DB for the DSN using the lib/pq driver. The connection is established lazily.
func OpenSQLDB(dsn string) (*sql.DB, error) {
	return sql.Open(driverNamePostgres, dsn)
}

func newOracle(db adapters.DBAdapter, options ...Option) (*Oracle, error) {
	oracle := &Oracle{
		db:        db,
		tableName: defaultReadersTableName,
	}

	for _, option := range options {
		if err := option(oracle); err != nil {
			return nil, err
		}
	}

	return oracle, nil
}

// IsUserActive implements lending.UserStatusOracle.
// Unknown readers and failed lookups answer false.
func (o *Oracle) IsUserActive(ctx context.Context, readerID lending.ReaderIDString) bool {
	sqlQuery, err := o.buildSelectQuery(readerID)
	if err != nil {
		o.logError(ctx, logMsgBuildQueryFailed, logAttrError, err.Error(), logAttrReaderID, readerID)
		return false
	}

	start := time.Now()
	rows, err := o.db.Query(ctx, sqlQuery)
	o.logDebug(ctx, logMsgSQLExecuted, logAttrDurationMS, durationToMilliseconds(time.Since(start)), logAttrQuery, sqlQuery)

	if err != nil {
		o.logError(ctx, logMsgDBQueryFailed, logAttrError, err.Error(), logAttrReaderID, readerID)
		return false
	}
	defer o.closeRows(ctx, rows)

	active := false
	if rows.Next() {
		if scanErr := rows.Scan(&active); scanErr != nil {
			o.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrReaderID, readerID)
			return false
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		o.logError(ctx, logMsgDBQueryFailed, logAttrError, rowsErr.Error(), logAttrReaderID, readerID)
		return false
	}

	return active
}

func (o *Oracle) buildSelectQuery(readerID lending.ReaderIDString) (string, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(o.tableName).
		Select(colActive).
		Where(goqu.C(colReaderID).Eq(readerID)).
		Limit(1).
		ToSQL()

	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (o *Oracle) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if o.contextualLogger != nil {
			o.contextualLogger.WarnContext(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		} else if o.logger != nil {
			o.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (o *Oracle) logDebug(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.DebugContext(ctx, msg, args...)
	} else if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

func (o *Oracle) logError(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if o.logger != nil {
		o.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

var _ lending.UserStatusOracle = (*Oracle)(nil)
