package postgres

import (
	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// Option defines a functional option for configuring an Oracle.
type Option func(*Oracle) error

// WithTableName sets the readers table name.
func WithTableName(tableName string) Option {
	return func(o *Oracle) error {
		if tableName == "" {
			return ErrEmptyReadersTableName
		}

		o.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Oracle.
// Debug level receives the executed SQL with timing, Warn level row cleanup issues, Error level failed lookups.
func WithLogger(logger lending.Logger) Option {
	return func(o *Oracle) error {
		o.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Oracle. It takes precedence over the Logger.
func WithContextualLogger(logger lending.ContextualLogger) Option {
	return func(o *Oracle) error {
		o.contextualLogger = logger
		return nil
	}
}
