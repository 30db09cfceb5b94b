package notify

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

const (
	logMsgNotification = "reader notified"
	logAttrReaderID    = "reader_id"
	logAttrMessage     = "message"
)

// ErrNilLogger is returned when a LogNotifier should be created without a logger.
var ErrNilLogger = errors.New("logger must not be nil")

// LogNotifier delivers notifications by logging them at info level.
type LogNotifier struct {
	logger lending.ContextualLogger
}

// NewLogNotifier creates a LogNotifier. *slog.Logger satisfies lending.ContextualLogger.
func NewLogNotifier(logger lending.ContextualLogger) (*LogNotifier, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &LogNotifier{logger: logger}, nil
}

// NotifyUser implements lending.Notifier.
func (n *LogNotifier) NotifyUser(ctx context.Context, readerID lending.ReaderIDString, message string) {
	n.logger.InfoContext(ctx, logMsgNotification, logAttrReaderID, readerID, logAttrMessage, message)
}

var _ lending.Notifier = (*LogNotifier)(nil)
