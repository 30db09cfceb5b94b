package lending

import (
	"context"

	"github.com/AntonStoeckl/lending-tracker-go/core"
)

// UserStatusOracle tells whether a reader account is active.
// It has no failure mode: implementations must always give a definite answer.
type UserStatusOracle interface {
	IsUserActive(ctx context.Context, readerID ReaderIDString) bool
}

// Notifier delivers a message to a reader.
// Delivery is fire-and-forget: the Manager neither inspects an outcome nor retries.
type Notifier interface {
	NotifyUser(ctx context.Context, readerID ReaderIDString, message string)
}

// EventRecorder receives one domain event per business outcome of the Manager.
// A failing recorder is logged and otherwise ignored, it never changes an operation's result.
type EventRecorder interface {
	Record(ctx context.Context, event core.DomainEvent) error
}
