package notify

import (
	"context"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// FanOut delivers every notification to all of its notifiers, in the order given. Nil notifiers are skipped.
type FanOut struct {
	notifiers []lending.Notifier
}

// NewFanOut creates a FanOut over the given notifiers.
func NewFanOut(notifiers ...lending.Notifier) FanOut {
	nonNil := make([]lending.Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			nonNil = append(nonNil, notifier)
		}
	}

	return FanOut{notifiers: nonNil}
}

// NotifyUser implements lending.Notifier.
func (f FanOut) NotifyUser(ctx context.Context, readerID lending.ReaderIDString, message string) {
	for _, notifier := range f.notifiers {
		notifier.NotifyUser(ctx, readerID, message)
	}
}

var _ lending.Notifier = FanOut{}
