package amqpnotifier

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// ErrNonPositivePublishTimeout is returned when WithPublishTimeout receives a zero or negative timeout.
var ErrNonPositivePublishTimeout = errors.New("publish timeout must be positive")

// Option defines a functional option for configuring a Notifier.
type Option func(*Notifier) error

// WithRoutingKey sets the routing key. Fanout exchanges ignore it, other exchange kinds route by it.
func WithRoutingKey(routingKey string) Option {
	return func(n *Notifier) error {
		n.routingKey = routingKey
		return nil
	}
}

// WithPublishTimeout bounds how long a single publish may block.
func WithPublishTimeout(timeout time.Duration) Option {
	return func(n *Notifier) error {
		if timeout <= 0 {
			return ErrNonPositivePublishTimeout
		}

		n.publishTimeout = timeout

		return nil
	}
}

// WithClock sets the time source for the sent_at field.
func WithClock(clock func() time.Time) Option {
	return func(n *Notifier) error {
		if clock == nil {
			return lending.ErrNilClock
		}

		n.clock = clock

		return nil
	}
}

// WithLogger sets the logger. Error level receives failed publishes, Debug level successful ones.
func WithLogger(logger lending.Logger) Option {
	return func(n *Notifier) error {
		n.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger. It takes precedence over the Logger.
func WithContextualLogger(logger lending.ContextualLogger) Option {
	return func(n *Notifier) error {
		n.contextualLogger = logger
		return nil
	}
}
