package amqpnotifier

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rabbitmq/amqp091-go"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

const (
	exchangeKindFanout    = "fanout"
	contentTypeJSON       = "application/json"
	logMsgPublishFailed   = "failed to publish reader notification"
	logMsgMarshalFailed   = "failed to marshal reader notification"
	logMsgPublished       = "reader notification published"
	logAttrError          = "error"
	logAttrReaderID       = "reader_id"
	logAttrExchange       = "exchange"
	logAttrMessageID      = "message_id"
	defaultPublishTimeout = 5 * time.Second
)

var (
	// ErrNilPublisher is returned when a Notifier should be created without a publisher.
	ErrNilPublisher = errors.New("publisher must not be nil")

	// ErrEmptyExchangeName is returned when no exchange name is given.
	ErrEmptyExchangeName = errors.New("exchange name must not be empty")

	// ErrConnectingFailed is returned by Dial when the broker cannot be reached or set up.
	ErrConnectingFailed = errors.New("connecting to the message broker failed")
)

// Publisher is the part of *amqp091.Channel the Notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Notification is the JSON body of a published message.
type Notification struct {
	MessageID string    `json:"message_id"`
	ReaderID  string    `json:"reader_id"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

// Notifier implements lending.Notifier by publishing to an AMQP exchange.
type Notifier struct {
	publisher        Publisher
	exchange         string
	routingKey       string
	publishTimeout   time.Duration
	clock            func() time.Time
	logger           lending.Logger
	contextualLogger lending.ContextualLogger
	connection       *amqp091.Connection
	channel          *amqp091.Channel
}

// New creates a Notifier publishing through the given publisher, usually an *amqp091.Channel.
func New(publisher Publisher, exchange string, options ...Option) (*Notifier, error) {
	if publisher == nil {
		return nil, ErrNilPublisher
	}

	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	notifier := &Notifier{
		publisher:      publisher,
		exchange:       exchange,
		publishTimeout: defaultPublishTimeout,
		clock:          time.Now,
	}

	for _, option := range options {
		if err := option(notifier); err != nil {
			return nil, err
		}
	}

	return notifier, nil
}

// Dial connects to the broker, opens a channel and declares a durable fanout exchange.
// The returned Notifier owns the connection, release it with Close.
func Dial(url string, exchange string, options ...Option) (*Notifier, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	connection, err := amqp091.Dial(url)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		exchangeKindFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = connection.Close()
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	notifier, err := New(channel, exchange, options...)
	if err != nil {
		_ = channel.Close()
		_ = connection.Close()
		return nil, err
	}

	notifier.connection = connection
	notifier.channel = channel

	return notifier, nil
}

// NotifyUser implements lending.Notifier.
func (n *Notifier) NotifyUser(ctx context.Context, readerID lending.ReaderIDString, message string) {
	sentAt := n.clock().UTC()

	notification := Notification{
		MessageID: uuid.New().String(),
		ReaderID:  readerID,
		Message:   message,
		SentAt:    sentAt,
	}

	body, err := jsoniter.ConfigFastest.Marshal(notification)
	if err != nil {
		n.logError(ctx, logMsgMarshalFailed, logAttrError, err.Error(), logAttrReaderID, readerID)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, n.publishTimeout)
	defer cancel()

	err = n.publisher.PublishWithContext(
		publishCtx,
		n.exchange,
		n.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  contentTypeJSON,
			DeliveryMode: amqp091.Persistent,
			MessageId:    notification.MessageID,
			Timestamp:    sentAt,
			Body:         body,
		},
	)

	if err != nil {
		n.logError(ctx, logMsgPublishFailed, logAttrError, err.Error(), logAttrReaderID, readerID, logAttrExchange, n.exchange)
		return
	}

	n.logDebug(ctx, logMsgPublished, logAttrMessageID, notification.MessageID, logAttrReaderID, readerID)
}

// Close closes the channel and connection opened by Dial. It is a no-op for Notifiers created with New.
func (n *Notifier) Close() error {
	var err error

	if n.channel != nil {
		err = errors.Join(err, n.channel.Close())
	}

	if n.connection != nil {
		err = errors.Join(err, n.connection.Close())
	}

	return err
}

func (n *Notifier) logDebug(ctx context.Context, msg string, args ...any) {
	if n.contextualLogger != nil {
		n.contextualLogger.DebugContext(ctx, msg, args...)
	} else if n.logger != nil {
		n.logger.Debug(msg, args...)
	}
}

func (n *Notifier) logError(ctx context.Context, msg string, args ...any) {
	if n.contextualLogger != nil {
		n.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if n.logger != nil {
		n.logger.Error(msg, args...)
	}
}

var _ lending.Notifier = (*Notifier)(nil)
