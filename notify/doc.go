// Package notify provides lending.Notifier implementations.
//
// LogNotifier writes every notification to a structured logger, FanOut delivers one notification
// to several notifiers in order. The amqpnotifier subpackage publishes notifications to RabbitMQ.
package notify
