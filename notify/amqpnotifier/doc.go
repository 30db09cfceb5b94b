// Package amqpnotifier publishes reader notifications to a RabbitMQ exchange.
//
// Each notification becomes one persistent JSON message:
//
//	{"message_id":"…","reader_id":"u1","message":"You have borrowed the book: book1","sent_at":"…"}
//
// Dial declares a durable fanout exchange, so any number of queues (mail, push, audit) can be bound to it.
// Publishing is fire-and-forget towards the lending.Manager: failures are logged, never returned.
package amqpnotifier
