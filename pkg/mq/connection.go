// Package mq carries analysis dispatch events over a RabbitMQ topic
// exchange. Both sides of the wire live here: the API publishes, the worker
// consumes.
package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the single topic exchange all events flow through.
// Routing keys select the consumer, not separate exchanges.
const ExchangeName = "events"

// NewConnection dials the broker.
func NewConnection(url string) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// DeclareExchange declares the shared topic exchange. Declaration is
// idempotent, so publisher and consumer both call this and whichever starts
// first wins.
func DeclareExchange(ch *amqp091.Channel) error {
	return ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	)
}
