// Package notify delivers wallet events to the account holder's channels.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Event types published by the wallet.
const (
	EventOTPIssued        = "otp.issued"
	EventTransferSettled  = "transfer.settled"
	EventTransferReverted = "transfer.reverted"
	EventTransferReceived = "transfer.received"
	EventRequestReceived  = "transaction_request.received"
	EventQuoteReceived    = "quote.received"
	EventRequestRejected  = "transaction_request.rejected"
)

// Event is the message body published for every notification.
type Event struct {
	AccountID  int64     `json:"accountId"`
	Type       string    `json:"type"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RabbitMQPublisher publishes events to a topic exchange.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitMQPublisher connects to url and declares the durable topic exchange.
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// RoutingKey returns the routing key of eventType.
func RoutingKey(eventType string) string {
	return "wallet." + eventType
}

// Notify publishes the event. Failures are logged and never returned,
// a lost notification must not fail a payment.
func (p *RabbitMQPublisher) Notify(ctx context.Context, accountID int64, eventType string, payload any) {
	l := zerolog.Ctx(ctx)

	body, err := json.Marshal(Event{
		AccountID:  accountID,
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		l.Error().Err(err).Str("event", eventType).Msg("encode notification")
		return
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(eventType),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		l.Error().Err(err).Str("event", eventType).Msg("publish notification")
	}
}

// Close closes the channel and the connection.
func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}

	return p.conn.Close()
}

// LogNotifier writes events to the request logger. It is used when no broker is configured.
type LogNotifier struct{}

// Notify logs the event.
func (LogNotifier) Notify(ctx context.Context, accountID int64, eventType string, payload any) {
	zerolog.Ctx(ctx).Info().
		Int64("account_id", accountID).
		Str("event", eventType).
		Interface("payload", payload).
		Msg("notification")
}
