// Package broker mirrors station tickets onto a RabbitMQ topic exchange so
// out-of-process consumers (printers, displays on other hosts) can follow a
// station without holding a websocket.
package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// Exchange receives every station message; consumers bind by routing key.
	Exchange = "stations_topic"

	publishTimeout = 5 * time.Second
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends station messages to the exchange. An AMQP channel is not
// safe for concurrent publishing, so sends are serialized.
type Publisher struct {
	mu   sync.Mutex
	ch   channel
	conn *amqp.Connection
}

// Dial connects to the broker and declares the station exchange.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}

	return &Publisher{ch: ch, conn: conn}, nil
}

// RoutingKey is the key a station's messages are published under.
func RoutingKey(stationID uuid.UUID) string {
	return "station." + stationID.String()
}

// PublishTicket publishes payload for one station. It satisfies
// service.TicketSink.
func (p *Publisher) PublishTicket(ctx context.Context, stationID uuid.UUID, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx,
		Exchange,              // exchange
		RoutingKey(stationID), // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
			Timestamp:   time.Now(),
		})
	if err != nil {
		return fmt.Errorf("publish to station %s: %w", stationID, err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
