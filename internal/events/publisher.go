// Package events delivers committed booking lifecycle changes to
// interested parties: a RabbitMQ topic exchange and live admin feeds.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotelbooking/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const DefaultExchange = "bookings"

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends booking events to a durable topic exchange. The routing
// key is the event type, so consumers can bind to "booking.*" or to one
// lifecycle step.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	log      logrus.FieldLogger
}

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string, log logrus.FieldLogger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	p := newPublisher(ch, exchange, log)
	p.conn = conn
	log.WithField("exchange", exchange).Info("rabbitmq publisher ready")
	return p, nil
}

func newPublisher(ch channel, exchange string, log logrus.FieldLogger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, log: log}
}

func (p *Publisher) SendBookingEvent(ctx context.Context, evt domain.BookingEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.ID,
		Type:         string(evt.Type),
		Timestamp:    evt.OccurredAt,
		Body:         body,
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishes
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, string(evt.Type), false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", evt.Type, err)
	}

	p.log.WithFields(logrus.Fields{"event": evt.Type, "booking_id": evt.BookingID}).Debug("event published")
	return nil
}

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
