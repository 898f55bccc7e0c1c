package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher sends each event to a durable queue named after its type,
// through the default exchange. The connection is shared and re-dialed when
// the broker drops it; channels are opened per publish.
type AMQPPublisher struct {
	url string
	log *zap.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	declared map[Type]bool
}

func NewAMQPPublisher(url string, log *zap.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		url:      url,
		log:      log.With(zap.String("component", "event_publisher")),
		declared: make(map[Type]bool),
	}

	if _, err := p.connection(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *AMQPPublisher) connection() (*amqp.Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	p.conn = conn
	p.declared = make(map[Type]bool)

	return conn, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev BookingEvent) error {
	conn, err := p.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := p.declare(ch, ev.Type); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}

	err = ch.PublishWithContext(ctx,
		"",              // default exchange
		string(ev.Type), // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			MessageId:    ev.BookingID + ":" + string(ev.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}

	p.log.Debug("Event published",
		zap.String("type", string(ev.Type)),
		zap.String("booking_id", ev.BookingID),
	)
	return nil
}

func (p *AMQPPublisher) declare(ch *amqp.Channel, t Type) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.declared[t] {
		return nil
	}

	if _, err := ch.QueueDeclare(
		string(t), // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", t, err)
	}
	p.declared[t] = true

	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}
