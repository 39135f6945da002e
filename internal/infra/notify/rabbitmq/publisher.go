// Package rabbitmq публикует события о бронированиях в очередь RabbitMQ.
// Уведомления fire-and-forget: сбой публикации не должен отменять бронь.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tavolo-app/ReservationService/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher клиент публикации событий брони
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   Logger
}

// NewPublisher подключается к RabbitMQ и объявляет durable-очередь
func NewPublisher(url, queue string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: failed to declare queue %q: %w", queue, err)
	}

	log.Info("rabbitmq: connected, queue %q declared", queue)

	return &Publisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
		log:   log,
	}, nil
}

// ReservationCreated публикует событие о созданной брони
func (p *Publisher) ReservationCreated(ctx context.Context, r *domain.Reservation) error {
	payload := ReservationCreatedPayload{
		ReservationID: r.ID,
		BusinessID:    r.BusinessID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		PartySize:     r.PartySize,
		ReservedAt:    r.ReservedAt.UTC().Format(time.RFC3339),
		LocalTime:     r.LocalTime().Format("2006-01-02 15:04"),
		ZoneID:        r.ZoneID,
		Notes:         r.Notes,
		Status:        string(r.Status),
	}

	return p.publish(ctx, EventReservationCreated, payload)
}

// ReservationCancelled публикует событие об отмене брони
func (p *Publisher) ReservationCancelled(ctx context.Context, r *domain.Reservation) error {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	payload := ReservationCancelledPayload{
		ReservationID: r.ID,
		BusinessID:    r.BusinessID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Reason:        reason,
		Status:        string(r.Status),
	}

	return p.publish(ctx, EventReservationCancelled, payload)
}

func (p *Publisher) publish(ctx context.Context, eventType EventType, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq: failed to marshal payload: %w", err)
	}

	envelope, err := json.Marshal(EventEnvelope{
		Type:    eventType,
		Payload: body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: failed to marshal envelope: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         envelope,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: failed to publish %s: %w", eventType, err)
	}

	p.log.Info("rabbitmq: published %s event", eventType)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("rabbitmq: failed to close channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("rabbitmq: failed to close connection: %w", err)
	}
	return nil
}
