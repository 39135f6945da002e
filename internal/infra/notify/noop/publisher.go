// Package noop заглушка публикации уведомлений для окружений без RabbitMQ.
package noop

import (
	"context"

	"github.com/tavolo-app/ReservationService/internal/domain"
)

type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) ReservationCreated(_ context.Context, _ *domain.Reservation) error {
	return nil
}

func (p *Publisher) ReservationCancelled(_ context.Context, _ *domain.Reservation) error {
	return nil
}

func (p *Publisher) Close() error {
	return nil
}
