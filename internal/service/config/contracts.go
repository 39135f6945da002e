package config

import (
	"context"

	"github.com/tavolo-app/ReservationService/internal/domain"
	"github.com/tavolo-app/ReservationService/internal/integrations/businessservice"
)

// ConfigRepository интерфейс репозитория конфигурации заведения
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.VenueConfig, error)
	Upsert(ctx context.Context, config *domain.VenueConfig) (*domain.VenueConfig, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
