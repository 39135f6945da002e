package get_business_config

import (
	"context"

	"github.com/tavolo-app/ReservationService/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, businessID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
