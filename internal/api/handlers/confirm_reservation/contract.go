package confirm_reservation

import (
	"context"

	"github.com/tavolo-app/ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Confirm(ctx context.Context, reservationID int64, req *models.ConfirmReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
