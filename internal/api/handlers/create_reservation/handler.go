package create_reservation

import (
	"errors"
	"net/http"

	"github.com/tavolo-app/ReservationService/internal/api/handlers"
	"github.com/tavolo-app/ReservationService/internal/api/middleware"
	createReservation "github.com/tavolo-app/ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound   = "заведение не найдено"
	msgInvalidInput       = "некорректные данные брони"
	msgZoneNotAvailable   = "выбранная зона недоступна"
	msgPastTime           = "время брони уже прошло"
	msgOutsideShift       = "заведение не работает в выбранное время"
	msgCapacityExceeded   = "нет свободных мест на выбранное время"
	msgDateTooFar         = "дата брони слишком далеко в будущем"
	msgDateBlocked        = "выбранная дата закрыта для бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// ID пользователя берем из заголовка (middleware Auth), body - запасной вариант
	// для вызовов от внутренних сервисов
	userID := req.UserID
	if ctxUserID, ok := middleware.GetUserID(r.Context()); ok {
		userID = ctxUserID
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: business_id=%d, party_size=%d",
				req.BusinessID, req.PartySize)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrBusinessNotFound):
			h.logger.Warn("POST /reservations - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createReservation.ErrZoneNotAvailable):
			h.logger.Warn("POST /reservations - Zone not available: business_id=%d, zone_id=%v",
				req.BusinessID, req.ZoneID)
			handlers.RespondBadRequest(w, msgZoneNotAvailable)

		case errors.Is(err, createReservation.ErrPastTime):
			h.logger.Warn("POST /reservations - Reservation time in the past: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, createReservation.ErrOutsideShift):
			h.logger.Warn("POST /reservations - Outside working hours: business_id=%d, start_time=%s",
				req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideShift)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrDateBlocked):
			h.logger.Warn("POST /reservations - Date blocked: business_id=%d, date=%s", req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgDateBlocked)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: business_id=%d, error=%v", req.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: business_id=%d, error=%v",
				req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, business_id=%d, status=%s",
		result.ID, req.BusinessID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
