package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/tavolo-app/ReservationService/internal/domain"
	reservationRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/reservation"
	businessClient "github.com/tavolo-app/ReservationService/internal/integrations/businessservice"
	"github.com/tavolo-app/ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронями
type Service struct {
	reservationRepo ReservationRepository
	businessClient  BusinessServiceClient
	publisher       NotificationPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	businessClient BusinessServiceClient,
	publisher NotificationPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		businessClient:  businessClient,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
// Проверяет права доступа - пользователь может видеть только свою бронь
// или если он является менеджером заведения
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetVenueReservations получает брони заведения с гибкой фильтрацией
// Поддерживает фильтрацию по зоне, периоду, статусу и включению неактивных броней
// Доступно только менеджерам заведения
//
// Примеры использования:
// - Все активные брони: GetVenueReservations(ctx, &GetVenueReservationsRequest{BusinessID: 123, UserID: 456})
// - Брони в конкретной зоне: указать ZoneID
// - Брони на дату: StartDate и EndDate указывают на одну дату
// - Брони за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetVenueReservations: fetching reservations for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.ZoneID != nil {
		logMsg += fmt.Sprintf(", zone=%s", *req.ZoneID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueReservations: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем брони с фильтрацией
	reservations, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueReservations: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetVenueReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReservations: successfully fetched %d reservations for business=%d", len(reservations), req.BusinessID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь
// Пользователь может отменить только свою бронь (cancelled_by_user)
// Менеджер может отменить любую бронь заведения (cancelled_by_venue)
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронь
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронь
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.ReservationStatus

	// Проверяем, является ли пользователь владельцем брони
	if reservation.UserID != 0 && reservation.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		// Проверяем, является ли пользователь менеджером заведения
		if err := s.checkManagerAccess(ctx, reservation.BusinessID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByVenue
	}

	// Отменяем бронь
	if err := s.reservationRepo.Cancel(ctx, reservationID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомление best-effort: сбой публикации не отменяет результат операции
	reservation.Status = cancelStatus
	reservation.CancellationReason = &req.CancellationReason
	if err := s.publisher.ReservationCancelled(ctx, reservation); err != nil {
		s.logger.Error("Cancel: failed to publish cancellation event for reservation id=%d: %v", reservationID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d with status=%s", reservationID, cancelStatus)
	return nil
}

// Confirm подтверждает бронь вручную (pending -> confirmed)
// Доступно только менеджерам заведения
func (s *Service) Confirm(ctx context.Context, reservationID int64, req *models.ConfirmReservationRequest) error {
	s.logger.Info("Confirm: confirming reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронь
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Confirm: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Confirm: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер заведения)
	if err := s.checkManagerAccess(ctx, reservation.BusinessID, req.UserID); err != nil {
		return err
	}

	// Подтвердить можно только бронь в статусе pending
	if !reservation.CanBeConfirmed() {
		s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", reservationID, reservation.Status)
		return ErrCannotConfirm
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Confirm: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Confirm: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed reservation id=%d", reservationID)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к брони
// Пользователь может видеть свою бронь или если он менеджер заведения
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	// Если пользователь владелец брони - доступ разрешён
	if reservation.UserID != 0 && reservation.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером заведения
	if err := s.checkManagerAccess(ctx, reservation.BusinessID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером заведения
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	// Получаем заведение через BusinessService
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	for _, managerID := range business.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of business=%d", userID, businessID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
	return ErrAccessDenied
}
