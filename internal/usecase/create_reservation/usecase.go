package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
	configRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
)

// UseCase use case для создания брони
// Проверка доступности и вставка выполняются в одной SERIALIZABLE транзакции:
// два конкурентных запроса на пересекающийся слот не могут вдвоём пройти проверку
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	userClient      UserServiceClient
	publisher       NotificationPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	userClient UserServiceClient,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		userClient:      userClient,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: business=%d, date=%s, time=%s, party=%d",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию заведения
	config, err := uc.configRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("CreateReservation: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateReservation: failed to get config for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	loc := config.Location()
	nowLocal := now.In(loc)

	// 4. Выбираем зону посадки (с legacy-откатом на первую включённую)
	zone, err := resolveZone(config, req.ZoneID)
	if err != nil {
		uc.logger.Warn("CreateReservation: zone resolution failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 5. Валидация даты: окно бронирования и заблокированные даты
	if err := validateDate(req.Date, nowLocal, config); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 6. Абсолютный момент брони: локальные дата и время заведения -> UTC
	minutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	reservedAt := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(),
		minutes/60, minutes%60, 0, 0, loc).UTC()

	// 7. Момент брони обязан быть строго в будущем; запрос "ровно сейчас" отклоняется
	if !reservedAt.After(now) {
		uc.logger.Warn("CreateReservation: past time %s for business=%d", reservedAt, req.BusinessID)
		return nil, ErrPastTime
	}

	// 8. Время начала обязано попадать в одну из смен
	shifts := domain.ParseShifts(config.RawShifts)
	if domain.ShiftForMinute(shifts, minutes) == nil {
		uc.logger.Warn("CreateReservation: time %s outside shifts for business=%d", req.StartTime, req.BusinessID)
		return nil, ErrOutsideShift
	}

	// 9. Дополняем контакты из профиля пользователя (best-effort)
	email := req.CustomerEmail
	if email == nil && req.UserID > 0 {
		profile, err := uc.userClient.GetProfileWithGracefulDegradation(ctx, req.UserID)
		if err != nil {
			// Недоступность UserService не блокирует бронь
			uc.logger.Warn("CreateReservation: profile lookup skipped for user=%d: %v", req.UserID, err)
		} else if profile.Email != nil && *profile.Email != "" {
			email = profile.Email
		}
	}

	// 10. Начальный статус: auto_confirm подтверждает бронь сразу
	status := domain.StatusPending
	if config.AutoConfirm {
		status = domain.StatusConfirmed
	}

	var result *domain.Reservation

	// 11. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 11.1. Читаем активные брони локальных суток с блокировкой (FOR UPDATE)
		dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc).UTC()
		dayEnd := dayStart.AddDate(0, 0, 1)
		filter := domain.VenueReservationsFilter{
			BusinessID: req.BusinessID,
			StartDate:  &dayStart,
			EndDate:    &dayEnd,
		}

		reservations, err := uc.reservationRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 11.2. Проверяем вместимость пула в окне пересечения
		// Вместимость <= 0 означает безлимит: проверка не выполняется
		capacity, poolName := config.PoolCapacity(zone)
		if capacity > 0 {
			occupied := occupiedSeats(reservedAt, config.AvgDuration(), reservations, zone)
			if occupied+req.PartySize > capacity {
				uc.logger.Warn("CreateReservation: capacity exceeded, %d+%d > %d (pool=%q)",
					occupied, req.PartySize, capacity, poolName)
				if poolName == "" {
					return fmt.Errorf("%w: no seats available in this time slot", ErrCapacityExceeded)
				}
				return fmt.Errorf("%w: no seats available in zone %q", ErrCapacityExceeded, poolName)
			}
			uc.logger.Info("CreateReservation: %d/%d seats taken in window", occupied, capacity)
		}

		// 11.3. Создаем бронь
		reservation := &domain.Reservation{
			BusinessID:      req.BusinessID,
			UserID:          req.UserID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   email,
			PartySize:       req.PartySize,
			ReservedAt:      reservedAt,
			TZOffsetMinutes: req.TZOffsetMinutes,
			Notes:           buildNotes(zone, req.Notes),
			Status:          status,
		}
		if zone != nil {
			reservation.ZoneID = &zone.ID
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, status=%s",
		result.ID, result.Status)

	// 12. Публикуем событие для уведомлений: fire-and-forget, отказ доставки
	// логируется и не откатывает бронь
	if err := uc.publisher.ReservationCreated(ctx, result); err != nil {
		uc.logger.Error("CreateReservation: failed to publish notification for id=%d: %v", result.ID, err)
	}

	return uc.buildResponse(result, zone, req), nil
}

func (uc *UseCase) buildResponse(r *domain.Reservation, zone *domain.Zone, req *Request) *Response {
	resp := &Response{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		Status:        string(r.Status),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		PartySize:     r.PartySize,
		ReservedAt:    r.ReservedAt,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if zone != nil {
		resp.ZoneID = &zone.ID
		resp.ZoneName = zone.Name
	}

	return resp
}
