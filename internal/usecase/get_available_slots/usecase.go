package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/tavolo-app/ReservationService/internal/domain"
	configRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
)

// UseCase use case для получения доступных слотов бронирования
// Это авторитетная серверная генерация: клиентская копия списка слотов
// носит презентационный характер и здесь не учитывается
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s",
		req.BusinessID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию заведения
	config, err := uc.configRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get config for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 3. Текущее время в локальном часовом поясе заведения
	loc := config.Location()
	nowLocal := uc.timeProvider.Now().In(loc)

	// 4. Валидация даты: окно бронирования и заблокированные даты
	if err := validateDate(req.Date, nowLocal, config); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Определяем зону (пул вместимости)
	zone, err := resolveZone(config, req.ZoneID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: zone resolution failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 6. Парсим смены и генерируем слоты
	shifts := domain.ParseShifts(config.RawShifts)
	timeSlots := generateTimeSlots(
		shifts,
		config.SlotInterval(),
		req.Date,
		nowLocal,
		config.LeadBufferMinutes(),
	)

	if len(timeSlots) == 0 {
		uc.logger.Info("GetAvailableSlots: no slots for business=%d on %s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return uc.buildResponse(req, zone, []Slot{}), nil
	}

	// 7. Получаем активные брони на локальные сутки заведения
	dayStart, dayEnd := dayWindow(req.Date, loc)
	filter := domain.VenueReservationsFilter{
		BusinessID: req.BusinessID,
		StartDate:  &dayStart,
		EndDate:    &dayEnd,
	}

	reservations, err := uc.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 8. Считаем свободные места для каждого слота
	capacity, _ := config.PoolCapacity(zone)
	slots := calculateSeatAvailability(
		timeSlots,
		config.AvgDuration(),
		reservations,
		zone,
		capacity,
		req.Date,
		loc,
	)

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, date=%s",
		len(slots), req.BusinessID, req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req, zone, slots), nil
}

func (uc *UseCase) buildResponse(req *Request, zone *domain.Zone, slots []Slot) *Response {
	resp := &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		Slots:      slots,
	}
	if zone != nil {
		resp.ZoneID = &zone.ID
		resp.ZoneName = zone.Name
	}
	return resp
}
