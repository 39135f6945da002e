package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
	configRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
	businessClient "github.com/tavolo-app/ReservationService/internal/integrations/businessservice"
	"github.com/tavolo-app/ReservationService/internal/service/config/models"
	"github.com/tavolo-app/ReservationService/pkg/types"
)

// Service сервис для работы с конфигурацией заведения
type Service struct {
	configRepo     ConfigRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:     configRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// Get получает конфигурацию заведения
// Публичный метод - доступен всем (фронт рисует по ней форму бронирования)
func (s *Service) Get(ctx context.Context, businessID int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for business=%d", businessID)

	config, err := s.configRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: config for business=%d not found", businessID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched config for business=%d", businessID)
	return models.FromDomainConfig(config), nil
}

// Update полностью заменяет конфигурацию заведения (PUT-семантика)
// Доступно только менеджерам заведения
// В отличие от чтения, на записи смены валидируются строго: некорректная
// запись не отбрасывается молча, а возвращается ошибкой
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for business=%d by user=%d", req.BusinessID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 2. Получаем заведение для проверки прав доступа
	business, err := s.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("Update: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Update: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер заведения)
	if !s.isManager(business.ManagerIDs, req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 4. Сохраняем конфигурацию (insert или полная замена)
	updatedConfig, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for business=%d", req.BusinessID)
	return models.FromDomainConfig(updatedConfig), nil
}

// Вспомогательные методы

// isManager проверяет, что пользователь в списке менеджеров заведения
func (s *Service) isManager(managerIDs []int64, userID int64) bool {
	for _, managerID := range managerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(req *models.UpdateConfigRequest) error {
	// Проверяем числовые параметры
	if req.GlobalCapacity < 0 {
		return fmt.Errorf("%w: globalCapacity must not be negative", ErrInvalidInput)
	}
	if req.LeadHours < 0 {
		return fmt.Errorf("%w: leadHours must not be negative", ErrInvalidInput)
	}
	if req.MaxDays < 0 || req.MaxDays > 365 {
		return fmt.Errorf("%w: maxDays must be between 0 and 365", ErrInvalidInput)
	}
	if req.AvgDurationMinutes < 0 || req.AvgDurationMinutes > 480 { // максимум 8 часов
		return fmt.Errorf("%w: avgDurationMinutes must be between 0 and 480", ErrInvalidInput)
	}
	if req.SlotIntervalMinutes < 0 || req.SlotIntervalMinutes > 240 {
		return fmt.Errorf("%w: slotIntervalMinutes must be between 0 and 240", ErrInvalidInput)
	}

	// Проверяем часовой пояс
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	// Проверяем смены
	if err := s.validateShifts(req.Shifts); err != nil {
		return err
	}

	// Проверяем зоны
	seenZones := make(map[string]struct{}, len(req.Zones))
	for i, zone := range req.Zones {
		if zone.ID == "" {
			return fmt.Errorf("%w: zones[%d] has empty id", ErrInvalidInput, i)
		}
		if zone.Capacity < 0 {
			return fmt.Errorf("%w: zones[%d] capacity must not be negative", ErrInvalidInput, i)
		}
		if _, ok := seenZones[zone.ID]; ok {
			return fmt.Errorf("%w: duplicate zone id %q", ErrInvalidInput, zone.ID)
		}
		seenZones[zone.ID] = struct{}{}
	}

	// Проверяем заблокированные даты
	for _, d := range req.BlockedDates {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: blocked date %q is not in YYYY-MM-DD format", ErrInvalidInput, d)
		}
	}

	return nil
}

// validateShifts строго валидирует записи смен: формат границ,
// закрытие позже открытия, отсутствие пересечений между сменами
func (s *Service) validateShifts(entries []models.ShiftEntry) error {
	shifts := make([]domain.Shift, 0, len(entries))

	for i, entry := range entries {
		raw := domain.RawShift{
			From:  entry.From,
			To:    entry.To,
			Start: entry.Start,
			End:   entry.End,
		}
		open, close := raw.OpenClose()

		startTS, err := types.NewTimeStringFromString(open)
		if err != nil {
			return fmt.Errorf("%w: shifts[%d] has invalid opening time %q", ErrInvalidInput, i, open)
		}
		endTS, err := types.NewTimeStringFromString(close)
		if err != nil {
			return fmt.Errorf("%w: shifts[%d] has invalid closing time %q", ErrInvalidInput, i, close)
		}

		start, _ := startTS.Minutes()
		end, _ := endTS.Minutes()
		if start >= end {
			return fmt.Errorf("%w: shifts[%d] closing time must be after opening time", ErrInvalidInput, i)
		}

		shifts = append(shifts, domain.Shift{StartMinute: start, EndMinute: end})
	}

	// Пересекающиеся смены приводят к двойному учёту слотов
	for i := 0; i < len(shifts); i++ {
		for j := i + 1; j < len(shifts); j++ {
			if shifts[i].Overlaps(shifts[j]) {
				return fmt.Errorf("%w: shifts[%d] and shifts[%d] overlap", ErrInvalidInput, i, j)
			}
		}
	}

	return nil
}
