package get_available_slots

import (
	"fmt"
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
// Допустимые даты: сегодня … сегодня + maxAdvanceDays - 1, минус заблокированные
func validateDate(requestDate time.Time, nowLocal time.Time, config *domain.VenueConfig) error {
	if isDateInPast(requestDate, nowLocal) {
		return ErrInvalidDate
	}

	// Дата запроса сравнивается в часовом поясе заведения: сама по себе она
	// распарсена в UTC и как инстант сдвинута относительно локальной полуночи
	maxDate := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, nowLocal.Location()).
		AddDate(0, 0, config.MaxAdvanceDays()-1)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, nowLocal.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.MaxAdvanceDays())
	}

	if config.IsDateBlocked(requestDate) {
		return ErrDateBlocked
	}

	return nil
}

// resolveZone определяет зону, для которой считается доступность
// Зоны не настроены - глобальный пул (nil). Зона указана - должна существовать
// и быть включённой. Зона не указана при настроенных зонах - первая включённая
// (legacy-совместимое поведение)
func resolveZone(config *domain.VenueConfig, zoneID *string) (*domain.Zone, error) {
	if !config.HasZones() {
		return nil, nil
	}

	if zoneID != nil {
		zone := config.ZoneByID(*zoneID)
		if zone == nil {
			return nil, ErrZoneNotFound
		}
		if !zone.Enabled {
			return nil, ErrZoneNotAvailable
		}
		return zone, nil
	}

	zone := config.FirstEnabledZone()
	if zone == nil {
		// Все зоны отключены - работаем в режиме глобального пула
		return nil, nil
	}
	return zone, nil
}
