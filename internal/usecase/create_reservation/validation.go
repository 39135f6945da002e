package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Порядок проверок фиксирован: первая ошибка прерывает обработку
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: party size must be positive", ErrInvalidInput)
	}

	if req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must not exceed %d", ErrInvalidInput, domain.MaxPartySize)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования заведения
func validateDate(reservationDate time.Time, nowLocal time.Time, config *domain.VenueConfig) error {
	if isDateInPast(reservationDate, nowLocal) {
		return ErrInvalidDate
	}

	// Дата запроса сравнивается в часовом поясе заведения: сама по себе она
	// распарсена в UTC и как инстант сдвинута относительно локальной полуночи
	maxDate := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, nowLocal.Location()).
		AddDate(0, 0, config.MaxAdvanceDays()-1)

	dateOnly := time.Date(reservationDate.Year(), reservationDate.Month(), reservationDate.Day(), 0, 0, 0, 0, nowLocal.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.MaxAdvanceDays())
	}

	if config.IsDateBlocked(reservationDate) {
		return ErrDateBlocked
	}

	return nil
}

// resolveZone выбирает зону посадки для новой брони
// Если зоны настроены и есть включённые, зона обязательна; при отсутствии выбора
// действует откат на первую включённую зону (legacy-совместимое поведение).
// Выбранная зона обязана существовать и быть включённой
func resolveZone(config *domain.VenueConfig, zoneID *string) (*domain.Zone, error) {
	if !config.HasZones() {
		return nil, nil
	}

	if zoneID != nil {
		zone := config.ZoneByID(*zoneID)
		if zone == nil || !zone.Enabled {
			return nil, ErrZoneNotAvailable
		}
		return zone, nil
	}

	zone := config.FirstEnabledZone()
	if zone == nil {
		// Все зоны отключены - глобальный пул
		return nil, nil
	}
	return zone, nil
}

// occupiedSeats суммирует места активных броней пула, пересекающихся с интервалом кандидата
func occupiedSeats(
	candidateStart time.Time,
	durationMinutes int,
	reservations []*domain.Reservation,
	zone *domain.Zone,
) int {
	candidateEnd := candidateStart.Add(time.Duration(durationMinutes) * time.Minute)

	seats := 0
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if !r.InPool(zone) {
			continue
		}
		if r.Overlaps(candidateStart, candidateEnd, durationMinutes) {
			seats += r.PartySize
		}
	}

	return seats
}

// buildNotes собирает заметки брони: тег зоны идёт префиксом перед текстом гостя
// Тег дублирует колонку zone_id ради потребителей, читающих только заметки
func buildNotes(zone *domain.Zone, userNotes *string) string {
	var sb strings.Builder
	if zone != nil {
		sb.WriteString(domain.ZoneTag(*zone))
	}
	if userNotes != nil {
		sb.WriteString(*userNotes)
	}
	return sb.String()
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравниваются календарные поля, а не инстанты: дата запроса и "сейчас"
// могут быть в разных часовых поясах
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
