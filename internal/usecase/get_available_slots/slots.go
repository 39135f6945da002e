package get_available_slots

import (
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
	"github.com/tavolo-app/ReservationService/pkg/types"
)

// generateTimeSlots генерирует список бронируемых слотов на день
// Для каждой смены слоты идут от её начала с фиксированным шагом, пока начало
// слота строго раньше конца смены. Для "сегодня" применяется нижняя граница:
// не раньше, чем now + буфер предупреждения (lead_hours либо буфер по умолчанию)
func generateTimeSlots(
	shifts []domain.Shift,
	intervalMinutes int,
	requestDate time.Time,
	nowLocal time.Time,
	leadBufferMinutes int,
) []types.TimeString {
	if isDateInPast(requestDate, nowLocal) {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)

	// Нижняя граница по минутам суток действует только для сегодняшней даты
	floor := -1
	if isSameDay(requestDate, nowLocal) {
		floor = nowLocal.Hour()*60 + nowLocal.Minute() + leadBufferMinutes
	}

	for _, shift := range shifts {
		for minute := shift.StartMinute; minute < shift.EndMinute; minute += intervalMinutes {
			if minute < floor {
				continue
			}
			slots = append(slots, types.NewTimeStringFromMinutes(minute))
		}
	}

	return slots
}

// occupiedSeats суммирует места активных броней пула, чьи интервалы пересекаются
// с интервалом [slotStart, slotStart+duration)
// Пересечение строгое: интервалы, соприкасающиеся границами, не считаются
func occupiedSeats(
	slotStart time.Time,
	durationMinutes int,
	reservations []*domain.Reservation,
	zone *domain.Zone,
) int {
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

	seats := 0
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if !r.InPool(zone) {
			continue
		}
		if r.Overlaps(slotStart, slotEnd, durationMinutes) {
			seats += r.PartySize
		}
	}

	return seats
}

// calculateSeatAvailability вычисляет свободные места для каждого слота
// capacity <= 0 означает безлимитный пул: доступность не считается
func calculateSeatAvailability(
	slots []types.TimeString,
	durationMinutes int,
	reservations []*domain.Reservation,
	zone *domain.Zone,
	capacity int,
	date time.Time,
	loc *time.Location,
) []Slot {
	result := make([]Slot, len(slots))

	for i, startTime := range slots {
		slot := Slot{
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
		}

		if capacity > 0 {
			slotStart := combineDateTime(date, startTime, loc)
			occupied := occupiedSeats(slotStart, durationMinutes, reservations, zone)

			available := capacity - occupied
			if available < 0 {
				available = 0
			}

			slot.AvailableSeats = available
			slot.TotalSeats = capacity
		}

		result[i] = slot
	}

	return result
}

// combineDateTime собирает абсолютный момент времени (UTC) из локальной даты
// заведения и времени HH:MM
func combineDateTime(date time.Time, t types.TimeString, loc *time.Location) time.Time {
	minutes, err := t.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc).UTC()
}

// dayWindow возвращает границы локальных суток заведения как UTC-инстанты
func dayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
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
