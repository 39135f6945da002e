package domain

import (
	"encoding/json"

	"github.com/tavolo-app/ReservationService/pkg/types"
)

// RawShift сырая запись смены из конфигурации заведения
// Исторически поля открытия/закрытия встречаются в двух написаниях:
// новые записи используют from/to, старые - start/end
type RawShift struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// OpenClose возвращает значения открытия и закрытия с учётом обоих написаний
func (r RawShift) OpenClose() (string, string) {
	open := r.From
	if open == "" {
		open = r.Start
	}
	close := r.To
	if close == "" {
		close = r.End
	}
	return open, close
}

// Shift нормализованная смена: минутные границы в пределах суток
type Shift struct {
	StartMinute int
	EndMinute   int
}

// Contains проверяет принадлежность минуты смене: [start, end)
func (s Shift) Contains(minute int) bool {
	return minute >= s.StartMinute && minute < s.EndMinute
}

// Overlaps проверяет пересечение двух смен
func (s Shift) Overlaps(other Shift) bool {
	return s.StartMinute < other.EndMinute && s.EndMinute > other.StartMinute
}

// StartTime возвращает начало смены как HH:MM
func (s Shift) StartTime() types.TimeString {
	return types.NewTimeStringFromMinutes(s.StartMinute)
}

// EndTime возвращает конец смены как HH:MM
func (s Shift) EndTime() types.TimeString {
	return types.NewTimeStringFromMinutes(s.EndMinute)
}

// ParseShifts нормализует сырые записи смен в минутные интервалы
// Записи, у которых хотя бы одна граница не парсится как HH:MM, либо
// закрытие не позже открытия, молча отбрасываются - некорректная смена
// не должна ронять весь конфиг
func ParseShifts(raw []RawShift) []Shift {
	shifts := make([]Shift, 0, len(raw))

	for _, r := range raw {
		open, close := r.OpenClose()

		startTS, err := types.NewTimeStringFromString(open)
		if err != nil {
			continue
		}
		endTS, err := types.NewTimeStringFromString(close)
		if err != nil {
			continue
		}

		start, _ := startTS.Minutes()
		end, _ := endTS.Minutes()
		if start >= end {
			continue
		}

		shifts = append(shifts, Shift{StartMinute: start, EndMinute: end})
	}

	return shifts
}

// ParseShiftsJSON парсит сырой JSON конфигурации смен
// Некорректный JSON трактуется как отсутствие смен
func ParseShiftsJSON(data []byte) []Shift {
	if len(data) == 0 {
		return nil
	}
	var raw []RawShift
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return ParseShifts(raw)
}

// ShiftForMinute возвращает смену, содержащую указанную минуту, или nil
func ShiftForMinute(shifts []Shift, minute int) *Shift {
	for i := range shifts {
		if shifts[i].Contains(minute) {
			return &shifts[i]
		}
	}
	return nil
}
