package get_available_slots

import (
	"time"

	"github.com/tavolo-app/ReservationService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID заведения
	Date       time.Time // Дата для получения слотов (без времени)
	ZoneID     *string   // Зона посадки (опционально; если nil и зоны настроены - первая включённая)
}

// Response модель ответа со списком слотов
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	BusinessID int64     // ID заведения
	ZoneID     *string   // Зона, для которой считалась доступность (nil = глобальный пул)
	ZoneName   string    // Имя зоны (пустое для глобального пула)
	Slots      []Slot    // Список слотов
}

// Slot модель временного слота
// Вместимость считается в посадочных местах (сумма party size), а не в количестве броней
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "13:30")
	DurationMinutes int              // Длительность брони в минутах
	AvailableSeats  int              // Свободные места в окне пересечения
	TotalSeats      int              // Вместимость пула (0 = безлимит)
}

// IsFull возвращает true, если в слоте не осталось мест (и пул ограничен)
func (s *Slot) IsFull() bool {
	return s.TotalSeats > 0 && s.AvailableSeats <= 0
}
