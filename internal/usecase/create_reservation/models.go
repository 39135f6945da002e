package create_reservation

import (
	"time"

	"github.com/tavolo-app/ReservationService/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	UserID     int64 // ID пользователя платформы (0 = гость без профиля)
	BusinessID int64 // ID заведения

	CustomerName  string  // Имя гостя
	CustomerPhone string  // Телефон гостя
	CustomerEmail *string // Email гостя (опционально)

	PartySize int // Количество гостей

	Date      time.Time        // Дата брони (без времени, локальная для заведения)
	StartTime types.TimeString // Время начала (например, "19:30")

	ZoneID *string // Зона посадки (опционально)
	Notes  *string // Пожелания гостя (опционально)

	// TZOffsetMinutes смещение локального времени гостя, хранится только для форматирования
	TZOffsetMinutes *int
}

// Response модель ответа с созданной бронью
type Response struct {
	ID         int64  // ID созданной брони
	BusinessID int64  // ID заведения
	Status     string // Статус брони (pending или confirmed)

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	PartySize int

	ReservedAt time.Time        // Абсолютный момент брони (UTC)
	Date       time.Time        // Дата брони
	StartTime  types.TimeString // Время начала

	ZoneID   *string // Зона посадки
	ZoneName string  // Имя зоны (пустое для глобального пула)
	Notes    string  // Заметки с тегом зоны

	CreatedAt time.Time
	UpdatedAt time.Time
}
