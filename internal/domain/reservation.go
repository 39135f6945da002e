package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending          ReservationStatus = "pending"
	StatusConfirmed        ReservationStatus = "confirmed"
	StatusCancelledByUser  ReservationStatus = "cancelled_by_user"
	StatusCancelledByVenue ReservationStatus = "cancelled_by_venue"
)

// Reservation represents a table reservation in the system
type Reservation struct {
	ID         int64
	BusinessID int64

	// UserID гость, создавший бронь; 0 у записей, созданных заведением вручную
	UserID int64

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	PartySize int

	// ReservedAt единственный источник истины о времени брони (UTC)
	ReservedAt time.Time
	// TZOffsetMinutes смещение локального времени гостя, хранится только для форматирования
	TZOffsetMinutes *int

	// ZoneID зона посадки; NULL у legacy-записей, где зона закодирована тегом в Notes
	ZoneID *string
	Notes  string

	Status ReservationStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies capacity (pending or confirmed)
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByUser || r.Status == StatusCancelledByVenue
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the reservation can be manually confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// Interval возвращает занимаемый бронью интервал [ReservedAt, ReservedAt+duration)
func (r *Reservation) Interval(durationMinutes int) (time.Time, time.Time) {
	return r.ReservedAt, r.ReservedAt.Add(time.Duration(durationMinutes) * time.Minute)
}

// Overlaps проверяет пересечение интервала брони с интервалом [start, end)
// Строгие неравенства: граничащие интервалы пересечением не считаются
func (r *Reservation) Overlaps(start, end time.Time, durationMinutes int) bool {
	rStart, rEnd := r.Interval(durationMinutes)
	return rStart.Before(end) && rEnd.After(start)
}

// LocalTime возвращает время брони в локальном времени гостя (для форматирования)
func (r *Reservation) LocalTime() time.Time {
	if r.TZOffsetMinutes == nil {
		return r.ReservedAt
	}
	return r.ReservedAt.In(time.FixedZone("", *r.TZOffsetMinutes*60))
}

// VenueReservationsFilter фильтр для получения броней заведения
type VenueReservationsFilter struct {
	BusinessID      int64              // Обязательный параметр
	ZoneID          *string            // Фильтр по зоне (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые брони
}
