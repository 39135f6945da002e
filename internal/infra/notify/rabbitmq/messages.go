package rabbitmq

import "encoding/json"

// EventType тип события, публикуемого в очередь уведомлений
type EventType string

const (
	EventReservationCreated   EventType = "ReservationCreated"
	EventReservationCancelled EventType = "ReservationCancelled"
)

// EventEnvelope генерический конверт события
type EventEnvelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ReservationCreatedPayload данные для уведомления о новой брони
// Потребители (email, чат-бот, push) получают уже отформатированное локальное время
type ReservationCreatedPayload struct {
	ReservationID int64   `json:"reservation_id"`
	BusinessID    int64   `json:"business_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	PartySize     int     `json:"party_size"`
	ReservedAt    string  `json:"reserved_at"` // RFC3339, UTC
	LocalTime     string  `json:"local_time"`  // время в часовом поясе гостя
	ZoneID        *string `json:"zone_id,omitempty"`
	Notes         string  `json:"notes"`
	Status        string  `json:"status"`
}

// ReservationCancelledPayload данные для уведомления об отмене брони
type ReservationCancelledPayload struct {
	ReservationID int64  `json:"reservation_id"`
	BusinessID    int64  `json:"business_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
}
