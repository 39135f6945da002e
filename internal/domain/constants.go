package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultMaxAdvanceDays      = 30
	DefaultAvgDurationMinutes  = 90
	// DefaultLeadBufferMinutes минимальный буфер до начала брони "на сегодня",
	// применяется когда lead_hours не задан
	DefaultLeadBufferMinutes = 15
)

// Business validation constants
const (
	MinPartySize                = 1
	MaxPartySize                = 100
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxAdvanceDaysLimit         = 365
	MaxAvgDurationMinutes       = 480
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие вместимость
// Репозиторий фильтрует по ним, когда отменённые брони не запрошены
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
