package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда заведение не найдено
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrDateBlocked возвращается, когда дата закрыта для бронирования
	ErrDateBlocked = errors.New("date is blocked for reservations")

	// ErrZoneNotFound возвращается, когда указанная зона не существует
	ErrZoneNotFound = errors.New("zone not found")

	// ErrZoneNotAvailable возвращается, когда зона отключена
	ErrZoneNotAvailable = errors.New("zone is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
