package create_reservation

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда заведение не найдено
	ErrBusinessNotFound = errors.New("create_reservation: business not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrZoneNotAvailable возвращается, когда зона не существует или отключена
	ErrZoneNotAvailable = errors.New("create_reservation: zone is not available")

	// ErrPastTime возвращается, когда запрошенный момент не находится строго в будущем
	ErrPastTime = errors.New("create_reservation: reservation time is in the past")

	// ErrOutsideShift возвращается, когда время не попадает ни в одну смену
	ErrOutsideShift = errors.New("create_reservation: time is outside opening hours")

	// ErrCapacityExceeded возвращается, когда в пуле не хватает мест
	ErrCapacityExceeded = errors.New("create_reservation: capacity exceeded")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrDateBlocked возвращается, когда дата закрыта для бронирования
	ErrDateBlocked = errors.New("create_reservation: date is blocked for reservations")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
