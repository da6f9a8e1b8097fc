package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrPermissionDenied возвращается, когда у актора нет прав на операцию
	ErrPermissionDenied = errors.New("permission denied")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении
	ErrAlreadyConfirmed = errors.New("reservation already confirmed")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAttendeeCapExceeded возвращается, когда итоговое число гостей
	// превышает вместимость занятых столов
	ErrAttendeeCapExceeded = errors.New("attendee count exceeds table capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
