package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrPermissionDenied возвращается, когда у актора нет прав на изменение
	ErrPermissionDenied = errors.New("update_reservation: permission denied")

	// ErrDateInPast возвращается, когда новая дата бронирования уже прошла
	ErrDateInPast = errors.New("update_reservation: date is in the past")

	// ErrTableConflict возвращается, когда запрошенные столы уже заняты в слоте
	ErrTableConflict = errors.New("update_reservation: tables are already claimed")

	// ErrOvenConflict возвращается, когда печь уже занята в слоте
	ErrOvenConflict = errors.New("update_reservation: oven is already claimed")

	// ErrSlotBlocked возвращается, когда слот исключён административной блокировкой
	ErrSlotBlocked = errors.New("update_reservation: slot is blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
