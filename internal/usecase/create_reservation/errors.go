package create_reservation

import "errors"

var (
	// ErrPermissionDenied возвращается, когда у актора нет прав на создание
	ErrPermissionDenied = errors.New("create_reservation: permission denied")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("create_reservation: date is in the past")

	// ErrTableConflict возвращается, когда запрошенные столы уже заняты в слоте
	ErrTableConflict = errors.New("create_reservation: tables are already claimed")

	// ErrOvenConflict возвращается, когда печь уже занята в слоте
	ErrOvenConflict = errors.New("create_reservation: oven is already claimed")

	// ErrSlotBlocked возвращается, когда слот исключён административной блокировкой
	ErrSlotBlocked = errors.New("create_reservation: slot is blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
