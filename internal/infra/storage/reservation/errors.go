package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrTableTaken возвращается при нарушении уникальности претензии на стол
	// (date, meal_period, table_no) — последний рубеж защиты от гонок
	ErrTableTaken = errors.New("reservation.repository: table already taken for this slot")

	// ErrOvenTaken возвращается при нарушении уникальности претензии на печь
	ErrOvenTaken = errors.New("reservation.repository: oven already taken for this slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
