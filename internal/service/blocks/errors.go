package blocks

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("blocked slot not found")

	// ErrPermissionDenied возвращается, когда у актора нет прав на операцию
	ErrPermissionDenied = errors.New("permission denied")

	// ErrBlockOverlap возвращается, когда блокировка пересекается с существующей
	ErrBlockOverlap = errors.New("blocked slot overlaps an existing block")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
