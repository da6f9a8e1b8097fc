package billing

import "errors"

var (
	// ErrPermissionDenied возвращается, когда у актора нет прав на выгрузку
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
