package cancel_reservation

import (
	"context"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
