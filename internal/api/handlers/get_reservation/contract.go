package get_reservation

import (
	"context"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
