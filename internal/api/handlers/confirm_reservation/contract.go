package confirm_reservation

import (
	"context"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Confirm(ctx context.Context, actor domain.Actor, id int64, req models.ConfirmRequest) (*models.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
