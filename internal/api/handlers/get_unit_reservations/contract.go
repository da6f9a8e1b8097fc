package get_unit_reservations

import (
	"context"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByUnit(ctx context.Context, actor domain.Actor, filter domain.UnitReservationsFilter) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
