package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetDaySchedule(ctx context.Context, date time.Time) (*models.DaySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
