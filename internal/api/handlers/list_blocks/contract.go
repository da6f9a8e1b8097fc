package list_blocks

import (
	"context"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/blocks/models"
)

type BlockService interface {
	List(ctx context.Context, actor domain.Actor, startDate, endDate time.Time) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
