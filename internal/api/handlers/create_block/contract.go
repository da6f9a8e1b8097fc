package create_block

import (
	"context"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/blocks/models"
)

type BlockService interface {
	Create(ctx context.Context, actor domain.Actor, req models.CreateRequest) (*models.Block, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
