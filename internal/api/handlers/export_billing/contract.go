package export_billing

import (
	"context"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/billing/models"
)

type BillingService interface {
	Export(ctx context.Context, actor domain.Actor, year int) (*models.YearExport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
