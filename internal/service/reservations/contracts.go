package reservations

import (
	"context"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUnit(ctx context.Context, filter domain.UnitReservationsFilter) ([]*domain.Reservation, error)
	GetBySlot(ctx context.Context, filter domain.SlotFilter) ([]*domain.Reservation, error)
	Confirm(ctx context.Context, id int64, attendeesFinal int, notes *string) error
	Delete(ctx context.Context, id int64) error
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

// ActivityLog интерфейс клиента журнала действий
type ActivityLog interface {
	AppendBestEffort(ctx context.Context, entry activitylog.Entry)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
