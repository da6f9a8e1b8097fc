package update_reservation

import (
	"context"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetBySlot(ctx context.Context, filter domain.SlotFilter) ([]*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
