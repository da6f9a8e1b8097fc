package blocks

import (
	"context"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedSlot, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
	GetByPeriod(ctx context.Context, startDate, endDate time.Time) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityLog интерфейс клиента журнала действий
type ActivityLog interface {
	AppendBestEffort(ctx context.Context, entry activitylog.Entry)
}

// Notifier интерфейс издателя доменных событий
type Notifier interface {
	Notify(ctx context.Context, kind string, payload interface{})
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
