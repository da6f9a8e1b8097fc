// Package notifier отправка доменных событий внешнему сервису рассылок.
// События fire-and-forget: сбой публикации логируется и никогда не влияет
// на исход основной операции.
package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routing keys событий
const (
	EventFireBlockCreated       = "fire-block-created"
	EventConciergeServiceNeeded = "concierge-service-needed"
)

// Publisher интерфейс издателя сообщений (pkg/rabbit)
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event конверт доменного события
type Event struct {
	ID         string      `json:"id"`
	Kind       string      `json:"kind"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// FireBlockPayload payload события fire-block-created
type FireBlockPayload struct {
	BlockID  int64  `json:"block_id"`
	Date     string `json:"date"`
	Coverage string `json:"coverage"`
	Reason   string `json:"reason"`
}

// ConciergePayload payload события concierge-service-needed
type ConciergePayload struct {
	ReservationID   int64  `json:"reservation_id"`
	UnitNumber      int    `json:"unit_number"`
	Date            string `json:"date"`
	MealPeriod      string `json:"meal_period"`
	CleaningNeeded  bool   `json:"cleaning_needed"`
	FirePreparation bool   `json:"fire_preparation"`
}

// Notifier издатель доменных событий
type Notifier struct {
	publisher Publisher
	logger    Logger
}

// New создает notifier. publisher может быть nil — тогда события
// не отправляются (rabbit выключен в конфигурации).
func New(publisher Publisher, logger Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    logger,
	}
}

// Notify публикует событие указанного вида. Никогда не возвращает ошибку:
// сбой доставки — проблема канала уведомлений, не бизнес-операции.
func (n *Notifier) Notify(ctx context.Context, kind string, payload interface{}) {
	if n.publisher == nil {
		return
	}

	event := Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	if err := n.publisher.Publish(ctx, kind, event); err != nil {
		n.logger.Error("Notifier: failed to publish event kind=%s id=%s: %v", kind, event.ID, err)
		return
	}

	n.logger.Info("Notifier: published event kind=%s id=%s", kind, event.ID)
}
