package activitylog

import "time"

// Entry запись журнала действий
type Entry struct {
	ActorID    int64     `json:"actor_id"`
	UnitNumber int       `json:"unit_number,omitempty"`
	Action     string    `json:"action"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}
