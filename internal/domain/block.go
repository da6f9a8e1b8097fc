package domain

import "time"

// BlockCoverage represents which seatings of a day an administrative block covers
type BlockCoverage string

const (
	CoverMidday  BlockCoverage = "midday"
	CoverEvening BlockCoverage = "evening"
	CoverBoth    BlockCoverage = "both"
)

// IsValid returns true if the coverage is one of the known values
func (c BlockCoverage) IsValid() bool {
	return c == CoverMidday || c == CoverEvening || c == CoverBoth
}

// Overlaps returns true if two coverages claim at least one common seating.
// CoverBoth overlaps everything, including another CoverBoth.
func (c BlockCoverage) Overlaps(other BlockCoverage) bool {
	if c == CoverBoth || other == CoverBoth {
		return true
	}
	return c == other
}

// Covers returns true if the coverage includes the given meal period
func (c BlockCoverage) Covers(period MealPeriod) bool {
	switch c {
	case CoverBoth:
		return true
	case CoverMidday:
		return period == PeriodMidday
	case CoverEvening:
		return period == PeriodEvening
	default:
		return false
	}
}

// BlockReason is the closed set of reasons for blocking a slot
type BlockReason string

const (
	ReasonMaintenance  BlockReason = "maintenance"
	ReasonPrivateEvent BlockReason = "private_event"
	ReasonHoliday      BlockReason = "holiday"
	ReasonDeepCleaning BlockReason = "deep_cleaning"
)

// IsValid returns true if the reason belongs to the closed enumeration
func (r BlockReason) IsValid() bool {
	switch r {
	case ReasonMaintenance, ReasonPrivateEvent, ReasonHoliday, ReasonDeepCleaning:
		return true
	default:
		return false
	}
}

// BlockedSlot represents an administrative exclusion of a slot from new reservations
type BlockedSlot struct {
	ID                      int64
	Date                    time.Time // нормализована к началу дня
	Coverage                BlockCoverage
	Reason                  BlockReason
	FirePreparationPrepared bool
	CreatedAt               time.Time
}
