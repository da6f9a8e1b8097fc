package domain

import (
	"sort"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
)

// MealPeriod represents one of the two daily seatings of the common house
type MealPeriod string

const (
	PeriodMidday  MealPeriod = "midday"
	PeriodEvening MealPeriod = "evening"
)

// IsValid returns true if the meal period is one of the known seatings
func (p MealPeriod) IsValid() bool {
	return p == PeriodMidday || p == PeriodEvening
}

// Reservation represents a common-house reservation for one unit and one slot
type Reservation struct {
	ID            int64
	UnitNumber    int
	Date          time.Time // нормализована к началу дня
	MealPeriod    MealPeriod
	Tables        []int
	OvenRequested bool

	AttendeesPlanned int
	AttendeesFinal   *int // заполняется только при подтверждении

	Status ReservationStatus

	// Derived service flags, см. internal/rules/eligibility
	CleaningServiceWaived    bool
	FirePreparationRequested bool

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation participates in conflict checks.
// Cancelled reservations are hard-deleted, so every stored row is active.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsConfirmed returns true if the reservation has been confirmed
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// AttendeeCap returns the maximum attendee count for the claimed tables
func (r *Reservation) AttendeeCap() int {
	return len(r.Tables) * AttendeesPerTable
}

// ClaimsTable returns true if the reservation holds the given table number
func (r *Reservation) ClaimsTable(tableNo int) bool {
	for _, t := range r.Tables {
		if t == tableNo {
			return true
		}
	}
	return false
}

// SortedTables returns the claimed table numbers in ascending order
func (r *Reservation) SortedTables() []int {
	tables := make([]int, len(r.Tables))
	copy(tables, r.Tables)
	sort.Ints(tables)
	return tables
}

// SlotFilter фильтр для выборки бронирований одного слота
type SlotFilter struct {
	Date       time.Time
	MealPeriod MealPeriod
	ExcludeID  *int64 // исключить бронирование (для update-in-place)
}

// UnitReservationsFilter фильтр для истории бронирований квартиры
type UnitReservationsFilter struct {
	UnitNumber int
	StartDate  *time.Time // начало периода (опционально)
	EndDate    *time.Time // конец периода (опционально)
	Status     *ReservationStatus
}
