package models

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// Reservation бронирование в ответе сервиса
type Reservation struct {
	ID                       int64   `json:"id"`
	UnitNumber               int     `json:"unit_number"`
	Date                     string  `json:"date"`
	MealPeriod               string  `json:"meal_period"`
	Tables                   []int   `json:"tables"`
	OvenRequested            bool    `json:"oven_requested"`
	AttendeesPlanned         int     `json:"attendees_planned"`
	AttendeesFinal           *int    `json:"attendees_final,omitempty"`
	Status                   string  `json:"status"`
	CleaningServiceWaived    bool    `json:"cleaning_service_waived"`
	FirePreparationRequested bool    `json:"fire_preparation_requested"`
	Notes                    *string `json:"notes,omitempty"`
	CreatedAt                string  `json:"created_at"`
	UpdatedAt                string  `json:"updated_at"`
}

// ConfirmRequest запрос на подтверждение бронирования
type ConfirmRequest struct {
	AttendeesFinal *int    `json:"attendees_final,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ListResponse список бронирований
type ListResponse struct {
	Reservations []Reservation `json:"reservations"`
}

// SlotSchedule занятость одного приёма пищи в расписании дня
type SlotSchedule struct {
	MealPeriod    string        `json:"meal_period"`
	ClaimedTables []int         `json:"claimed_tables"`
	FreeTables    []int         `json:"free_tables"`
	OvenTaken     bool          `json:"oven_taken"`
	Blocked       bool          `json:"blocked"`
	BlockReason   *string       `json:"block_reason,omitempty"`
	Reservations  []Reservation `json:"reservations"`
}

// DaySchedule расписание общего дома на день
type DaySchedule struct {
	Date  string         `json:"date"`
	Slots []SlotSchedule `json:"slots"`
}

// FromDomainReservation конвертирует доменное бронирование в модель ответа
func FromDomainReservation(r *domain.Reservation) Reservation {
	return Reservation{
		ID:                       r.ID,
		UnitNumber:               r.UnitNumber,
		Date:                     r.Date.Format(domain.DateFormat),
		MealPeriod:               string(r.MealPeriod),
		Tables:                   r.SortedTables(),
		OvenRequested:            r.OvenRequested,
		AttendeesPlanned:         r.AttendeesPlanned,
		AttendeesFinal:           r.AttendeesFinal,
		Status:                   string(r.Status),
		CleaningServiceWaived:    r.CleaningServiceWaived,
		FirePreparationRequested: r.FirePreparationRequested,
		Notes:                    r.Notes,
		CreatedAt:                r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservations конвертирует список доменных бронирований
func FromDomainReservations(items []*domain.Reservation) []Reservation {
	result := make([]Reservation, 0, len(items))
	for _, r := range items {
		result = append(result, FromDomainReservation(r))
	}
	return result
}
