package create_reservation

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	createReservation "github.com/m04kA/CHS-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	UnitNumber       int     `json:"unitNumber"`
	Date             string  `json:"date"` // "2025-07-17"
	MealPeriod       string  `json:"mealPeriod"`
	Tables           []int   `json:"tables"`
	OvenRequested    bool    `json:"ovenRequested"`
	AttendeesPlanned int     `json:"attendeesPlanned"`
	FireRequested    bool    `json:"fireRequested"`
	CleaningWaiver   bool    `json:"cleaningWaiver"`
	Notes            *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(actor domain.Actor) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Actor:            actor,
		UnitNumber:       r.UnitNumber,
		Date:             date,
		MealPeriod:       r.MealPeriod,
		Tables:           r.Tables,
		OvenRequested:    r.OvenRequested,
		AttendeesPlanned: r.AttendeesPlanned,
		FireRequested:    r.FireRequested,
		CleaningWaiver:   r.CleaningWaiver,
		Notes:            r.Notes,
	}, nil
}
