package update_reservation

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	updateReservation "github.com/m04kA/CHS-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateReservationRequest struct {
	Date             *string `json:"date,omitempty"` // "2025-07-17"
	MealPeriod       *string `json:"mealPeriod,omitempty"`
	Tables           []int   `json:"tables,omitempty"`
	OvenRequested    *bool   `json:"ovenRequested,omitempty"`
	AttendeesPlanned *int    `json:"attendeesPlanned,omitempty"`
	FireRequested    *bool   `json:"fireRequested,omitempty"`
	CleaningWaiver   *bool   `json:"cleaningWaiver,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(actor domain.Actor, reservationID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		Actor:            actor,
		ReservationID:    reservationID,
		MealPeriod:       r.MealPeriod,
		Tables:           r.Tables,
		OvenRequested:    r.OvenRequested,
		AttendeesPlanned: r.AttendeesPlanned,
		FireRequested:    r.FireRequested,
		CleaningWaiver:   r.CleaningWaiver,
		Notes:            r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
