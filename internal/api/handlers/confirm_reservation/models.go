package confirm_reservation

import "github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"

// ConfirmReservationRequest HTTP request model
type ConfirmReservationRequest struct {
	AttendeesFinal *int    `json:"attendeesFinal,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ConfirmReservationRequest) ToServiceRequest() models.ConfirmRequest {
	return models.ConfirmRequest{
		AttendeesFinal: r.AttendeesFinal,
		Notes:          r.Notes,
	}
}
