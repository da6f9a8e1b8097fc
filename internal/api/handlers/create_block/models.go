package create_block

import "github.com/m04kA/CHS-ReservationService/internal/service/blocks/models"

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date                    string `json:"date"` // "2025-07-17"
	Coverage                string `json:"coverage"`
	Reason                  string `json:"reason"`
	FirePreparationPrepared bool   `json:"firePreparationPrepared"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest() models.CreateRequest {
	return models.CreateRequest{
		Date:                    r.Date,
		Coverage:                r.Coverage,
		Reason:                  r.Reason,
		FirePreparationPrepared: r.FirePreparationPrepared,
	}
}
