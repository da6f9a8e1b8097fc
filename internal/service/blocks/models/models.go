package models

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// Block блокировка слота в ответе сервиса
type Block struct {
	ID                      int64  `json:"id"`
	Date                    string `json:"date"`
	Coverage                string `json:"coverage"`
	Reason                  string `json:"reason"`
	FirePreparationPrepared bool   `json:"fire_preparation_prepared"`
	CreatedAt               string `json:"created_at"`
}

// CreateRequest запрос на создание блокировки
type CreateRequest struct {
	Date                    string `json:"date"`
	Coverage                string `json:"coverage"`
	Reason                  string `json:"reason"`
	FirePreparationPrepared bool   `json:"fire_preparation_prepared"`
}

// ListResponse список блокировок
type ListResponse struct {
	Blocks []Block `json:"blocks"`
}

// FromDomainBlock конвертирует доменную блокировку в модель ответа
func FromDomainBlock(b *domain.BlockedSlot) Block {
	return Block{
		ID:                      b.ID,
		Date:                    b.Date.Format(domain.DateFormat),
		Coverage:                string(b.Coverage),
		Reason:                  string(b.Reason),
		FirePreparationPrepared: b.FirePreparationPrepared,
		CreatedAt:               b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBlocks конвертирует список доменных блокировок
func FromDomainBlocks(items []*domain.BlockedSlot) []Block {
	result := make([]Block, 0, len(items))
	for _, b := range items {
		result = append(result, FromDomainBlock(b))
	}
	return result
}
