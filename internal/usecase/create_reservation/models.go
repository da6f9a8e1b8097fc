package create_reservation

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// Settings параметры ресурсного пула и календарных правил
type Settings struct {
	UnitCount       int
	TableCount      int
	ShortNoticeDays int
	RestDays        []time.Weekday

	// EnforceBlocks включает проверку административных блокировок при
	// создании бронирования. Наблюдаемый деплой работает с выключенной
	// проверкой: блокировки видны в расписании, но не отклоняют заявки.
	EnforceBlocks bool
}

// Request запрос на создание бронирования
type Request struct {
	Actor            domain.Actor
	UnitNumber       int
	Date             time.Time
	MealPeriod       string
	Tables           []int
	OvenRequested    bool
	AttendeesPlanned int

	// FireRequested просьба подготовить растопку печи
	FireRequested bool

	// CleaningWaiver явный отказ жильца от уборки консьерж-службой
	CleaningWaiver bool

	Notes *string
}

// Response созданное бронирование с вычисленными сервисными флагами
type Response struct {
	ID                       int64     `json:"id"`
	UnitNumber               int       `json:"unit_number"`
	Date                     string    `json:"date"`
	MealPeriod               string    `json:"meal_period"`
	Tables                   []int     `json:"tables"`
	OvenRequested            bool      `json:"oven_requested"`
	AttendeesPlanned         int       `json:"attendees_planned"`
	Status                   string    `json:"status"`
	CleaningServiceWaived    bool      `json:"cleaning_service_waived"`
	FirePreparationRequested bool      `json:"fire_preparation_requested"`
	Notes                    *string   `json:"notes,omitempty"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:                       r.ID,
		UnitNumber:               r.UnitNumber,
		Date:                     r.Date.Format(domain.DateFormat),
		MealPeriod:               string(r.MealPeriod),
		Tables:                   r.SortedTables(),
		OvenRequested:            r.OvenRequested,
		AttendeesPlanned:         r.AttendeesPlanned,
		Status:                   string(r.Status),
		CleaningServiceWaived:    r.CleaningServiceWaived,
		FirePreparationRequested: r.FirePreparationRequested,
		Notes:                    r.Notes,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}
