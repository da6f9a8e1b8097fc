package models

// Line строка выгрузки: одно подтверждённое бронирование и его сумма
type Line struct {
	ReservationID  int64  `json:"reservation_id"`
	Date           string `json:"date"`
	MealPeriod     string `json:"meal_period"`
	AttendeesFinal int    `json:"attendees_final"`
	Amount         int64  `json:"amount"`
}

// UnitSummary итог по квартире за год
type UnitSummary struct {
	UnitNumber       int    `json:"unit_number"`
	ReservationCount int    `json:"reservation_count"`
	TotalAmount      int64  `json:"total_amount"`
	Lines            []Line `json:"lines"`
}

// YearExport годовая выгрузка для правления кооператива
type YearExport struct {
	Year        int           `json:"year"`
	TotalAmount int64         `json:"total_amount"`
	Units       []UnitSummary `json:"units"`
}
