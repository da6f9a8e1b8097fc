package domain

import "time"

// Resource pool of the observed deployment.
// Units and tables are configurable (config.toml), these are the defaults.
const (
	DefaultUnitCount  = 48
	DefaultTableCount = 6

	// AttendeesPerTable per-table attendee cap used at confirmation
	AttendeesPerTable = 8
)

// Eligibility rule constants
const (
	// ShortNoticeDays максимальное количество дней до даты, при котором
	// бронирование считается срочным (noticeDays <= ShortNoticeDays)
	ShortNoticeDays = 4
)

// DefaultRestDays дни недели, когда консьерж-служба не работает
var DefaultRestDays = []time.Weekday{time.Tuesday, time.Wednesday}

// Tariff параметры расчёта стоимости подтверждённого бронирования
type Tariff struct {
	MinimumAmount   int64 // минимальная сумма в сезон
	PerPersonRate   int64 // ставка за человека в сезон
	ShortNoticeFlat int64 // фиксированная сумма при срочном бронировании в сезон
	OffSeasonStart  time.Month
	OffSeasonEnd    time.Month
}

// DefaultTariff тариф наблюдаемого деплоя: минимум 30, ставка 7,
// срочный тариф 30, вне сезона (май–ноябрь) бесплатно
var DefaultTariff = Tariff{
	MinimumAmount:   30,
	PerPersonRate:   7,
	ShortNoticeFlat: 30,
	OffSeasonStart:  time.May,
	OffSeasonEnd:    time.November,
}

// Validation constants
const (
	MaxNotesLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
