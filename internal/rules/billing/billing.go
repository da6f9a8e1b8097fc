// Package billing рассчитывает стоимость подтверждённого бронирования.
package billing

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
)

// Compute возвращает сумму к оплате за подтверждённое бронирование.
// Чистая функция трёх входов (дата, момент создания, итоговое число гостей)
// и тарифа; вычисляется на этапе выгрузки, не при подтверждении.
//
// Тарифные ступени в порядке проверки:
//  1. Вне сезона — бесплатно.
//  2. В сезон при создании менее чем за 5 полных дней до даты — фиксированная
//     сумма ShortNoticeFlat.
//  3. В сезон — максимум из MinimumAmount и attendeesFinal × PerPersonRate.
func Compute(date, createdAt time.Time, attendeesFinal int, tariff domain.Tariff) int64 {
	if calendar.IsOffSeason(date, tariff.OffSeasonStart, tariff.OffSeasonEnd) {
		return 0
	}

	if calendar.NoticeDays(date, createdAt) < 5 {
		return tariff.ShortNoticeFlat
	}

	amount := int64(attendeesFinal) * tariff.PerPersonRate
	if amount < tariff.MinimumAmount {
		return tariff.MinimumAmount
	}
	return amount
}
