// Package eligibility вычисляет сервисные флаги бронирования по его дате.
package eligibility

import (
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
)

// Flags сервисные флаги, привязываемые к бронированию при создании и обновлении
type Flags struct {
	CleaningServiceWaived  bool
	FirePreparationAllowed bool
}

// Rules параметры календарных правил
type Rules struct {
	ShortNoticeDays int
	RestDays        []time.Weekday
}

// Resolve вычисляет сервисные флаги для даты бронирования.
//
// Уборка: отказ от уборки (waiver) включается при срочном бронировании, в
// выходной день консьерж-службы или по явной просьбе жильца. Правило сильнее
// вызывающего: если отказ требуется по правилам, запрос "false" игнорируется;
// явная просьба об отказе выполняется всегда.
//
// Растопка: разрешена только по запросу и только вне срочных бронирований и
// выходных дней — в эти дни жильцы топят сами. На доступность печи это не
// влияет: печь бронируется в любой день, её может отклонить только проверка
// конфликтов.
//
// Функция чистая и пересчитывается при каждом изменении даты бронирования,
// так как флаги зависят от текущего дня, а не от дня создания.
func Resolve(date, asOf time.Time, requestedFire, manualCleaningWaiver bool, rules Rules) Flags {
	shortNotice := calendar.IsShortNotice(date, asOf, rules.ShortNoticeDays)
	restDay := calendar.IsRestDay(date, rules.RestDays)

	return Flags{
		CleaningServiceWaived:  shortNotice || restDay || manualCleaningWaiver,
		FirePreparationAllowed: requestedFire && !shortNotice && !restDay,
	}
}
