// Package calendar содержит чистые календарные правила движка бронирования.
// Все функции принимают момент "сейчас" (asOf) явным параметром и не читают
// системные часы, чтобы правила оставались воспроизводимыми в тестах.
package calendar

import "time"

// Day нормализует момент времени к границе дня.
// Сравнение дат в движке всегда ведётся по границам дней, а не по точным
// меткам времени, так как вызывающие могут передавать любое время суток.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsPast проверяет, что дата раньше дня asOf
func IsPast(date, asOf time.Time) bool {
	return Day(date).Before(Day(asOf))
}

// NoticeDays возвращает количество целых дней между днём asOf и датой.
// Для даты в прошлом значение отрицательное. Календарные дни считаются
// в UTC, чтобы переводы часов не давали неполные сутки.
func NoticeDays(date, asOf time.Time) int {
	return int(utcDay(date).Sub(utcDay(asOf)).Hours() / 24)
}

// utcDay переносит календарную дату в UTC с нулевым временем
func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsShortNotice проверяет, что до даты осталось не больше shortNoticeDays дней
func IsShortNotice(date, asOf time.Time, shortNoticeDays int) bool {
	return NoticeDays(date, asOf) <= shortNoticeDays
}

// IsRestDay проверяет, что день недели даты входит в выходные консьерж-службы
func IsRestDay(date time.Time, restDays []time.Weekday) bool {
	weekday := date.Weekday()
	for _, d := range restDays {
		if weekday == d {
			return true
		}
	}
	return false
}

// IsOffSeason проверяет, что месяц даты попадает в несезонное окно.
// Окно задаётся включительно с обеих сторон и может переходить через
// границу года (например, ноябрь–февраль).
func IsOffSeason(date time.Time, start, end time.Month) bool {
	m := date.Month()
	if start <= end {
		return m >= start && m <= end
	}
	return m >= start || m <= end
}
