package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

func defaultRules() Rules {
	return Rules{
		ShortNoticeDays: domain.ShortNoticeDays,
		RestDays:        domain.DefaultRestDays,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_ShortNoticeWaivesCleaningAndDeniesFire(t *testing.T) {
	// Создание 2025-01-06, дата 2025-01-08: 2 дня до даты
	asOf := date(2025, 1, 6)
	flags := Resolve(date(2025, 1, 8), asOf, true, false, defaultRules())

	assert.True(t, flags.CleaningServiceWaived)
	assert.False(t, flags.FirePreparationAllowed)
}

func TestResolve_RestDayWaivesCleaningAndDeniesFire(t *testing.T) {
	// 2025-01-29 — среда, запас 20 дней
	asOf := date(2025, 1, 9)
	flags := Resolve(date(2025, 1, 29), asOf, true, false, defaultRules())

	assert.True(t, flags.CleaningServiceWaived)
	assert.False(t, flags.FirePreparationAllowed)
}

func TestResolve_StandardNoticeRegularDay(t *testing.T) {
	// 2025-01-30 — четверг, запас 21 день
	asOf := date(2025, 1, 9)

	flags := Resolve(date(2025, 1, 30), asOf, true, false, defaultRules())
	assert.False(t, flags.CleaningServiceWaived)
	assert.True(t, flags.FirePreparationAllowed)

	flags = Resolve(date(2025, 1, 30), asOf, false, false, defaultRules())
	assert.False(t, flags.CleaningServiceWaived)
	assert.False(t, flags.FirePreparationAllowed)
}

func TestResolve_ManualWaiverHonoredWhenRulesDoNotRequireIt(t *testing.T) {
	asOf := date(2025, 1, 9)
	flags := Resolve(date(2025, 1, 30), asOf, false, true, defaultRules())

	assert.True(t, flags.CleaningServiceWaived)
}

func TestResolve_RuleWaiverCannotBeUndoneByCaller(t *testing.T) {
	// Срочное бронирование: явный запрос "без отказа" игнорируется
	asOf := date(2025, 1, 6)
	flags := Resolve(date(2025, 1, 8), asOf, false, false, defaultRules())

	assert.True(t, flags.CleaningServiceWaived)
}

func TestResolve_NoticeBoundary(t *testing.T) {
	asOf := date(2025, 1, 6)

	// Ровно 4 дня — ещё срочное
	flags := Resolve(date(2025, 1, 10), asOf, true, false, defaultRules())
	assert.True(t, flags.CleaningServiceWaived)
	assert.False(t, flags.FirePreparationAllowed)

	// 5 дней, 2025-01-11 — суббота: обычный режим
	flags = Resolve(date(2025, 1, 11), asOf, true, false, defaultRules())
	assert.False(t, flags.CleaningServiceWaived)
	assert.True(t, flags.FirePreparationAllowed)
}

func TestResolve_FireAlwaysDeniedOnRestDays(t *testing.T) {
	// Все вторники и среды 2025 года независимо от запаса дней
	asOf := date(2024, 12, 1)
	for d := date(2025, 1, 1); d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Tuesday && d.Weekday() != time.Wednesday {
			continue
		}
		flags := Resolve(d, asOf, true, false, defaultRules())
		assert.False(t, flags.FirePreparationAllowed, "fire must be denied on %s (%s)", d.Format("2006-01-02"), d.Weekday())
		assert.True(t, flags.CleaningServiceWaived, "cleaning must be waived on %s (%s)", d.Format("2006-01-02"), d.Weekday())
	}
}

func TestResolve_Deterministic(t *testing.T) {
	asOf := date(2025, 3, 1)
	target := date(2025, 3, 20)

	first := Resolve(target, asOf, true, false, defaultRules())
	second := Resolve(target, asOf, true, false, defaultRules())

	assert.Equal(t, first, second)
}
