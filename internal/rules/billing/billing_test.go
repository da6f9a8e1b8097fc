package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute_OffSeasonIsFree(t *testing.T) {
	createdAt := date(2025, 6, 1)

	for _, attendees := range []int{1, 3, 10, 48} {
		amount := Compute(date(2025, 7, 15), createdAt, attendees, domain.DefaultTariff)
		assert.Equal(t, int64(0), amount, "attendees=%d", attendees)
	}

	// Границы окна май–ноябрь
	assert.Equal(t, int64(0), Compute(date(2025, 5, 1), date(2025, 4, 1), 10, domain.DefaultTariff))
	assert.Equal(t, int64(0), Compute(date(2025, 11, 30), date(2025, 11, 1), 10, domain.DefaultTariff))
}

func TestCompute_InSeasonShortNoticeFlat(t *testing.T) {
	// Создано 2025-01-29, дата 2025-02-01: 3 полных дня
	amount := Compute(date(2025, 2, 1), date(2025, 1, 29), 10, domain.DefaultTariff)
	assert.Equal(t, int64(30), amount)

	// 4 дня — всё ещё срочный тариф
	amount = Compute(date(2025, 2, 1), date(2025, 1, 28), 10, domain.DefaultTariff)
	assert.Equal(t, int64(30), amount)
}

func TestCompute_ShortNoticeBoundary(t *testing.T) {
	// Ровно 5 полных дней — уже стандартный тариф
	amount := Compute(date(2025, 2, 1), date(2025, 1, 27), 10, domain.DefaultTariff)
	assert.Equal(t, int64(70), amount)
}

func TestCompute_InSeasonStandardMinimum(t *testing.T) {
	createdAt := date(2025, 1, 12)

	// 3 × 7 = 21 < 30 — действует минимум
	amount := Compute(date(2025, 2, 1), createdAt, 3, domain.DefaultTariff)
	assert.Equal(t, int64(30), amount)
}

func TestCompute_InSeasonStandardPerPerson(t *testing.T) {
	createdAt := date(2025, 1, 12)

	amount := Compute(date(2025, 2, 1), createdAt, 10, domain.DefaultTariff)
	assert.Equal(t, int64(70), amount)
}

func TestCompute_MinimumBoundary(t *testing.T) {
	createdAt := date(2025, 1, 1)

	// 5 × 7 = 35 > 30
	assert.Equal(t, int64(35), Compute(date(2025, 2, 1), createdAt, 5, domain.DefaultTariff))
	// 4 × 7 = 28 < 30
	assert.Equal(t, int64(30), Compute(date(2025, 2, 1), createdAt, 4, domain.DefaultTariff))
}

func TestCompute_CreatedAtTimeOfDayIrrelevant(t *testing.T) {
	// Момент создания с любым временем суток даёт тот же результат
	created := time.Date(2025, 1, 27, 23, 59, 59, 0, time.UTC)
	amount := Compute(date(2025, 2, 1), created, 10, domain.DefaultTariff)
	assert.Equal(t, int64(70), amount)
}
