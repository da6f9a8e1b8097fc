package conflict

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

func reservation(id int64, tables []int, oven bool) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		UnitNumber:    int(id),
		Date:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		MealPeriod:    domain.PeriodMidday,
		Tables:        tables,
		OvenRequested: oven,
		Status:        domain.StatusPending,
	}
}

func TestCheck_NoExistingReservations(t *testing.T) {
	err := Check([]int{1, 2, 3}, true, nil, nil)
	assert.NoError(t, err)
}

func TestCheck_TableConflictNamesOffendingTables(t *testing.T) {
	existing := []*domain.Reservation{reservation(1, []int{1, 2}, false)}

	err := Check([]int{2, 3}, false, existing, nil)

	var tableErr *TableConflictError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, []int{2}, tableErr.Tables)
}

func TestCheck_MultipleOffendingTablesSorted(t *testing.T) {
	existing := []*domain.Reservation{
		reservation(1, []int{5, 1}, false),
		reservation(2, []int{3}, false),
	}

	err := Check([]int{5, 3, 1}, false, existing, nil)

	var tableErr *TableConflictError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, []int{1, 3, 5}, tableErr.Tables)
}

func TestCheck_DisjointTablesOK(t *testing.T) {
	existing := []*domain.Reservation{
		reservation(1, []int{1, 2}, false),
		reservation(2, []int{3}, false),
	}

	assert.NoError(t, Check([]int{4, 5, 6}, false, existing, nil))
}

func TestCheck_OvenConflict(t *testing.T) {
	existing := []*domain.Reservation{reservation(7, []int{1}, true)}

	err := Check([]int{2}, true, existing, nil)

	var ovenErr *OvenConflictError
	require.ErrorAs(t, err, &ovenErr)
	assert.Equal(t, int64(7), ovenErr.HolderID)
}

func TestCheck_OvenFreeWhenNotRequested(t *testing.T) {
	existing := []*domain.Reservation{reservation(7, []int{1}, true)}

	assert.NoError(t, Check([]int{2}, false, existing, nil))
}

func TestCheck_TableConflictReportedBeforeOvenConflict(t *testing.T) {
	existing := []*domain.Reservation{reservation(7, []int{1}, true)}

	err := Check([]int{1}, true, existing, nil)

	var tableErr *TableConflictError
	require.ErrorAs(t, err, &tableErr)
}

func TestCheck_ExcludeSelfOnUpdate(t *testing.T) {
	selfID := int64(42)
	existing := []*domain.Reservation{
		reservation(selfID, []int{1, 2}, true),
		reservation(2, []int{3}, false),
	}

	// Обновление собственного бронирования на те же столы и печь
	assert.NoError(t, Check([]int{1, 2}, true, existing, &selfID))

	// Чужие столы по-прежнему конфликтуют
	err := Check([]int{3}, false, existing, &selfID)
	var tableErr *TableConflictError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, []int{3}, tableErr.Tables)
}

func TestCheckBlocked(t *testing.T) {
	blocks := []*domain.BlockedSlot{
		{ID: 1, Coverage: domain.CoverMidday, Reason: domain.ReasonMaintenance},
	}

	err := CheckBlocked(domain.PeriodMidday, blocks)
	var blockedErr *SlotBlockedError
	require.ErrorAs(t, err, &blockedErr)
	assert.Equal(t, domain.ReasonMaintenance, blockedErr.Reason)

	assert.NoError(t, CheckBlocked(domain.PeriodEvening, blocks))
}

func TestCheckBlocked_BothCoversEverySeating(t *testing.T) {
	blocks := []*domain.BlockedSlot{
		{ID: 1, Coverage: domain.CoverBoth, Reason: domain.ReasonPrivateEvent},
	}

	assert.Error(t, CheckBlocked(domain.PeriodMidday, blocks))
	assert.Error(t, CheckBlocked(domain.PeriodEvening, blocks))
}

// TestCheck_NoDoubleAllocationProperty прогоняет случайные последовательности
// заявок через детектор и проверяет инвариант слота: столы принятых
// бронирований не пересекаются, печь занята не более чем одним.
func TestCheck_NoDoubleAllocationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for run := 0; run < 200; run++ {
		accepted := make([]*domain.Reservation, 0)
		nextID := int64(1)

		for attempt := 0; attempt < 20; attempt++ {
			tables := randomTables(rng)
			oven := rng.Intn(2) == 0

			err := Check(tables, oven, accepted, nil)
			if err != nil {
				var tableErr *TableConflictError
				var ovenErr *OvenConflictError
				require.True(t, errors.As(err, &tableErr) || errors.As(err, &ovenErr),
					"unexpected error kind: %v", err)
				continue
			}

			accepted = append(accepted, reservation(nextID, tables, oven))
			nextID++
		}

		assertSlotInvariant(t, accepted)
	}
}

func randomTables(rng *rand.Rand) []int {
	count := 1 + rng.Intn(3)
	seen := make(map[int]struct{})
	tables := make([]int, 0, count)
	for len(tables) < count {
		table := 1 + rng.Intn(domain.DefaultTableCount)
		if _, ok := seen[table]; ok {
			continue
		}
		seen[table] = struct{}{}
		tables = append(tables, table)
	}
	return tables
}

func assertSlotInvariant(t *testing.T, reservations []*domain.Reservation) {
	t.Helper()

	claimed := make(map[int]int64)
	ovenCount := 0

	for _, r := range reservations {
		for _, table := range r.Tables {
			if holder, ok := claimed[table]; ok {
				t.Fatalf("table %d claimed by both reservation %d and %d", table, holder, r.ID)
			}
			claimed[table] = r.ID
		}
		if r.OvenRequested {
			ovenCount++
		}
	}

	assert.LessOrEqual(t, ovenCount, 1, "at most one reservation may hold the oven")
}
