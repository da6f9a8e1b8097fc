// Package conflict проверяет претензии на столы и печь внутри одного слота.
// Пакет чистый: работает со снимком активных бронирований слота, который
// вызывающий обязан читать внутри сериализуемой транзакции (см. pkg/txmanager).
package conflict

import (
	"sort"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// Check проверяет, свободны ли запрошенные столы и печь в слоте.
// existing — все активные бронирования слота (date, mealPeriod); excludeID
// исключает собственное бронирование при обновлении на месте.
//
// Возвращает *TableConflictError с номерами занятых столов, *OvenConflictError,
// если печь уже занята, или nil, если претензий нет.
func Check(candidateTables []int, candidateOven bool, existing []*domain.Reservation, excludeID *int64) error {
	taken := make(map[int]struct{})
	var ovenHolder *domain.Reservation

	for _, r := range existing {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		for _, t := range r.Tables {
			taken[t] = struct{}{}
		}
		if r.OvenRequested && ovenHolder == nil {
			ovenHolder = r
		}
	}

	conflicting := make([]int, 0)
	for _, t := range candidateTables {
		if _, ok := taken[t]; ok {
			conflicting = append(conflicting, t)
		}
	}

	if len(conflicting) > 0 {
		sort.Ints(conflicting)
		return &TableConflictError{Tables: conflicting}
	}

	if candidateOven && ovenHolder != nil {
		return &OvenConflictError{HolderID: ovenHolder.ID}
	}

	return nil
}

// CheckBlocked проверяет, не исключён ли слот административной блокировкой.
// Возвращает *SlotBlockedError с причиной первой накрывающей блокировки.
func CheckBlocked(period domain.MealPeriod, blocks []*domain.BlockedSlot) error {
	for _, b := range blocks {
		if b.Coverage.Covers(period) {
			return &SlotBlockedError{Reason: b.Reason}
		}
	}
	return nil
}
