package conflict

import (
	"fmt"
	"strings"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// TableConflictError возвращается, когда хотя бы один из запрошенных столов
// уже занят активным бронированием слота. Tables содержит номера занятых
// столов по возрастанию — для точного сообщения вызывающему.
type TableConflictError struct {
	Tables []int
}

func (e *TableConflictError) Error() string {
	parts := make([]string, len(e.Tables))
	for i, t := range e.Tables {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return fmt.Sprintf("conflict: tables already reserved: %s", strings.Join(parts, ","))
}

// OvenConflictError возвращается, когда печь уже занята в этом слоте
type OvenConflictError struct {
	HolderID int64
}

func (e *OvenConflictError) Error() string {
	return fmt.Sprintf("conflict: oven already reserved by reservation id=%d", e.HolderID)
}

// SlotBlockedError возвращается, когда слот исключён административной
// блокировкой; Reason — причина существующей блокировки
type SlotBlockedError struct {
	Reason domain.BlockReason
}

func (e *SlotBlockedError) Error() string {
	return fmt.Sprintf("conflict: slot is blocked: %s", e.Reason)
}
