package create_reservation

import (
	"fmt"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, settings Settings) error {
	if req.UnitNumber < 1 || req.UnitNumber > settings.UnitCount {
		return fmt.Errorf("%w: unit number must be in 1..%d", ErrInvalidInput, settings.UnitCount)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.MealPeriod(req.MealPeriod).IsValid() {
		return fmt.Errorf("%w: unknown meal period %q", ErrInvalidInput, req.MealPeriod)
	}

	if err := validateTables(req.Tables, settings.TableCount); err != nil {
		return err
	}

	if req.AttendeesPlanned <= 0 {
		return fmt.Errorf("%w: attendees_planned must be positive", ErrInvalidInput)
	}
	maxAttendees := len(req.Tables) * domain.AttendeesPerTable
	if req.AttendeesPlanned > maxAttendees {
		return fmt.Errorf("%w: %d attendees do not fit %d tables (cap %d)",
			ErrInvalidInput, req.AttendeesPlanned, len(req.Tables), maxAttendees)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateTables проверяет, что столы из пула и не повторяются
func validateTables(tables []int, tableCount int) error {
	if len(tables) == 0 {
		return fmt.Errorf("%w: at least one table is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(tables))
	for _, t := range tables {
		if t < 1 || t > tableCount {
			return fmt.Errorf("%w: table %d is not in pool 1..%d", ErrInvalidInput, t, tableCount)
		}
		if seen[t] {
			return fmt.Errorf("%w: table %d is listed twice", ErrInvalidInput, t)
		}
		seen[t] = true
	}

	return nil
}

// checkPermissions проверяет право актора создать бронирование для квартиры
func checkPermissions(actor domain.Actor, unitNumber int) error {
	perms := actor.Permissions()
	if perms.ReadOnly {
		return fmt.Errorf("%w: role %s is read-only", ErrPermissionDenied, actor.Role)
	}
	if perms.CanMutateAny {
		return nil
	}
	if !actor.OwnsUnit(unitNumber) {
		return fmt.Errorf("%w: user %d cannot book for unit %d", ErrPermissionDenied, actor.UserID, unitNumber)
	}
	return nil
}
