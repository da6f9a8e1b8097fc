package update_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	if req.MealPeriod != nil && !domain.MealPeriod(*req.MealPeriod).IsValid() {
		return fmt.Errorf("%w: unknown meal period %q", ErrInvalidInput, *req.MealPeriod)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateMerged проверяет бронирование после применения изменений
func validateMerged(r *domain.Reservation, settings Settings) error {
	if len(r.Tables) == 0 {
		return fmt.Errorf("%w: at least one table is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(r.Tables))
	for _, t := range r.Tables {
		if t < 1 || t > settings.TableCount {
			return fmt.Errorf("%w: table %d is not in pool 1..%d", ErrInvalidInput, t, settings.TableCount)
		}
		if seen[t] {
			return fmt.Errorf("%w: table %d is listed twice", ErrInvalidInput, t)
		}
		seen[t] = true
	}

	if r.AttendeesPlanned <= 0 {
		return fmt.Errorf("%w: attendees_planned must be positive", ErrInvalidInput)
	}
	if r.AttendeesPlanned > r.AttendeeCap() {
		return fmt.Errorf("%w: %d attendees do not fit %d tables (cap %d)",
			ErrInvalidInput, r.AttendeesPlanned, len(r.Tables), r.AttendeeCap())
	}

	return nil
}

// checkPermissions проверяет право актора изменить бронирование.
// Владелец не может трогать подтверждённое бронирование с прошедшей датой,
// привилегированные роли правят историю без ограничений.
func checkPermissions(actor domain.Actor, reservation *domain.Reservation, now time.Time) error {
	perms := actor.Permissions()
	if perms.ReadOnly {
		return fmt.Errorf("%w: role %s is read-only", ErrPermissionDenied, actor.Role)
	}
	if perms.CanMutateAny {
		return nil
	}
	if !actor.OwnsUnit(reservation.UnitNumber) {
		return fmt.Errorf("%w: user %d does not own unit %d", ErrPermissionDenied, actor.UserID, reservation.UnitNumber)
	}
	if reservation.IsConfirmed() && calendar.IsPast(reservation.Date, now) {
		return fmt.Errorf("%w: owner cannot modify a confirmed reservation in the past", ErrPermissionDenied)
	}
	return nil
}
