package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
	storage "github.com/m04kA/CHS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"
)

type mockReservationRepo struct {
	getByID   func(ctx context.Context, id int64) (*domain.Reservation, error)
	getByUnit func(ctx context.Context, filter domain.UnitReservationsFilter) ([]*domain.Reservation, error)
	getBySlot func(ctx context.Context, filter domain.SlotFilter) ([]*domain.Reservation, error)
	confirm   func(ctx context.Context, id int64, attendeesFinal int, notes *string) error
	delete    func(ctx context.Context, id int64) error
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return m.getByID(ctx, id)
}

func (m *mockReservationRepo) GetByUnit(ctx context.Context, filter domain.UnitReservationsFilter) ([]*domain.Reservation, error) {
	return m.getByUnit(ctx, filter)
}

func (m *mockReservationRepo) GetBySlot(ctx context.Context, filter domain.SlotFilter) ([]*domain.Reservation, error) {
	return m.getBySlot(ctx, filter)
}

func (m *mockReservationRepo) Confirm(ctx context.Context, id int64, attendeesFinal int, notes *string) error {
	return m.confirm(ctx, id, attendeesFinal, notes)
}

func (m *mockReservationRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockBlockRepo struct {
	getByDate func(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

func (m *mockBlockRepo) GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	return m.getByDate(ctx, date)
}

type mockActivityLog struct {
	entries []activitylog.Entry
}

func (m *mockActivityLog) AppendBestEffort(_ context.Context, entry activitylog.Entry) {
	m.entries = append(m.entries, entry)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pendingReservation(id int64, unit int) *domain.Reservation {
	return &domain.Reservation{
		ID:               id,
		UnitNumber:       unit,
		Date:             date(2025, time.July, 20),
		MealPeriod:       domain.PeriodEvening,
		Tables:           []int{2, 3},
		AttendeesPlanned: 10,
		Status:           domain.StatusPending,
		CreatedAt:        date(2025, time.July, 1),
		UpdatedAt:        date(2025, time.July, 1),
	}
}

func newTestService(repo ReservationRepository, blocks BlockRepository, log *mockActivityLog, now time.Time) *Service {
	return New(repo, blocks, log, &fixedTime{now: now}, nopLogger{}, domain.DefaultTableCount)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepo{
		getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
			if id != 7 {
				return nil, storage.ErrReservationNotFound
			}
			return pendingReservation(7, 12), nil
		},
	}
	svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

	t.Run("owner sees own reservation", func(t *testing.T) {
		actor := domain.Actor{UserID: 1, UnitNumber: 12, Role: domain.RoleResident}

		result, err := svc.GetByID(ctx, actor, 7)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, []int{2, 3}, result.Tables)
		assert.Equal(t, "pending", result.Status)
	})

	t.Run("other resident is rejected", func(t *testing.T) {
		actor := domain.Actor{UserID: 2, UnitNumber: 30, Role: domain.RoleResident}

		result, err := svc.GetByID(ctx, actor, 7)

		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, result)
	})

	t.Run("auditor sees any reservation", func(t *testing.T) {
		actor := domain.Actor{UserID: 3, Role: domain.RoleAuditor}

		result, err := svc.GetByID(ctx, actor, 7)

		assert.NoError(t, err)
		assert.Equal(t, 12, result.UnitNumber)
	})

	t.Run("missing reservation", func(t *testing.T) {
		actor := domain.Actor{UserID: 3, Role: domain.RoleManager}

		result, err := svc.GetByID(ctx, actor, 99)

		assert.ErrorIs(t, err, ErrReservationNotFound)
		assert.Nil(t, result)
	})
}

func TestService_GetByUnit(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepo{
		getByUnit: func(_ context.Context, filter domain.UnitReservationsFilter) ([]*domain.Reservation, error) {
			assert.Equal(t, 12, filter.UnitNumber)
			return []*domain.Reservation{pendingReservation(7, 12)}, nil
		},
	}
	svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

	t.Run("owner lists own unit", func(t *testing.T) {
		actor := domain.Actor{UserID: 1, UnitNumber: 12, Role: domain.RoleResident}

		result, err := svc.GetByUnit(ctx, actor, domain.UnitReservationsFilter{UnitNumber: 12})

		assert.NoError(t, err)
		assert.Len(t, result.Reservations, 1)
	})

	t.Run("foreign unit is rejected for resident", func(t *testing.T) {
		actor := domain.Actor{UserID: 2, UnitNumber: 30, Role: domain.RoleResident}

		result, err := svc.GetByUnit(ctx, actor, domain.UnitReservationsFilter{UnitNumber: 12})

		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, result)
	})
}

func TestService_GetDaySchedule(t *testing.T) {
	ctx := context.Background()
	day := date(2025, time.July, 20)

	repo := &mockReservationRepo{
		getBySlot: func(_ context.Context, filter domain.SlotFilter) ([]*domain.Reservation, error) {
			if filter.MealPeriod == domain.PeriodEvening {
				return []*domain.Reservation{pendingReservation(7, 12)}, nil
			}
			return nil, nil
		},
	}
	blocks := &mockBlockRepo{
		getByDate: func(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
			return []*domain.BlockedSlot{
				{ID: 1, Date: day, Coverage: domain.CoverMidday, Reason: domain.ReasonMaintenance},
			}, nil
		},
	}
	svc := newTestService(repo, blocks, &mockActivityLog{}, date(2025, time.July, 10))

	schedule, err := svc.GetDaySchedule(ctx, day)

	assert.NoError(t, err)
	assert.Equal(t, "2025-07-20", schedule.Date)
	assert.Len(t, schedule.Slots, 2)

	midday := schedule.Slots[0]
	assert.Equal(t, "midday", midday.MealPeriod)
	assert.Empty(t, midday.ClaimedTables)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, midday.FreeTables)
	assert.True(t, midday.Blocked)
	assert.Equal(t, "maintenance", *midday.BlockReason)

	evening := schedule.Slots[1]
	assert.Equal(t, []int{2, 3}, evening.ClaimedTables)
	assert.Equal(t, []int{1, 4, 5, 6}, evening.FreeTables)
	assert.False(t, evening.Blocked)
	assert.Len(t, evening.Reservations, 1)
}

func TestService_Confirm(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: 1, UnitNumber: 12, Role: domain.RoleResident}

	t.Run("defaults attendees_final to planned", func(t *testing.T) {
		var gotFinal int
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				return pendingReservation(id, 12), nil
			},
			confirm: func(_ context.Context, _ int64, attendeesFinal int, _ *string) error {
				gotFinal = attendeesFinal
				return nil
			},
		}
		log := &mockActivityLog{}
		svc := newTestService(repo, nil, log, date(2025, time.July, 10))

		_, err := svc.Confirm(ctx, owner, 7, models.ConfirmRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 10, gotFinal)
		assert.Len(t, log.entries, 1)
		assert.Equal(t, "reservation.confirmed", log.entries[0].Action)
	})

	t.Run("explicit attendees_final within cap", func(t *testing.T) {
		var gotFinal int
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				return pendingReservation(id, 12), nil
			},
			confirm: func(_ context.Context, _ int64, attendeesFinal int, _ *string) error {
				gotFinal = attendeesFinal
				return nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

		final := 16
		_, err := svc.Confirm(ctx, owner, 7, models.ConfirmRequest{AttendeesFinal: &final})

		assert.NoError(t, err)
		assert.Equal(t, 16, gotFinal)
	})

	t.Run("attendees_final above table capacity", func(t *testing.T) {
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				return pendingReservation(id, 12), nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

		final := 17 // два стола вмещают 16
		result, err := svc.Confirm(ctx, owner, 7, models.ConfirmRequest{AttendeesFinal: &final})

		assert.ErrorIs(t, err, ErrAttendeeCapExceeded)
		assert.Nil(t, result)
	})

	t.Run("already confirmed", func(t *testing.T) {
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				r := pendingReservation(id, 12)
				r.Status = domain.StatusConfirmed
				return r, nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

		result, err := svc.Confirm(ctx, owner, 7, models.ConfirmRequest{})

		assert.ErrorIs(t, err, ErrAlreadyConfirmed)
		assert.Nil(t, result)
	})

	t.Run("auditor cannot confirm", func(t *testing.T) {
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				return pendingReservation(id, 12), nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

		auditor := domain.Actor{UserID: 5, Role: domain.RoleAuditor}
		result, err := svc.Confirm(ctx, auditor, 7, models.ConfirmRequest{})

		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, result)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: 1, UnitNumber: 12, Role: domain.RoleResident}
	manager := domain.Actor{UserID: 9, Role: domain.RoleManager}

	t.Run("owner cancels pending reservation", func(t *testing.T) {
		deleted := false
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				return pendingReservation(id, 12), nil
			},
			delete: func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			},
		}
		log := &mockActivityLog{}
		svc := newTestService(repo, nil, log, date(2025, time.July, 10))

		err := svc.Cancel(ctx, owner, 7)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.Len(t, log.entries, 1)
		assert.Equal(t, "reservation.cancelled", log.entries[0].Action)
	})

	t.Run("owner cannot cancel confirmed reservation in the past", func(t *testing.T) {
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				r := pendingReservation(id, 12)
				r.Status = domain.StatusConfirmed
				return r, nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.August, 1))

		err := svc.Cancel(ctx, owner, 7)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("owner cancels confirmed reservation in the future", func(t *testing.T) {
		deleted := false
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				r := pendingReservation(id, 12)
				r.Status = domain.StatusConfirmed
				return r, nil
			},
			delete: func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

		err := svc.Cancel(ctx, owner, 7)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("manager cancels confirmed reservation in the past", func(t *testing.T) {
		deleted := false
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				r := pendingReservation(id, 12)
				r.Status = domain.StatusConfirmed
				return r, nil
			},
			delete: func(_ context.Context, _ int64) error {
				deleted = true
				return nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.August, 1))

		err := svc.Cancel(ctx, manager, 7)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("foreign resident cannot cancel", func(t *testing.T) {
		repo := &mockReservationRepo{
			getByID: func(_ context.Context, id int64) (*domain.Reservation, error) {
				return pendingReservation(id, 12), nil
			},
		}
		svc := newTestService(repo, nil, &mockActivityLog{}, date(2025, time.July, 10))

		stranger := domain.Actor{UserID: 2, UnitNumber: 30, Role: domain.RoleResident}
		err := svc.Cancel(ctx, stranger, 7)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
