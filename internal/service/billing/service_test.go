package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

type mockReservationRepo struct {
	getConfirmedByYear func(ctx context.Context, year int) ([]*domain.Reservation, error)
}

func (m *mockReservationRepo) GetConfirmedByYear(ctx context.Context, year int) ([]*domain.Reservation, error) {
	return m.getConfirmedByYear(ctx, year)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmed(id int64, unit int, date, createdAt time.Time, attendeesFinal int) *domain.Reservation {
	return &domain.Reservation{
		ID:             id,
		UnitNumber:     unit,
		Date:           date,
		MealPeriod:     domain.PeriodEvening,
		Tables:         []int{1, 2},
		AttendeesFinal: &attendeesFinal,
		Status:         domain.StatusConfirmed,
		CreatedAt:      createdAt,
	}
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	auditor := domain.Actor{UserID: 3, Role: domain.RoleAuditor}

	t.Run("groups amounts by unit", func(t *testing.T) {
		repo := &mockReservationRepo{
			getConfirmedByYear: func(_ context.Context, year int) ([]*domain.Reservation, error) {
				assert.Equal(t, 2025, year)
				return []*domain.Reservation{
					// вне сезона: бесплатно
					confirmed(1, 12, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
						time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), 10),
					// сезон, заблаговременно, 10 × 7 = 70
					confirmed(2, 12, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
						time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 10),
					// сезон, срочно (3 дня): фиксированные 30
					confirmed(3, 30, time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC),
						time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 12),
					// сезон, мало гостей: минимум 30 вместо 2 × 7 = 14
					confirmed(4, 30, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
						time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 2),
				}, nil
			},
		}
		svc := New(repo, domain.DefaultTariff, nopLogger{})

		export, err := svc.Export(ctx, auditor, 2025)

		assert.NoError(t, err)
		assert.Equal(t, 2025, export.Year)
		assert.Equal(t, int64(130), export.TotalAmount)
		assert.Len(t, export.Units, 2)

		unit12 := export.Units[0]
		assert.Equal(t, 12, unit12.UnitNumber)
		assert.Equal(t, 2, unit12.ReservationCount)
		assert.Equal(t, int64(70), unit12.TotalAmount)
		assert.Equal(t, int64(0), unit12.Lines[0].Amount)
		assert.Equal(t, int64(70), unit12.Lines[1].Amount)

		unit30 := export.Units[1]
		assert.Equal(t, 30, unit30.UnitNumber)
		assert.Equal(t, int64(60), unit30.TotalAmount)
	})

	t.Run("falls back to planned attendees when final is missing", func(t *testing.T) {
		repo := &mockReservationRepo{
			getConfirmedByYear: func(_ context.Context, _ int) ([]*domain.Reservation, error) {
				r := confirmed(1, 12, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
					time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 0)
				r.AttendeesFinal = nil
				r.AttendeesPlanned = 6
				return []*domain.Reservation{r}, nil
			},
		}
		svc := New(repo, domain.DefaultTariff, nopLogger{})

		export, err := svc.Export(ctx, auditor, 2025)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), export.TotalAmount)
	})

	t.Run("resident cannot export", func(t *testing.T) {
		svc := New(&mockReservationRepo{}, domain.DefaultTariff, nopLogger{})

		resident := domain.Actor{UserID: 1, UnitNumber: 12, Role: domain.RoleResident}
		export, err := svc.Export(ctx, resident, 2025)

		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, export)
	})

	t.Run("year out of range", func(t *testing.T) {
		svc := New(&mockReservationRepo{}, domain.DefaultTariff, nopLogger{})

		export, err := svc.Export(ctx, auditor, 1997)

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, export)
	})
}
