package reservation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Repository) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	repo := NewRepository(db)

	return db, mock, repo
}

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "unit_number", "reservation_date", "meal_period", "oven_requested",
		"attendees_planned", "attendees_final", "status",
		"cleaning_service_waived", "fire_preparation_requested", "notes",
		"created_at", "updated_at",
	})
}

func TestCreate_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(10), now, now))

	mock.ExpectExec(`INSERT INTO reservation_tables`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	res := &domain.Reservation{
		UnitNumber:       12,
		Date:             time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		MealPeriod:       domain.PeriodMidday,
		Tables:           []int{2, 1},
		AttendeesPlanned: 6,
		Status:           domain.StatusPending,
	}

	created, err := repo.Create(context.Background(), res)

	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_TableUniqueViolationTranslated(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(10), now, now))

	mock.ExpectExec(`INSERT INTO reservation_tables`).
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "reservation_tables_slot_uniq",
		})

	res := &domain.Reservation{
		UnitNumber:       12,
		Date:             time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		MealPeriod:       domain.PeriodMidday,
		Tables:           []int{2},
		AttendeesPlanned: 4,
		Status:           domain.StatusPending,
	}

	_, err := repo.Create(context.Background(), res)

	assert.ErrorIs(t, err, ErrTableTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_OvenUniqueViolationTranslated(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "reservations_oven_slot_uniq",
		})

	res := &domain.Reservation{
		UnitNumber:       12,
		Date:             time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		MealPeriod:       domain.PeriodEvening,
		Tables:           []int{1},
		OvenRequested:    true,
		AttendeesPlanned: 4,
		Status:           domain.StatusPending,
	}

	_, err := repo.Create(context.Background(), res)

	assert.ErrorIs(t, err, ErrOvenTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(reservationRows().
			AddRow(int64(10), 12, date, "midday", false, 6, nil, "pending", false, true, nil, now, now))

	mock.ExpectQuery(`SELECT reservation_id, table_no FROM reservation_tables`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "table_no"}).
			AddRow(int64(10), 1).
			AddRow(int64(10), 2))

	res, err := repo.GetByID(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 12, res.UnitNumber)
	assert.Equal(t, domain.PeriodMidday, res.MealPeriod)
	assert.Equal(t, []int{1, 2}, res.Tables)
	assert.Equal(t, domain.StatusPending, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(reservationRows())

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlot_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM reservations WHERE`).
		WillReturnRows(reservationRows().
			AddRow(int64(1), 5, date, "midday", true, 4, nil, "pending", false, false, nil, now, now).
			AddRow(int64(2), 9, date, "midday", false, 8, nil, "confirmed", true, false, nil, now, now))

	mock.ExpectQuery(`SELECT reservation_id, table_no FROM reservation_tables`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "table_no"}).
			AddRow(int64(1), 3).
			AddRow(int64(2), 1).
			AddRow(int64(2), 2))

	reservations, err := repo.GetBySlot(context.Background(), domain.SlotFilter{
		Date:       date,
		MealPeriod: domain.PeriodMidday,
	})

	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, []int{3}, reservations[0].Tables)
	assert.True(t, reservations[0].OvenRequested)
	assert.Equal(t, []int{1, 2}, reservations[1].Tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlot_EmptySlot(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM reservations WHERE`).
		WillReturnRows(reservationRows())

	reservations, err := repo.GetBySlot(context.Background(), domain.SlotFilter{
		Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		MealPeriod: domain.PeriodEvening,
	})

	require.NoError(t, err)
	assert.Len(t, reservations, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE reservations SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Confirm(context.Background(), 10, 8, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE reservations SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Confirm(context.Background(), 99, 8, nil)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reservations`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 10)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reservations`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
