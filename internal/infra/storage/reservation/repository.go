package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CHS-ReservationService/pkg/psqlbuilder"
)

// Имена уникальных ограничений схемы, транслируемых в ошибки конфликтов
const (
	constraintTableSlot = "reservation_tables_slot_uniq"
	constraintOvenSlot  = "reservations_oven_slot_uniq"
)

// pqUniqueViolation код PostgreSQL 23505 (unique_violation)
const pqUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"unit_number",
	"reservation_date",
	"meal_period",
	"oven_requested",
	"attendees_planned",
	"attendees_final",
	"status",
	"cleaning_service_waived",
	"fire_preparation_requested",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Претензии на столы хранятся отдельными строками reservation_tables с
// уникальным индексом по (reservation_date, meal_period, table_no): даже при
// сбое сериализуемой транзакции двойная выдача стола невозможна на уровне БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе с претензиями на столы.
// Должен вызываться внутри транзакции (см. pkg/txmanager): вставка идёт в две
// таблицы, а нарушение уникальности претензии транслируется в ErrTableTaken /
// ErrOvenTaken — ту же таксономию, что у детектора конфликтов.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"unit_number",
			"reservation_date",
			"meal_period",
			"oven_requested",
			"attendees_planned",
			"status",
			"cleaning_service_waived",
			"fire_preparation_requested",
			"notes",
		).
		Values(
			res.UnitNumber,
			res.Date,
			res.MealPeriod,
			res.OvenRequested,
			res.AttendeesPlanned,
			res.Status,
			res.CleaningServiceWaived,
			res.FirePreparationRequested,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if err := r.insertTableClaims(ctx, executor, res); err != nil {
		return nil, err
	}

	return res, nil
}

// GetByID получает бронирование по ID вместе с занятыми столами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	if err := r.loadTables(ctx, executor, []*domain.Reservation{res}); err != nil {
		return nil, err
	}

	return res, nil
}

// GetBySlot получает все активные бронирования слота (дата + период).
// Внутри транзакции читает с блокировкой FOR UPDATE — снимок, на котором
// детектор конфликтов принимает решение, согласован с последующей записью.
func (r *Repository) GetBySlot(ctx context.Context, filter domain.SlotFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"reservation_date": filter.Date,
			"meal_period":      filter.MealPeriod,
		}).
		OrderBy("id ASC")

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadTables(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// GetByUnit получает историю бронирований квартиры с фильтрацией по периоду и статусу
func (r *Repository) GetByUnit(ctx context.Context, filter domain.UnitReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"unit_number": filter.UnitNumber}).
		OrderBy("reservation_date DESC, meal_period ASC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnit - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnit - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadTables(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// GetConfirmedByYear получает подтверждённые бронирования за календарный год.
// Используется выгрузкой биллинга.
func (r *Repository) GetConfirmedByYear(ctx context.Context, year int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where("EXTRACT(YEAR FROM reservation_date) = ?", year).
		OrderBy("unit_number ASC, reservation_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByYear - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByYear - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadTables(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// Update обновляет бронирование и пересоздаёт претензии на столы.
// Должен вызываться внутри транзакции вместе с проверкой конфликтов.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("unit_number", res.UnitNumber).
		Set("reservation_date", res.Date).
		Set("meal_period", res.MealPeriod).
		Set("oven_requested", res.OvenRequested).
		Set("attendees_planned", res.AttendeesPlanned).
		Set("cleaning_service_waived", res.CleaningServiceWaived).
		Set("fire_preparation_requested", res.FirePreparationRequested).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return nil, translated
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	res.UpdatedAt = updatedAt.Time

	if err := r.deleteTableClaims(ctx, executor, res.ID); err != nil {
		return nil, err
	}
	if err := r.insertTableClaims(ctx, executor, res); err != nil {
		return nil, err
	}

	return res, nil
}

// Confirm переводит бронирование в статус confirmed с итоговым числом гостей
func (r *Repository) Confirm(ctx context.Context, id int64, attendeesFinal int, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", domain.StatusConfirmed).
		Set("attendees_final", attendeesFinal).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование физически. Отмена в этой системе — именно
// удаление строки: надгробий нет, историю хранит внешний журнал действий.
// Претензии на столы удаляются каскадно.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// insertTableClaims вставляет претензии на столы одной мультистрочной вставкой
func (r *Repository) insertTableClaims(ctx context.Context, executor DBExecutor, res *domain.Reservation) error {
	insertBuilder := psqlbuilder.Insert("reservation_tables").
		Columns("reservation_id", "reservation_date", "meal_period", "table_no")

	for _, table := range res.SortedTables() {
		insertBuilder = insertBuilder.Values(res.ID, res.Date, res.MealPeriod, table)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertTableClaims - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return translated
		}
		return fmt.Errorf("%w: insertTableClaims - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// deleteTableClaims удаляет претензии на столы бронирования
func (r *Repository) deleteTableClaims(ctx context.Context, executor DBExecutor, reservationID int64) error {
	query, args, err := psqlbuilder.Delete("reservation_tables").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteTableClaims - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteTableClaims - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// loadTables подгружает претензии на столы для набора бронирований
func (r *Repository) loadTables(ctx context.Context, executor DBExecutor, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]int64, len(reservations))
	byID := make(map[int64]*domain.Reservation, len(reservations))
	for i, res := range reservations {
		ids[i] = res.ID
		byID[res.ID] = res
		res.Tables = res.Tables[:0]
	}

	query, args, err := psqlbuilder.Select("reservation_id", "table_no").
		From("reservation_tables").
		Where(squirrel.Eq{"reservation_id": ids}).
		OrderBy("reservation_id ASC, table_no ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID int64
		var tableNo int
		if err := rows.Scan(&reservationID, &tableNo); err != nil {
			return fmt.Errorf("%w: loadTables - scan row: %v", ErrScanRow, err)
		}
		if res, ok := byID[reservationID]; ok {
			res.Tables = append(res.Tables, tableNo)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadTables - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UnitNumber,
		&res.Date,
		&res.MealPeriod,
		&res.OvenRequested,
		&res.AttendeesPlanned,
		&res.AttendeesFinal,
		&res.Status,
		&res.CleaningServiceWaived,
		&res.FirePreparationRequested,
		&res.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// translateUniqueViolation транслирует нарушение уникального ограничения
// схемы в ошибку конфликта; для прочих ошибок возвращает nil
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pqUniqueViolation {
		return nil
	}

	switch {
	case pqErr.Constraint == constraintTableSlot,
		strings.Contains(pqErr.Message, constraintTableSlot):
		return ErrTableTaken
	case pqErr.Constraint == constraintOvenSlot,
		strings.Contains(pqErr.Message, constraintOvenSlot):
		return ErrOvenTaken
	default:
		return nil
	}
}
