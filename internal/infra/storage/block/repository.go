package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CHS-ReservationService/pkg/psqlbuilder"
)

var blockColumns = []string{
	"id",
	"block_date",
	"coverage",
	"reason",
	"fire_preparation_prepared",
	"created_at",
}

// Repository репозиторий для работы с административными блокировками слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку слота
func (r *Repository) Create(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("block_date", "coverage", "reason", "fire_preparation_prepared").
		Values(block.Date, block.Coverage, block.Reason, block.FirePreparationPrepared).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return block, nil
}

// GetByDate получает все блокировки на указанную дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBlocks(ctx, executor, query, args, "GetByDate")
}

// GetByPeriod получает блокировки за период дат (включительно)
func (r *Repository) GetByPeriod(ctx context.Context, startDate, endDate time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.GtOrEq{"block_date": startDate}).
		Where(squirrel.LtOrEq{"block_date": endDate}).
		OrderBy("block_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBlocks(ctx, executor, query, args, "GetByPeriod")
}

// Delete удаляет блокировку. Уже созданные бронирования не затрагиваются.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
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
		return ErrBlockNotFound
	}

	return nil
}

func (r *Repository) queryBlocks(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.BlockedSlot, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return blocks, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.BlockedSlot, error) {
	var block domain.BlockedSlot
	var createdAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.Date,
		&block.Coverage,
		&block.Reason,
		&block.FirePreparationPrepared,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	block.CreatedAt = createdAt.Time

	return &block, nil
}
