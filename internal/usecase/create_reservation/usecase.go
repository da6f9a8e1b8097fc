package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
	storage "github.com/m04kA/CHS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/CHS-ReservationService/internal/notifier"
	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
	"github.com/m04kA/CHS-ReservationService/internal/rules/conflict"
	"github.com/m04kA/CHS-ReservationService/internal/rules/eligibility"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	blockRepo       BlockRepository
	txManager       TransactionManager
	activityLog     ActivityLog
	events          Notifier
	timeProvider    TimeProvider
	logger          Logger
	settings        Settings
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	activityLog ActivityLog,
	events Notifier,
	logger Logger,
	settings Settings,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blockRepo:       blockRepo,
		txManager:       txManager,
		activityLog:     activityLog,
		events:          events,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		settings:        settings,
	}
}

// Execute выполняет use case создания бронирования.
// Претензии на столы и печь проверяются в сериализуемой транзакции,
// чтобы два жильца не получили один стол в одном слоте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, unit=%d, date=%s, period=%s, tables=%v, oven=%t",
		req.Actor.UserID, req.UnitNumber, req.Date.Format(domain.DateFormat), req.MealPeriod, req.Tables, req.OvenRequested)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.settings); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав актора
	if err := checkPermissions(req.Actor, req.UnitNumber); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 3. Дата не может быть в прошлом
	now := uc.timeProvider.Now()
	day := calendar.Day(req.Date)
	if calendar.IsPast(day, now) {
		uc.logger.Warn("CreateReservation: date %s is in the past", day.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	period := domain.MealPeriod(req.MealPeriod)

	var result *domain.Reservation

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Читаем все бронирования слота с блокировкой (FOR UPDATE)
		existing, err := uc.reservationRepo.GetBySlot(txCtx, domain.SlotFilter{
			Date:       day,
			MealPeriod: period,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get slot reservations: %v", err)
			return fmt.Errorf("%w: failed to get slot reservations: %v", ErrInternal, err)
		}

		// 4.2. Проверяем претензии на столы и печь
		if err := uc.checkConflicts(req, existing); err != nil {
			return err
		}

		// 4.3. Проверяем административные блокировки, если проверка включена
		if uc.settings.EnforceBlocks {
			blocks, err := uc.blockRepo.GetByDate(txCtx, day)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get blocks: %v", err)
				return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
			}
			if err := conflict.CheckBlocked(period, blocks); err != nil {
				var blocked *conflict.SlotBlockedError
				if errors.As(err, &blocked) {
					uc.logger.Warn("CreateReservation: slot %s/%s is blocked: %s", day.Format(domain.DateFormat), period, blocked.Reason)
					return fmt.Errorf("%w: %s", ErrSlotBlocked, blocked.Reason)
				}
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 4.4. Вычисляем сервисные флаги по дате
		flags := eligibility.Resolve(day, now, req.FireRequested, req.CleaningWaiver, eligibility.Rules{
			ShortNoticeDays: uc.settings.ShortNoticeDays,
			RestDays:        uc.settings.RestDays,
		})

		reservation := &domain.Reservation{
			UnitNumber:               req.UnitNumber,
			Date:                     day,
			MealPeriod:               period,
			Tables:                   req.Tables,
			OvenRequested:            req.OvenRequested,
			AttendeesPlanned:         req.AttendeesPlanned,
			Status:                   domain.StatusPending,
			CleaningServiceWaived:    flags.CleaningServiceWaived,
			FirePreparationRequested: flags.FirePreparationAllowed,
			Notes:                    req.Notes,
		}

		// 4.5. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Уникальные индексы страхуют от гонки на уровне БД
			if errors.Is(err, storage.ErrTableTaken) {
				return fmt.Errorf("%w: %v", ErrTableConflict, err)
			}
			if errors.Is(err, storage.ErrOvenTaken) {
				return fmt.Errorf("%w: %v", ErrOvenConflict, err)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, cleaning_waived=%t, fire=%t",
		result.ID, result.CleaningServiceWaived, result.FirePreparationRequested)

	uc.activityLog.AppendBestEffort(ctx, activitylog.Entry{
		ActorID:    req.Actor.UserID,
		UnitNumber: result.UnitNumber,
		Action:     "reservation.created",
		Summary: fmt.Sprintf("reservation %d for unit %d on %s/%s, tables %v",
			result.ID, result.UnitNumber, result.Date.Format(domain.DateFormat), result.MealPeriod, result.SortedTables()),
		OccurredAt: now,
	})

	// Консьерж-служба узнаёт о новой работе: уборка или растопка
	if !result.CleaningServiceWaived || result.FirePreparationRequested {
		uc.events.Notify(ctx, notifier.EventConciergeServiceNeeded, notifier.ConciergePayload{
			ReservationID:   result.ID,
			UnitNumber:      result.UnitNumber,
			Date:            result.Date.Format(domain.DateFormat),
			MealPeriod:      string(result.MealPeriod),
			CleaningNeeded:  !result.CleaningServiceWaived,
			FirePreparation: result.FirePreparationRequested,
		})
	}

	return toResponse(result), nil
}

// checkConflicts транслирует типизированные ошибки пакета conflict в ошибки usecase
func (uc *UseCase) checkConflicts(req *Request, existing []*domain.Reservation) error {
	err := conflict.Check(req.Tables, req.OvenRequested, existing, nil)
	if err == nil {
		return nil
	}

	var tableErr *conflict.TableConflictError
	if errors.As(err, &tableErr) {
		uc.logger.Warn("CreateReservation: tables %v already claimed", tableErr.Tables)
		return fmt.Errorf("%w: tables %v", ErrTableConflict, tableErr.Tables)
	}

	var ovenErr *conflict.OvenConflictError
	if errors.As(err, &ovenErr) {
		uc.logger.Warn("CreateReservation: oven already claimed by reservation %d", ovenErr.HolderID)
		return fmt.Errorf("%w: held by reservation %d", ErrOvenConflict, ovenErr.HolderID)
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}
