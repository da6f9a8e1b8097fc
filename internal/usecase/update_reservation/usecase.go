package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
	storage "github.com/m04kA/CHS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
	"github.com/m04kA/CHS-ReservationService/internal/rules/conflict"
	"github.com/m04kA/CHS-ReservationService/internal/rules/eligibility"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	blockRepo       BlockRepository
	txManager       TransactionManager
	activityLog     ActivityLog
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
	logger Logger,
	settings Settings,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blockRepo:       blockRepo,
		txManager:       txManager,
		activityLog:     activityLog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		settings:        settings,
	}
}

// Execute выполняет use case изменения бронирования.
// Сервисные флаги пересчитываются по новой дате: они зависят от дня
// бронирования относительно "сейчас", а не от момента создания.
// Претензии на слот проверяются в сериализуемой транзакции с исключением
// собственного бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: user=%d, reservation=%d", req.Actor.UserID, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Reservation

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем текущее состояние бронирования
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, storage.ErrReservationNotFound) {
				return fmt.Errorf("%w: reservation with id %d", ErrReservationNotFound, req.ReservationID)
			}
			uc.logger.Error("UpdateReservation: failed to get reservation %d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Проверка прав актора на текущем состоянии
		if err := checkPermissions(req.Actor, reservation, now); err != nil {
			uc.logger.Warn("UpdateReservation: %v", err)
			return err
		}

		// 2.3. Применяем изменения
		fireRequested, cleaningWaiver := uc.applyChanges(reservation, req)

		// 2.4. Валидация итогового состояния
		if err := validateMerged(reservation, uc.settings); err != nil {
			uc.logger.Warn("UpdateReservation: merged validation failed: %v", err)
			return err
		}

		if calendar.IsPast(reservation.Date, now) {
			uc.logger.Warn("UpdateReservation: date %s is in the past", reservation.Date.Format(domain.DateFormat))
			return ErrDateInPast
		}

		// 2.5. Читаем остальные бронирования целевого слота с блокировкой (FOR UPDATE)
		existing, err := uc.reservationRepo.GetBySlot(txCtx, domain.SlotFilter{
			Date:       reservation.Date,
			MealPeriod: reservation.MealPeriod,
			ExcludeID:  &reservation.ID,
		})
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get slot reservations: %v", err)
			return fmt.Errorf("%w: failed to get slot reservations: %v", ErrInternal, err)
		}

		// 2.6. Проверяем претензии на столы и печь
		if err := uc.checkConflicts(reservation, existing); err != nil {
			return err
		}

		// 2.7. Проверяем административные блокировки, если проверка включена
		if uc.settings.EnforceBlocks {
			blocks, err := uc.blockRepo.GetByDate(txCtx, reservation.Date)
			if err != nil {
				uc.logger.Error("UpdateReservation: failed to get blocks: %v", err)
				return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
			}
			if err := conflict.CheckBlocked(reservation.MealPeriod, blocks); err != nil {
				var blocked *conflict.SlotBlockedError
				if errors.As(err, &blocked) {
					return fmt.Errorf("%w: %s", ErrSlotBlocked, blocked.Reason)
				}
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 2.8. Пересчитываем сервисные флаги по итоговой дате
		flags := eligibility.Resolve(reservation.Date, now, fireRequested, cleaningWaiver, eligibility.Rules{
			ShortNoticeDays: uc.settings.ShortNoticeDays,
			RestDays:        uc.settings.RestDays,
		})
		reservation.CleaningServiceWaived = flags.CleaningServiceWaived
		reservation.FirePreparationRequested = flags.FirePreparationAllowed

		// 2.9. Сохраняем бронирование
		updated, err := uc.reservationRepo.Update(txCtx, reservation)
		if err != nil {
			if errors.Is(err, storage.ErrTableTaken) {
				return fmt.Errorf("%w: %v", ErrTableConflict, err)
			}
			if errors.Is(err, storage.ErrOvenTaken) {
				return fmt.Errorf("%w: %v", ErrOvenConflict, err)
			}
			if errors.Is(err, storage.ErrReservationNotFound) {
				return fmt.Errorf("%w: reservation with id %d", ErrReservationNotFound, req.ReservationID)
			}
			uc.logger.Error("UpdateReservation: failed to update reservation %d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: updated reservation id=%d, cleaning_waived=%t, fire=%t",
		result.ID, result.CleaningServiceWaived, result.FirePreparationRequested)

	uc.activityLog.AppendBestEffort(ctx, activitylog.Entry{
		ActorID:    req.Actor.UserID,
		UnitNumber: result.UnitNumber,
		Action:     "reservation.updated",
		Summary: fmt.Sprintf("reservation %d for unit %d moved to %s/%s, tables %v",
			result.ID, result.UnitNumber, result.Date.Format(domain.DateFormat), result.MealPeriod, result.SortedTables()),
		OccurredAt: now,
	})

	return toResponse(result), nil
}

// applyChanges накладывает nil-aware изменения запроса на бронирование и
// возвращает исходные запросы жильца для пересчёта сервисных флагов.
// Для флагов, не присланных в запросе, лучшее известное значение — текущее
// состояние бронирования.
func (uc *UseCase) applyChanges(reservation *domain.Reservation, req *Request) (fireRequested, cleaningWaiver bool) {
	if req.Date != nil {
		reservation.Date = calendar.Day(*req.Date)
	}
	if req.MealPeriod != nil {
		reservation.MealPeriod = domain.MealPeriod(*req.MealPeriod)
	}
	if req.Tables != nil {
		reservation.Tables = req.Tables
	}
	if req.OvenRequested != nil {
		reservation.OvenRequested = *req.OvenRequested
	}
	if req.AttendeesPlanned != nil {
		reservation.AttendeesPlanned = *req.AttendeesPlanned
	}
	if req.Notes != nil {
		reservation.Notes = req.Notes
	}

	fireRequested = reservation.FirePreparationRequested
	if req.FireRequested != nil {
		fireRequested = *req.FireRequested
	}

	cleaningWaiver = reservation.CleaningServiceWaived
	if req.CleaningWaiver != nil {
		cleaningWaiver = *req.CleaningWaiver
	}

	return fireRequested, cleaningWaiver
}

// checkConflicts транслирует типизированные ошибки пакета conflict в ошибки usecase
func (uc *UseCase) checkConflicts(reservation *domain.Reservation, existing []*domain.Reservation) error {
	err := conflict.Check(reservation.Tables, reservation.OvenRequested, existing, &reservation.ID)
	if err == nil {
		return nil
	}

	var tableErr *conflict.TableConflictError
	if errors.As(err, &tableErr) {
		uc.logger.Warn("UpdateReservation: tables %v already claimed", tableErr.Tables)
		return fmt.Errorf("%w: tables %v", ErrTableConflict, tableErr.Tables)
	}

	var ovenErr *conflict.OvenConflictError
	if errors.As(err, &ovenErr) {
		uc.logger.Warn("UpdateReservation: oven already claimed by reservation %d", ovenErr.HolderID)
		return fmt.Errorf("%w: held by reservation %d", ErrOvenConflict, ovenErr.HolderID)
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}
