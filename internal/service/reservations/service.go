package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
	storage "github.com/m04kA/CHS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения и жизненного цикла бронирований.
// Создание и изменение слотов живут в usecase-слое, так как требуют
// сериализуемой транзакции; здесь остальные операции.
type Service struct {
	repo         ReservationRepository
	blockRepo    BlockRepository
	activityLog  ActivityLog
	timeProvider TimeProvider
	logger       Logger
	tableCount   int
}

// New создает новый сервис бронирований
func New(
	repo ReservationRepository,
	blockRepo BlockRepository,
	activityLog ActivityLog,
	timeProvider TimeProvider,
	logger Logger,
	tableCount int,
) *Service {
	return &Service{
		repo:         repo,
		blockRepo:    blockRepo,
		activityLog:  activityLog,
		timeProvider: timeProvider,
		logger:       logger,
		tableCount:   tableCount,
	}
}

// GetByID возвращает бронирование по ID.
// Чужие бронирования видят только роли с CanViewAll.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.Reservation, error) {
	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	perms := actor.Permissions()
	if !perms.CanViewAll && !actor.OwnsUnit(reservation.UnitNumber) {
		return nil, fmt.Errorf("%w: user %d cannot view reservation %d", ErrPermissionDenied, actor.UserID, id)
	}

	result := models.FromDomainReservation(reservation)
	return &result, nil
}

// GetByUnit возвращает историю бронирований квартиры с опциональными
// фильтрами по периоду и статусу
func (s *Service) GetByUnit(ctx context.Context, actor domain.Actor, filter domain.UnitReservationsFilter) (*models.ListResponse, error) {
	perms := actor.Permissions()
	if !perms.CanViewAll && !actor.OwnsUnit(filter.UnitNumber) {
		return nil, fmt.Errorf("%w: user %d cannot view reservations of unit %d", ErrPermissionDenied, actor.UserID, filter.UnitNumber)
	}

	items, err := s.repo.GetByUnit(ctx, filter)
	if err != nil {
		s.logger.Error("GetByUnit: failed to list reservations for unit %d: %v", filter.UnitNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &models.ListResponse{Reservations: models.FromDomainReservations(items)}, nil
}

// GetDaySchedule возвращает занятость общего дома на день: занятые и
// свободные столы, духовку и блокировки по каждому приёму пищи.
// Расписание общее, его видит любой житель.
func (s *Service) GetDaySchedule(ctx context.Context, date time.Time) (*models.DaySchedule, error) {
	day := calendar.Day(date)

	blocks, err := s.blockRepo.GetByDate(ctx, day)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to load blocks for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	schedule := &models.DaySchedule{
		Date:  day.Format(domain.DateFormat),
		Slots: make([]models.SlotSchedule, 0, 2),
	}

	for _, period := range []domain.MealPeriod{domain.PeriodMidday, domain.PeriodEvening} {
		slot, err := s.buildSlot(ctx, day, period, blocks)
		if err != nil {
			return nil, err
		}
		schedule.Slots = append(schedule.Slots, slot)
	}

	return schedule, nil
}

func (s *Service) buildSlot(ctx context.Context, day time.Time, period domain.MealPeriod, blocks []*domain.BlockedSlot) (models.SlotSchedule, error) {
	existing, err := s.repo.GetBySlot(ctx, domain.SlotFilter{Date: day, MealPeriod: period})
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to load slot %s/%s: %v", day.Format(domain.DateFormat), period, err)
		return models.SlotSchedule{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	claimed := make(map[int]bool)
	ovenTaken := false
	for _, r := range existing {
		for _, t := range r.Tables {
			claimed[t] = true
		}
		if r.OvenRequested {
			ovenTaken = true
		}
	}

	slot := models.SlotSchedule{
		MealPeriod:    string(period),
		ClaimedTables: make([]int, 0, len(claimed)),
		FreeTables:    make([]int, 0, s.tableCount),
		OvenTaken:     ovenTaken,
		Reservations:  models.FromDomainReservations(existing),
	}
	for t := 1; t <= s.tableCount; t++ {
		if claimed[t] {
			slot.ClaimedTables = append(slot.ClaimedTables, t)
		} else {
			slot.FreeTables = append(slot.FreeTables, t)
		}
	}

	for _, b := range blocks {
		if b.Coverage.Covers(period) {
			slot.Blocked = true
			reason := string(b.Reason)
			slot.BlockReason = &reason
			break
		}
	}

	return slot, nil
}

// Confirm подтверждает бронирование. Переход разрешён только из pending.
// Итоговое число гостей по умолчанию равно запланированному и не может
// превышать вместимость занятых столов.
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, id int64, req models.ConfirmRequest) (*models.Reservation, error) {
	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkMutationAllowed(actor, reservation); err != nil {
		return nil, err
	}

	switch reservation.Status {
	case domain.StatusPending:
	case domain.StatusConfirmed:
		return nil, fmt.Errorf("%w: reservation %d", ErrAlreadyConfirmed, id)
	default:
		return nil, fmt.Errorf("%w: cannot confirm reservation %d in status %s", ErrInvalidTransition, id, reservation.Status)
	}

	attendeesFinal := reservation.AttendeesPlanned
	if req.AttendeesFinal != nil {
		attendeesFinal = *req.AttendeesFinal
	}
	if attendeesFinal <= 0 {
		return nil, fmt.Errorf("%w: attendees_final must be positive", ErrInvalidInput)
	}
	if attendeesFinal > reservation.AttendeeCap() {
		return nil, fmt.Errorf("%w: %d attendees for %d tables (cap %d)",
			ErrAttendeeCapExceeded, attendeesFinal, len(reservation.Tables), reservation.AttendeeCap())
	}

	notes := reservation.Notes
	if req.Notes != nil {
		if len(*req.Notes) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		notes = req.Notes
	}

	if err := s.repo.Confirm(ctx, id, attendeesFinal, notes); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return nil, fmt.Errorf("%w: reservation with id %d", ErrReservationNotFound, id)
		}
		s.logger.Error("Confirm: failed to confirm reservation %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: reservation %d confirmed by user %d, attendees_final=%d", id, actor.UserID, attendeesFinal)
	s.activityLog.AppendBestEffort(ctx, activitylog.Entry{
		ActorID:    actor.UserID,
		UnitNumber: reservation.UnitNumber,
		Action:     "reservation.confirmed",
		Summary: fmt.Sprintf("reservation %d for unit %d on %s/%s confirmed with %d attendees",
			id, reservation.UnitNumber, reservation.Date.Format(domain.DateFormat), reservation.MealPeriod, attendeesFinal),
		OccurredAt: s.timeProvider.Now(),
	})

	return s.GetByID(ctx, actor, id)
}

// Cancel отменяет бронирование жёстким удалением. Привилегированные роли
// отменяют всегда; владелец — пока бронирование не подтверждено и не в прошлом.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) error {
	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkMutationAllowed(actor, reservation); err != nil {
		return err
	}

	perms := actor.Permissions()
	if !perms.CanMutateAny && reservation.IsConfirmed() && calendar.IsPast(reservation.Date, s.timeProvider.Now()) {
		return fmt.Errorf("%w: owner cannot cancel a confirmed reservation in the past", ErrPermissionDenied)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return fmt.Errorf("%w: reservation with id %d", ErrReservationNotFound, id)
		}
		s.logger.Error("Cancel: failed to delete reservation %d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation %d cancelled by user %d", id, actor.UserID)
	s.activityLog.AppendBestEffort(ctx, activitylog.Entry{
		ActorID:    actor.UserID,
		UnitNumber: reservation.UnitNumber,
		Action:     "reservation.cancelled",
		Summary: fmt.Sprintf("reservation %d for unit %d on %s/%s cancelled",
			id, reservation.UnitNumber, reservation.Date.Format(domain.DateFormat), reservation.MealPeriod),
		OccurredAt: s.timeProvider.Now(),
	})

	return nil
}

func (s *Service) fetch(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return nil, fmt.Errorf("%w: reservation with id %d", ErrReservationNotFound, id)
		}
		s.logger.Error("fetch: failed to get reservation %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return reservation, nil
}

// checkMutationAllowed проверяет право актора изменять бронирование:
// либо привилегированная роль с мутациями, либо владелец квартиры
func (s *Service) checkMutationAllowed(actor domain.Actor, reservation *domain.Reservation) error {
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
	return nil
}
