package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/integrations/activitylog"
	storage "github.com/m04kA/CHS-ReservationService/internal/infra/storage/block"
	"github.com/m04kA/CHS-ReservationService/internal/notifier"
	"github.com/m04kA/CHS-ReservationService/internal/rules/calendar"
	"github.com/m04kA/CHS-ReservationService/internal/service/blocks/models"
)

// Service сервис административных блокировок слотов
type Service struct {
	repo         BlockRepository
	activityLog  ActivityLog
	events       Notifier
	timeProvider TimeProvider
	logger       Logger
}

// New создает новый сервис блокировок
func New(
	repo BlockRepository,
	activityLog ActivityLog,
	events Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		activityLog:  activityLog,
		events:       events,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает блокировку слота. Две блокировки не могут пересекаться
// по приёмам пищи одного дня: coverage "both" конфликтует с любой другой.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req models.CreateRequest) (*models.Block, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	block, err := parseCreateRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByDate(ctx, block.Date)
	if err != nil {
		s.logger.Error("Create: failed to load blocks for %s: %v", block.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	for _, other := range existing {
		if other.Coverage.Overlaps(block.Coverage) {
			return nil, fmt.Errorf("%w: block %d (%s, %s) already covers the slot",
				ErrBlockOverlap, other.ID, other.Coverage, other.Reason)
		}
	}

	created, err := s.repo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: failed to create block: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Create: block %d created by user %d: %s %s (%s)",
		created.ID, actor.UserID, created.Date.Format(domain.DateFormat), created.Coverage, created.Reason)

	s.activityLog.AppendBestEffort(ctx, activitylog.Entry{
		ActorID: actor.UserID,
		Action:  "block.created",
		Summary: fmt.Sprintf("slot %s/%s blocked: %s",
			created.Date.Format(domain.DateFormat), created.Coverage, created.Reason),
		OccurredAt: s.timeProvider.Now(),
	})

	if created.FirePreparationPrepared {
		s.events.Notify(ctx, notifier.EventFireBlockCreated, notifier.FireBlockPayload{
			BlockID:  created.ID,
			Date:     created.Date.Format(domain.DateFormat),
			Coverage: string(created.Coverage),
			Reason:   string(created.Reason),
		})
	}

	result := models.FromDomainBlock(created)
	return &result, nil
}

// List возвращает блокировки за период дат (включительно)
func (s *Service) List(ctx context.Context, actor domain.Actor, startDate, endDate time.Time) (*models.ListResponse, error) {
	perms := actor.Permissions()
	if !perms.CanViewAll {
		return nil, fmt.Errorf("%w: role %s cannot list blocked slots", ErrPermissionDenied, actor.Role)
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	items, err := s.repo.GetByPeriod(ctx, calendar.Day(startDate), calendar.Day(endDate))
	if err != nil {
		s.logger.Error("List: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &models.ListResponse{Blocks: models.FromDomainBlocks(items)}, nil
}

// Delete снимает блокировку. Уже созданные бронирования не затрагиваются.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := checkAdmin(actor); err != nil {
		return err
	}

	block, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBlockNotFound) {
			return fmt.Errorf("%w: block with id %d", ErrBlockNotFound, id)
		}
		s.logger.Error("Delete: failed to get block %d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBlockNotFound) {
			return fmt.Errorf("%w: block with id %d", ErrBlockNotFound, id)
		}
		s.logger.Error("Delete: failed to delete block %d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: block %d removed by user %d", id, actor.UserID)
	s.activityLog.AppendBestEffort(ctx, activitylog.Entry{
		ActorID: actor.UserID,
		Action:  "block.deleted",
		Summary: fmt.Sprintf("block on %s/%s removed",
			block.Date.Format(domain.DateFormat), block.Coverage),
		OccurredAt: s.timeProvider.Now(),
	})

	return nil
}

func checkAdmin(actor domain.Actor) error {
	if !actor.Permissions().CanMutateAny {
		return fmt.Errorf("%w: role %s cannot manage blocked slots", ErrPermissionDenied, actor.Role)
	}
	return nil
}

func parseCreateRequest(req models.CreateRequest) (*domain.BlockedSlot, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in format %s", ErrInvalidInput, domain.DateFormat)
	}

	coverage := domain.BlockCoverage(req.Coverage)
	if !coverage.IsValid() {
		return nil, fmt.Errorf("%w: unknown coverage %q", ErrInvalidInput, req.Coverage)
	}

	reason := domain.BlockReason(req.Reason)
	if !reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown reason %q", ErrInvalidInput, req.Reason)
	}

	return &domain.BlockedSlot{
		Date:                    calendar.Day(date),
		Coverage:                coverage,
		Reason:                  reason,
		FirePreparationPrepared: req.FirePreparationPrepared,
	}, nil
}
