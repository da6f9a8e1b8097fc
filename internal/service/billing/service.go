package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/rules/billing"
	"github.com/m04kA/CHS-ReservationService/internal/service/billing/models"
)

// Service годовая выгрузка начислений для правления кооператива.
// Суммы считаются в момент выгрузки по подтверждённым бронированиям,
// в базе они не хранятся.
type Service struct {
	repo   ReservationRepository
	tariff domain.Tariff
	logger Logger
}

// New создает новый сервис выгрузки начислений
func New(repo ReservationRepository, tariff domain.Tariff, logger Logger) *Service {
	return &Service{
		repo:   repo,
		tariff: tariff,
		logger: logger,
	}
}

// Export возвращает начисления за год, сгруппированные по квартирам
func (s *Service) Export(ctx context.Context, actor domain.Actor, year int) (*models.YearExport, error) {
	if !actor.Permissions().CanViewAll {
		return nil, fmt.Errorf("%w: role %s cannot export billing", ErrPermissionDenied, actor.Role)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year %d is out of range", ErrInvalidInput, year)
	}

	reservations, err := s.repo.GetConfirmedByYear(ctx, year)
	if err != nil {
		s.logger.Error("Export: failed to load confirmed reservations for %d: %v", year, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	byUnit := make(map[int]*models.UnitSummary)
	export := &models.YearExport{Year: year}

	for _, r := range reservations {
		attendees := r.AttendeesPlanned
		if r.AttendeesFinal != nil {
			attendees = *r.AttendeesFinal
		}
		amount := billing.Compute(r.Date, r.CreatedAt, attendees, s.tariff)

		summary, ok := byUnit[r.UnitNumber]
		if !ok {
			summary = &models.UnitSummary{UnitNumber: r.UnitNumber}
			byUnit[r.UnitNumber] = summary
		}
		summary.ReservationCount++
		summary.TotalAmount += amount
		summary.Lines = append(summary.Lines, models.Line{
			ReservationID:  r.ID,
			Date:           r.Date.Format(domain.DateFormat),
			MealPeriod:     string(r.MealPeriod),
			AttendeesFinal: attendees,
			Amount:         amount,
		})
		export.TotalAmount += amount
	}

	export.Units = make([]models.UnitSummary, 0, len(byUnit))
	for _, summary := range byUnit {
		export.Units = append(export.Units, *summary)
	}
	sort.Slice(export.Units, func(i, j int) bool {
		return export.Units[i].UnitNumber < export.Units[j].UnitNumber
	})

	s.logger.Info("Export: year %d, %d reservations, total %d", year, len(reservations), export.TotalAmount)

	return export, nil
}
