package get_unit_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidUnitNumber = "некорректный номер квартиры"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitNumber}/reservations?start_date=&end_date=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)
	unitNumber, err := strconv.Atoi(vars["unitNumber"])
	if err != nil || unitNumber <= 0 {
		h.logger.Warn("GET /units/{unit}/reservations - Invalid unit number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitNumber)
		return
	}

	filter := domain.UnitReservationsFilter{UnitNumber: unitNumber}

	query := r.URL.Query()
	if raw := query.Get("start_date"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &startDate
	}
	if raw := query.Get("end_date"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &endDate
	}
	if raw := query.Get("status"); raw != "" {
		status := domain.ReservationStatus(raw)
		if status != domain.StatusPending && status != domain.StatusConfirmed {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	result, err := h.service.GetByUnit(r.Context(), actor, filter)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrPermissionDenied):
			h.logger.Warn("GET /units/{unit}/reservations - Permission denied: unit=%d, user=%d",
				unitNumber, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /units/{unit}/reservations - Failed to list reservations: unit=%d, error=%v",
				unitNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
