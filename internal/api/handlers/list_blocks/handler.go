package list_blocks

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/domain"
	"github.com/m04kA/CHS-ReservationService/internal/service/blocks"
)

const (
	msgMissingPeriod = "параметры start_date и end_date обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "некорректный период"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/blocks?start_date=&end_date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	query := r.URL.Query()
	rawStart := query.Get("start_date")
	rawEnd := query.Get("end_date")
	if rawStart == "" || rawEnd == "" {
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, rawStart)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, rawEnd)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), actor, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrPermissionDenied):
			h.logger.Warn("GET /blocks - Permission denied: user=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("GET /blocks - Invalid period: %s..%s", rawStart, rawEnd)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /blocks - Failed to list blocks: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
