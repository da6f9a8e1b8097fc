package export_billing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/service/billing"
)

const (
	msgInvalidYear = "некорректный год"
	msgForbidden   = "доступ запрещен"
)

type Handler struct {
	service BillingService
	logger  Logger
}

func NewHandler(service BillingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/billing/{year}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /billing/{year} - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	result, err := h.service.Export(r.Context(), actor, year)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrPermissionDenied):
			h.logger.Warn("GET /billing/{year} - Permission denied: user=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, billing.ErrInvalidInput):
			h.logger.Warn("GET /billing/{year} - Invalid year: %d", year)
			handlers.RespondBadRequest(w, msgInvalidYear)

		default:
			h.logger.Error("GET /billing/{year} - Failed to export billing: year=%d, error=%v", year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /billing/{year} - Billing exported: year=%d, user=%d", year, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
