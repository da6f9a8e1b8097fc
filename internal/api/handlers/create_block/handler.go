package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/service/blocks"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBlockOverlap       = "блокировка пересекается с существующей"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные блокировки"
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

// Handle POST /api/v1/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockOverlap):
			h.logger.Warn("POST /blocks - Overlap: date=%s, coverage=%s", req.Date, req.Coverage)
			handlers.RespondConflict(w, msgBlockOverlap)

		case errors.Is(err, blocks.ErrPermissionDenied):
			h.logger.Warn("POST /blocks - Permission denied: user=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /blocks - Failed to create block: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created: id=%d, user=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
