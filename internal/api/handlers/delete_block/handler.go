package delete_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/service/blocks"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgNotFound       = "блокировка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)
	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	err = h.service.Delete(r.Context(), actor, blockID)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /blocks/{id} - Not found: block=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blocks.ErrPermissionDenied):
			h.logger.Warn("DELETE /blocks/{id} - Permission denied: block=%d, user=%d", blockID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /blocks/{id} - Failed to delete block: block=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocks/{id} - Block deleted: id=%d, user=%d", blockID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
