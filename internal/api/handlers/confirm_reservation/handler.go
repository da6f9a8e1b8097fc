package confirm_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CHS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgAlreadyConfirmed     = "бронирование уже подтверждено"
	msgInvalidTransition    = "недопустимый переход статуса"
	msgAttendeeCapExceeded  = "итоговое число гостей превышает вместимость столов"
	msgForbidden            = "доступ запрещен"
	msgInvalidInput         = "некорректные данные подтверждения"
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

// Handle PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Тело опционально: подтверждение без него берёт запланированное число гостей
	var req ConfirmReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), actor, reservationID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Not found: reservation=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAlreadyConfirmed):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Already confirmed: reservation=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid transition: reservation=%d", reservationID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, reservations.ErrAttendeeCapExceeded):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Attendee cap exceeded: reservation=%d", reservationID)
			handlers.RespondBadRequest(w, msgAttendeeCapExceeded)

		case errors.Is(err, reservations.ErrPermissionDenied):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Permission denied: reservation=%d, user=%d",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/confirm - Failed to confirm: reservation=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/confirm - Reservation confirmed: id=%d, user=%d",
		result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
