package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	updateReservation "github.com/m04kA/CHS-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "бронирование не найдено"
	msgTableConflict        = "запрошенные столы уже заняты в этом слоте"
	msgOvenConflict         = "печь уже занята в этом слоте"
	msgSlotBlocked          = "слот закрыт администрацией"
	msgDateInPast           = "дата бронирования уже прошла"
	msgForbidden            = "доступ запрещен"
	msgInvalidInput         = "некорректные данные бронирования"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Not found: reservation=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrTableConflict):
			h.logger.Warn("PATCH /reservations/{id} - Table conflict: reservation=%d", reservationID)
			handlers.RespondConflict(w, msgTableConflict)

		case errors.Is(err, updateReservation.ErrOvenConflict):
			h.logger.Warn("PATCH /reservations/{id} - Oven conflict: reservation=%d", reservationID)
			handlers.RespondConflict(w, msgOvenConflict)

		case errors.Is(err, updateReservation.ErrSlotBlocked):
			h.logger.Warn("PATCH /reservations/{id} - Slot blocked: reservation=%d", reservationID)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, updateReservation.ErrDateInPast):
			h.logger.Warn("PATCH /reservations/{id} - Date in past: reservation=%d", reservationID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, updateReservation.ErrPermissionDenied):
			h.logger.Warn("PATCH /reservations/{id} - Permission denied: reservation=%d, user=%d",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated: id=%d, user=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
