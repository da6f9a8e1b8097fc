package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/CHS-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTableConflict      = "запрошенные столы уже заняты в этом слоте"
	msgOvenConflict       = "печь уже занята в этом слоте"
	msgSlotBlocked        = "слот закрыт администрацией"
	msgDateInPast         = "дата бронирования уже прошла"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTableConflict):
			h.logger.Warn("POST /reservations - Table conflict: unit=%d, date=%s", req.UnitNumber, req.Date)
			handlers.RespondConflict(w, msgTableConflict)

		case errors.Is(err, createReservation.ErrOvenConflict):
			h.logger.Warn("POST /reservations - Oven conflict: unit=%d, date=%s", req.UnitNumber, req.Date)
			handlers.RespondConflict(w, msgOvenConflict)

		case errors.Is(err, createReservation.ErrSlotBlocked):
			h.logger.Warn("POST /reservations - Slot blocked: unit=%d, date=%s", req.UnitNumber, req.Date)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, createReservation.ErrDateInPast):
			h.logger.Warn("POST /reservations - Date in past: unit=%d, date=%s", req.UnitNumber, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrPermissionDenied):
			h.logger.Warn("POST /reservations - Permission denied: user=%d, unit=%d", actor.UserID, req.UnitNumber)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: unit=%d, error=%v", req.UnitNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, unit=%d, user=%d",
		result.ID, result.UnitNumber, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
