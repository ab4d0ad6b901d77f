package get_notary_editor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotaryService/internal/api/handlers"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries"
)

const (
	msgInvalidNotaryID   = "некорректный ID нотариуса"
	msgNotFound          = "нотариус не найден"
	msgBookingOutOfRange = "бронирование нотариуса выходит за часы приёма"
)

type Handler struct {
	service NotaryService
	logger  Logger
}

func NewHandler(service NotaryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/notaries/{notaryId}/editor
// Возвращает расписание с пометками занятых бронированиями часов (код 2)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notaryID, err := strconv.ParseInt(vars["notaryId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /notaries/{id}/editor - Invalid notary ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotaryID)
		return
	}

	result, err := h.service.GetForEditing(r.Context(), notaryID)
	if err != nil {
		switch {
		case errors.Is(err, notaries.ErrInvalidInput):
			h.logger.Warn("GET /notaries/{id}/editor - Invalid notary ID: notary_id=%d", notaryID)
			handlers.RespondBadRequest(w, msgInvalidNotaryID)

		case errors.Is(err, notaries.ErrNotaryNotFound):
			h.logger.Warn("GET /notaries/{id}/editor - Notary not found: notary_id=%d", notaryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notaries.ErrBookingOutOfRange):
			h.logger.Error("GET /notaries/{id}/editor - Booking out of range: notary_id=%d, error=%v",
				notaryID, err)
			handlers.RespondUnprocessable(w, msgBookingOutOfRange)

		default:
			h.logger.Error("GET /notaries/{id}/editor - Failed to get schedule: notary_id=%d, error=%v",
				notaryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /notaries/{id}/editor - Schedule retrieved successfully: notary_id=%d, forced=%d",
		notaryID, len(result.ForcedSlots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
