package delete_notary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotaryService/internal/api/handlers"
	"github.com/m04kA/SMC-NotaryService/internal/api/middleware"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries"
)

const (
	msgInvalidNotaryID = "некорректный ID нотариуса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "нотариус не найден"
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

// Handle DELETE /api/v1/notaries/{notaryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notaryID, err := strconv.ParseInt(vars["notaryId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /notaries/{id} - Invalid notary ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotaryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /notaries/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), notaryID, userID); err != nil {
		switch {
		case errors.Is(err, notaries.ErrInvalidInput):
			h.logger.Warn("DELETE /notaries/{id} - Invalid notary ID: notary_id=%d", notaryID)
			handlers.RespondBadRequest(w, msgInvalidNotaryID)

		case errors.Is(err, notaries.ErrNotaryNotFound):
			h.logger.Warn("DELETE /notaries/{id} - Notary not found: notary_id=%d", notaryID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /notaries/{id} - Failed to delete notary: notary_id=%d, error=%v",
				notaryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /notaries/{id} - Notary deleted successfully: notary_id=%d, user_id=%d", notaryID, userID)
	w.WriteHeader(http.StatusNoContent)
}
