package update_notary

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
	msgInvalidNotaryID       = "некорректный ID нотариуса"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidData           = "некорректные данные нотариуса или расписания"
	msgNotFound              = "нотариус не найден"
	msgQualificationNotFound = "квалификация не найдена"
	msgScheduleStale         = "бронирования нотариуса изменились, откройте расписание заново"
	msgVersionConflict       = "расписание уже изменено другим пользователем"
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

// Handle PUT /api/v1/notaries/{notaryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notaryID, err := strconv.ParseInt(vars["notaryId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /notaries/{id} - Invalid notary ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotaryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /notaries/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateNotaryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /notaries/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), notaryID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, notaries.ErrInvalidInput):
			h.logger.Warn("PUT /notaries/{id} - Invalid data: notary_id=%d, error=%v", notaryID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, notaries.ErrNotaryNotFound):
			h.logger.Warn("PUT /notaries/{id} - Notary not found: notary_id=%d", notaryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notaries.ErrQualificationNotFound):
			h.logger.Warn("PUT /notaries/{id} - Qualification not found: qualification_id=%d", req.QualificationID)
			handlers.RespondNotFound(w, msgQualificationNotFound)

		case errors.Is(err, notaries.ErrScheduleStale):
			h.logger.Warn("PUT /notaries/{id} - Stale snapshot: notary_id=%d", notaryID)
			handlers.RespondConflict(w, msgScheduleStale)

		case errors.Is(err, notaries.ErrVersionConflict):
			h.logger.Warn("PUT /notaries/{id} - Version conflict: notary_id=%d, version=%d",
				notaryID, req.ScheduleVersion)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("PUT /notaries/{id} - Failed to update notary: notary_id=%d, error=%v",
				notaryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /notaries/{id} - Notary updated successfully: notary_id=%d, version=%d, user_id=%d",
		notaryID, result.ScheduleVersion, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
