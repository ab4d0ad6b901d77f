package create_notary

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-NotaryService/internal/api/handlers"
	"github.com/m04kA/SMC-NotaryService/internal/api/middleware"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidData           = "некорректные данные нотариуса или расписания"
	msgQualificationNotFound = "квалификация не найдена"
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

// Handle POST /api/v1/notaries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /notaries - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateNotaryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notaries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, notaries.ErrInvalidInput):
			h.logger.Warn("POST /notaries - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, notaries.ErrQualificationNotFound):
			h.logger.Warn("POST /notaries - Qualification not found: qualification_id=%d", req.QualificationID)
			handlers.RespondNotFound(w, msgQualificationNotFound)

		default:
			h.logger.Error("POST /notaries - Failed to create notary: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notaries - Notary created successfully: notary_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
