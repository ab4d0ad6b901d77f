package get_notaries

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-NotaryService/internal/api/handlers"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/notaries
// Query params: qualificationId, fio (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query().Get("qualificationId"), r.URL.Query().Get("fio"))
	if err != nil {
		h.logger.Warn("GET /notaries - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, notaries.ErrInvalidInput) {
			h.logger.Warn("GET /notaries - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /notaries - Failed to list notaries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notaries - Notaries retrieved successfully: count=%d", len(result.Notaries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
