package get_notaries_select

import (
	"net/http"

	"github.com/m04kA/SMC-NotaryService/internal/api/handlers"
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

// Handle GET /api/v1/notaries/select
// Список для выбора нотариуса при оформлении заказа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListForSelect(r.Context())
	if err != nil {
		h.logger.Error("GET /notaries/select - Failed to list notaries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notaries/select - Notaries retrieved successfully: count=%d", len(result.Notaries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
