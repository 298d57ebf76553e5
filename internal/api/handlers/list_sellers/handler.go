package list_sellers

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service SellersService
	logger  Logger
}

func NewHandler(service SellersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sellers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSellers(r.Context())
	if err != nil {
		h.logger.Error("GET /sellers - Failed to list sellers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sellers - Sellers retrieved successfully: count=%d", len(result.Sellers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
