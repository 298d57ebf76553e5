package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	listAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/list_availability"
)

const (
	msgInvalidSellerID     = "некорректный ID продавца"
	msgInvalidQueryParam   = "некорректный параметр запроса"
	msgInvalidPolicy       = "некорректные параметры генерации слотов"
	msgSellerNotFound      = "продавец не найден"
	msgNotSeller           = "пользователь не является продавцом"
	msgCalendarNotLinked   = "календарь продавца не подключен"
	msgCalendarUnavailable = "календарь временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase ListAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sellers/{sellerId}/availability
// Query params (все опциональны): horizonDays, slotMinutes, workStart, workEnd
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sellerID, err := strconv.ParseInt(vars["sellerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sellers/{id}/availability - Invalid seller ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSellerID)
		return
	}

	useCaseReq := &listAvailability.Request{SellerID: sellerID}

	// Опциональные параметры политики; нулевые значения заменит use case
	if err := parsePolicyParams(r, useCaseReq); err != nil {
		h.logger.Warn("GET /sellers/{id}/availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParam)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listAvailability.ErrSellerNotFound):
			h.logger.Warn("GET /sellers/{id}/availability - Seller not found: seller_id=%d", sellerID)
			handlers.RespondNotFound(w, msgSellerNotFound)

		case errors.Is(err, listAvailability.ErrNotSeller):
			h.logger.Warn("GET /sellers/{id}/availability - Not a seller: seller_id=%d", sellerID)
			handlers.RespondNotFound(w, msgNotSeller)

		case errors.Is(err, listAvailability.ErrSellerNotConnected):
			h.logger.Warn("GET /sellers/{id}/availability - Calendar not connected: seller_id=%d", sellerID)
			handlers.RespondBadRequest(w, msgCalendarNotLinked)

		case errors.Is(err, listAvailability.ErrCalendarUnavailable):
			h.logger.Error("GET /sellers/{id}/availability - Calendar unavailable: seller_id=%d, error=%v", sellerID, err)
			handlers.RespondBadGateway(w, msgCalendarUnavailable)

		case errors.Is(err, listAvailability.ErrInvalidInput), errors.Is(err, listAvailability.ErrInvalidPolicy):
			h.logger.Warn("GET /sellers/{id}/availability - Invalid policy: seller_id=%d, error=%v", sellerID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("GET /sellers/{id}/availability - Failed to list availability: seller_id=%d, error=%v", sellerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sellers/{id}/availability - Slots retrieved successfully: seller_id=%d, slots_count=%d",
		sellerID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parsePolicyParams заполняет опциональные параметры политики из query string
func parsePolicyParams(r *http.Request, req *listAvailability.Request) error {
	query := r.URL.Query()

	if raw := query.Get("horizonDays"); raw != "" {
		horizonDays, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		req.HorizonDays = horizonDays
	}

	if raw := query.Get("slotMinutes"); raw != "" {
		slotMinutes, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		req.SlotDurationMinutes = slotMinutes
	}

	workStartRaw := query.Get("workStart")
	workEndRaw := query.Get("workEnd")
	if workStartRaw != "" || workEndRaw != "" {
		workStart, err := strconv.Atoi(workStartRaw)
		if err != nil {
			return err
		}
		workEnd, err := strconv.Atoi(workEndRaw)
		if err != nil {
			return err
		}
		req.SetWorkingHours(workStart, workEnd)
	}

	return nil
}
