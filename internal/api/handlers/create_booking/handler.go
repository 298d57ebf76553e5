package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInterval     = "некорректный интервал бронирования"
	msgUnauthorized        = "требуется авторизация"
	msgSellerNotFound      = "продавец не найден"
	msgBuyerNotFound       = "пользователь не найден"
	msgNotSeller           = "пользователь не является продавцом"
	msgCalendarNotLinked   = "календарь продавца не подключен"
	msgSlotConflict        = "выбранный временной слот уже занят"
	msgCalendarUnavailable = "календарь временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(buyerID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: buyer_id=%d, seller_id=%d", buyerID, req.SellerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrSellerNotFound):
			h.logger.Warn("POST /bookings - Seller not found: seller_id=%d", req.SellerID)
			handlers.RespondNotFound(w, msgSellerNotFound)

		case errors.Is(err, createBooking.ErrBuyerNotFound):
			h.logger.Warn("POST /bookings - Buyer not found: buyer_id=%d", buyerID)
			handlers.RespondNotFound(w, msgBuyerNotFound)

		case errors.Is(err, createBooking.ErrNotSeller):
			h.logger.Warn("POST /bookings - Not a seller: seller_id=%d", req.SellerID)
			handlers.RespondNotFound(w, msgNotSeller)

		case errors.Is(err, createBooking.ErrSellerNotConnected):
			h.logger.Warn("POST /bookings - Calendar not connected: seller_id=%d", req.SellerID)
			handlers.RespondBadRequest(w, msgCalendarNotLinked)

		case errors.Is(err, createBooking.ErrInvalidInterval), errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid interval: buyer_id=%d, seller_id=%d, error=%v",
				buyerID, req.SellerID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrCalendarUnavailable):
			h.logger.Error("POST /bookings - Calendar unavailable: seller_id=%d, error=%v", req.SellerID, err)
			handlers.RespondBadGateway(w, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: buyer_id=%d, seller_id=%d, error=%v",
				buyerID, req.SellerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: appointment_id=%d, buyer_id=%d, seller_id=%d",
		result.AppointmentID, buyerID, req.SellerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
