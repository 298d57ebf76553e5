package connect_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	calendarSvc "github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingCode         = "authorization code обязателен"
	msgUnauthorized        = "требуется авторизация"
	msgUserNotFound        = "пользователь не найден"
	msgCalendarUnavailable = "не удалось подключить календарь, повторите запрос позже"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendar/connect
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ConnectCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendar/connect - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Code == "" {
		h.logger.Warn("POST /calendar/connect - Missing authorization code: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	if err := h.service.ConnectCalendar(r.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, calendarSvc.ErrUserNotFound):
			h.logger.Warn("POST /calendar/connect - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, calendarSvc.ErrUnavailable):
			h.logger.Error("POST /calendar/connect - Calendar unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondBadGateway(w, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /calendar/connect - Failed to connect calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar/connect - Calendar connected successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, ConnectCalendarResponse{Connected: true})
}
