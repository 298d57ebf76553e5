package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/googlecalendar"
	calendarSvc "github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case для создания записи к продавцу.
// Защита от двойного бронирования двухуровневая: авторитетная перепроверка
// занятости в календаре продавца непосредственно перед записью события, плюс
// локальная проверка пересечений в сериализуемой транзакции.
type UseCase struct {
	apptRepo     AppointmentRepository
	userRepo     UserRepository
	calendarSvc  CalendarService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	userRepo UserRepository,
	calendarSvc CalendarService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		userRepo:     userRepo,
		calendarSvc:  calendarSvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: buyer=%d, seller=%d, start=%s, end=%s",
		req.BuyerID, req.SellerID, req.Start.Format(domain.SlotLabelFormat), req.End.Format(domain.SlotLabelFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время; слоты в прошлом не бронируются
	now := uc.timeProvider.Now()
	if !req.Start.After(now) {
		uc.logger.Warn("CreateBooking: requested slot already started")
		return nil, fmt.Errorf("%w: slot start must be in the future", ErrInvalidInterval)
	}

	// 3. Проверяем, что продавец существует и является продавцом
	seller, err := uc.userRepo.GetByID(ctx, req.SellerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: seller id=%d not found", req.SellerID)
			return nil, ErrSellerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get seller id=%d: %v", req.SellerID, err)
		return nil, fmt.Errorf("%w: failed to get seller: %v", ErrInternal, err)
	}
	if !seller.IsSeller() {
		uc.logger.Warn("CreateBooking: user id=%d is not a seller", req.SellerID)
		return nil, ErrNotSeller
	}

	// 4. Получаем покупателя
	buyer, err := uc.userRepo.GetByID(ctx, req.BuyerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: buyer id=%d not found", req.BuyerID)
			return nil, ErrBuyerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get buyer id=%d: %v", req.BuyerID, err)
		return nil, fmt.Errorf("%w: failed to get buyer: %v", ErrInternal, err)
	}

	// 5. Авторитетная перепроверка: свежие занятые интервалы из календаря
	// продавца, не кэш и не выдача листинга
	busy, err := uc.calendarSvc.FetchBusy(ctx, req.SellerID, horizonCovering(req.End, now))
	if err != nil {
		switch {
		case errors.Is(err, calendarSvc.ErrNotConnected):
			uc.logger.Warn("CreateBooking: seller id=%d has no connected calendar", req.SellerID)
			return nil, ErrSellerNotConnected
		case errors.Is(err, calendarSvc.ErrUserNotFound):
			return nil, ErrSellerNotFound
		case errors.Is(err, calendarSvc.ErrUnavailable):
			uc.logger.Error("CreateBooking: calendar unavailable for seller id=%d: %v", req.SellerID, err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		default:
			uc.logger.Error("CreateBooking: failed to fetch busy intervals for seller id=%d: %v", req.SellerID, err)
			return nil, fmt.Errorf("%w: failed to fetch busy intervals: %v", ErrInternal, err)
		}
	}

	// 6. Проверяем доступность интервала против свежих данных
	candidate := domain.Interval{Start: req.Start, End: req.End}
	if !domain.IsIntervalAvailable(candidate, busy, now) {
		uc.logger.Warn("CreateBooking: slot conflict for seller=%d, start=%s",
			req.SellerID, req.Start.Format(domain.SlotLabelFormat))
		return nil, ErrSlotConflict
	}

	// 7. Создаем событие в календаре продавца с Meet-конференцией
	summary := fmt.Sprintf("Appointment: %s <> %s", buyer.DisplayName(), seller.DisplayName())
	created, err := uc.calendarSvc.CreateEvent(ctx, req.SellerID, googlecalendar.Event{
		Summary:        summary,
		Description:    fmt.Sprintf("Booked via appointment service by %s", buyer.DisplayName()),
		Start:          req.Start,
		End:            req.End,
		Attendees:      []string{seller.Email, buyer.Email},
		WithConference: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, calendarSvc.ErrNotConnected):
			return nil, ErrSellerNotConnected
		case errors.Is(err, calendarSvc.ErrUnavailable):
			uc.logger.Error("CreateBooking: failed to create calendar event for seller=%d: %v", req.SellerID, err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		default:
			uc.logger.Error("CreateBooking: failed to create calendar event for seller=%d: %v", req.SellerID, err)
			return nil, fmt.Errorf("%w: failed to create calendar event: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: created calendar event id=%s for seller=%d", created.ID, req.SellerID)

	// 8. Зеркалим событие в календарь покупателя, если он подключен.
	// Best-effort: покупатель и так получит приглашение как участник.
	if buyer.CalendarConnected() {
		_, mirrorErr := uc.calendarSvc.CreateEvent(ctx, req.BuyerID, googlecalendar.Event{
			Summary:     fmt.Sprintf("Appointment with %s", seller.DisplayName()),
			Description: summary,
			Start:       req.Start,
			End:         req.End,
		})
		if mirrorErr != nil {
			uc.logger.Warn("CreateBooking: failed to mirror event to buyer=%d calendar: %v", req.BuyerID, mirrorErr)
		}
	}

	var meetURL *string
	if created.HangoutLink != "" {
		meetURL = ptr.Ptr(created.HangoutLink)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 9. Сохраняем запись в сериализуемой транзакции с локальной проверкой
	// пересечений (FOR UPDATE)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.apptRepo.FindOverlapping(txCtx, req.SellerID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to check overlapping appointments: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: local overlap with appointments %v for seller=%d", overlapping, req.SellerID)
			return ErrSlotConflict
		}

		appt := &domain.Appointment{
			SellerID:      req.SellerID,
			BuyerID:       req.BuyerID,
			StartTime:     req.Start,
			EndTime:       req.End,
			GoogleEventID: created.ID,
			Summary:       summary,
			Location:      meetURL,
		}

		saved, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		// Событие в календаре продавца уже создано; при локальном конфликте
		// оно останется висеть до ручной очистки. TODO: компенсационное
		// удаление события через events.delete.
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	return &Response{
		AppointmentID: result.ID,
		SellerID:      result.SellerID,
		BuyerID:       result.BuyerID,
		Start:         result.StartTime,
		End:           result.EndTime,
		Summary:       result.Summary,
		GoogleEventID: result.GoogleEventID,
		MeetURL:       meetURL,
		CreatedAt:     result.CreatedAt,
	}, nil
}
