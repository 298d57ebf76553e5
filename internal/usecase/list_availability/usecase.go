package list_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	calendarSvc "github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
)

// UseCase use case для получения доступных слотов продавца.
// Занятые интервалы на этом пути могут устаревать между листингом и
// бронированием — авторитетная проверка выполняется в create_booking.
type UseCase struct {
	userRepo     UserRepository
	calendarSvc  CalendarService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(userRepo UserRepository, calendarSvc CalendarService, logger Logger) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		calendarSvc:  calendarSvc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListAvailability: seller=%d, horizon=%d, slot=%dm",
		req.SellerID, req.HorizonDays, req.SlotDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем и валидируем политику генерации
	policy, err := buildPolicy(req)
	if err != nil {
		uc.logger.Warn("ListAvailability: policy validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Проверяем, что продавец существует и является продавцом
	seller, err := uc.userRepo.GetByID(ctx, req.SellerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("ListAvailability: seller id=%d not found", req.SellerID)
			return nil, ErrSellerNotFound
		}
		uc.logger.Error("ListAvailability: failed to get seller id=%d: %v", req.SellerID, err)
		return nil, fmt.Errorf("%w: failed to get seller: %v", ErrInternal, err)
	}
	if !seller.IsSeller() {
		uc.logger.Warn("ListAvailability: user id=%d is not a seller", req.SellerID)
		return nil, ErrNotSeller
	}

	// 5. Получаем занятые интервалы из внешнего календаря
	busy, err := uc.calendarSvc.FetchBusy(ctx, req.SellerID, policy.HorizonDays)
	if err != nil {
		switch {
		case errors.Is(err, calendarSvc.ErrNotConnected):
			uc.logger.Warn("ListAvailability: seller id=%d has no connected calendar", req.SellerID)
			return nil, ErrSellerNotConnected
		case errors.Is(err, calendarSvc.ErrUserNotFound):
			return nil, ErrSellerNotFound
		case errors.Is(err, calendarSvc.ErrUnavailable):
			uc.logger.Error("ListAvailability: calendar unavailable for seller id=%d: %v", req.SellerID, err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		default:
			uc.logger.Error("ListAvailability: failed to fetch busy intervals for seller id=%d: %v", req.SellerID, err)
			return nil, fmt.Errorf("%w: failed to fetch busy intervals: %v", ErrInternal, err)
		}
	}

	// 6. Генерируем слоты; порядок результата значим
	slots := domain.GenerateSlots(busy, policy, now)

	uc.logger.Info("ListAvailability: generated %d slots for seller=%d", len(slots), req.SellerID)

	return &Response{
		SellerID: req.SellerID,
		Slots:    slots,
		Count:    len(slots),
	}, nil
}
