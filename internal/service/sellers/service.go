package sellers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/service/sellers/models"
)

// maxPreviewSlots количество слотов в превью карточки каталога
const maxPreviewSlots = 5

// Service сервис каталога продавцов
type Service struct {
	userRepo     UserRepository
	calendarSvc  CalendarService
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	userRepo UserRepository,
	calendarSvc CalendarService,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		calendarSvc:  calendarSvc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListSellers возвращает каталог продавцов с превью ближайших слотов.
// Превью best-effort: ошибка календаря одного продавца не валит весь
// каталог, его карточка уходит с пустым списком слотов.
func (s *Service) ListSellers(ctx context.Context) (*models.SellerListResponse, error) {
	s.logger.Info("ListSellers: fetching seller directory")

	sellers, err := s.userRepo.ListSellers(ctx)
	if err != nil {
		s.logger.Error("ListSellers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSellers - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	policy := domain.DefaultGenerationPolicy()
	policy.HorizonDays = domain.DefaultDirectoryHorizonDays

	resp := &models.SellerListResponse{
		Sellers: make([]models.SellerResponse, 0, len(sellers)),
	}

	for _, seller := range sellers {
		resp.Sellers = append(resp.Sellers, models.FromDomainSeller(seller, s.previewSlots(ctx, seller, policy, now)))
	}

	s.logger.Info("ListSellers: returning %d sellers", len(resp.Sellers))
	return resp, nil
}

// BecomeSeller переводит пользователя в роль продавца.
// Идемпотентна: повторный вызов для продавца ничего не меняет.
func (s *Service) BecomeSeller(ctx context.Context, userID int64) (*models.BecomeSellerResponse, error) {
	s.logger.Info("BecomeSeller: user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("BecomeSeller: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("BecomeSeller: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: BecomeSeller - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsSeller() {
		if err := s.userRepo.UpdateRole(ctx, userID, domain.RoleSeller); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			s.logger.Error("BecomeSeller: failed to update role for user id=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: BecomeSeller - failed to update role: %v", ErrInternal, err)
		}
		s.logger.Info("BecomeSeller: user=%d is now a seller", userID)
	}

	return &models.BecomeSellerResponse{
		ID:                userID,
		Role:              string(domain.RoleSeller),
		CalendarConnected: user.CalendarConnected(),
	}, nil
}

// previewSlots возвращает до maxPreviewSlots ближайших доступных слотов
func (s *Service) previewSlots(ctx context.Context, seller *domain.User, policy domain.GenerationPolicy, now time.Time) []domain.Slot {
	if !seller.CalendarConnected() {
		return nil
	}

	busy, err := s.calendarSvc.FetchBusy(ctx, seller.ID, policy.HorizonDays)
	if err != nil {
		s.logger.Warn("ListSellers: preview unavailable for seller=%d: %v", seller.ID, err)
		return nil
	}

	slots := domain.GenerateSlots(busy, policy, now)
	if len(slots) > maxPreviewSlots {
		slots = slots[:maxPreviewSlots]
	}
	return slots
}
