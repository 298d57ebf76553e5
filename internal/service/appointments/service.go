package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы со встречами
type Service struct {
	apptRepo     AppointmentRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	apptRepo AppointmentRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetUserAppointments получает встречи пользователя, разделенные на будущие
// и прошедшие. Ракурс выбирает роль: покупатель, продавец или обе.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, view=%s", req.UserID, req.View)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Проверяем, что пользователь существует
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetUserAppointments: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetUserAppointments: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - failed to get user: %v", ErrInternal, err)
	}

	var appts []*domain.Appointment

	// Выбираем встречи по ракурсу; репозиторий возвращает их в
	// хронологическом порядке, при объединении порядок восстанавливаем слиянием
	if req.View == models.ViewAsBuyer || req.View == models.ViewAll {
		asBuyer, err := s.apptRepo.GetByBuyerID(ctx, req.UserID)
		if err != nil {
			s.logger.Error("GetUserAppointments: repository error for buyer=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
		}
		appts = asBuyer
	}

	if req.View == models.ViewAsSeller || req.View == models.ViewAll {
		asSeller, err := s.apptRepo.GetBySellerID(ctx, req.UserID)
		if err != nil {
			s.logger.Error("GetUserAppointments: repository error for seller=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
		}
		appts = mergeByStartTime(appts, asSeller)
	}

	now := s.timeProvider.Now()
	resp := models.SplitByTime(appts, now)

	s.logger.Info("GetUserAppointments: user=%d has %d upcoming and %d past appointments",
		req.UserID, len(resp.Upcoming), len(resp.Past))
	return resp, nil
}

// GetByID получает встречу по ID.
// Доступ только участникам: покупателю или продавцу встречи.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.BuyerID != userID && appt.SellerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// mergeByStartTime сливает два отсортированных по StartTime списка в один
func mergeByStartTime(a, b []*domain.Appointment) []*domain.Appointment {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}

	merged := make([]*domain.Appointment, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].StartTime.After(b[j].StartTime) {
			merged = append(merged, b[j])
			j++
		} else {
			merged = append(merged, a[i])
			i++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}
