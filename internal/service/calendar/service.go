package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// accessTokenSlack запас до истечения access токена, после которого он
// считается протухшим и обновляется заранее
const accessTokenSlack = 60 * time.Second

// Service источник занятых интервалов и записи событий для календаря
// пользователя. Свежесть данных определяется моментом вызова: FetchBusy
// всегда ходит во внешний календарь, никакого кеширования busy-интервалов.
type Service struct {
	users        UserRepository
	api          CalendarAPI
	codec        TokenCodec
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр календарного сервиса
func NewService(users UserRepository, api CalendarAPI, codec TokenCodec, logger Logger) *Service {
	return &Service{
		users:        users,
		api:          api,
		codec:        codec,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// FetchBusy возвращает занятые интервалы календаря пользователя за
// полуоткрытое окно [now, now+horizonDays)
func (s *Service) FetchBusy(ctx context.Context, userID int64, horizonDays int) ([]domain.Interval, error) {
	now := s.timeProvider.Now().In(domain.ReferenceLocation)

	accessToken, user, err := s.accessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	busy, err := s.api.FreeBusy(ctx, accessToken, user.TargetCalendarID(), now, now.AddDate(0, 0, horizonDays))
	if err != nil {
		// Ядро не различает подпричины: auth, сеть и rate limit одинаково
		// транзиентны для вызывающей стороны
		s.logger.Error("FetchBusy: freebusy query failed for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: freebusy query: %v", ErrUnavailable, err)
	}

	s.logger.Info("FetchBusy: fetched %d busy intervals for user=%d, horizon=%d days", len(busy), userID, horizonDays)
	return busy, nil
}

// CreateEvent создает событие в календаре пользователя и возвращает его
// идентификатор и Meet-ссылку, если она была запрошена
func (s *Service) CreateEvent(ctx context.Context, userID int64, event googlecalendar.Event) (*googlecalendar.CreatedEvent, error) {
	accessToken, user, err := s.accessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.api.InsertEvent(ctx, accessToken, user.TargetCalendarID(), event)
	if err != nil {
		s.logger.Error("CreateEvent: events.insert failed for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: events.insert: %v", ErrUnavailable, err)
	}

	s.logger.Info("CreateEvent: created event id=%s for user=%d", created.ID, userID)
	return created, nil
}

// ConnectCalendar обменивает authorization code на токены и сохраняет их
// в зашифрованном виде
func (s *Service) ConnectCalendar(ctx context.Context, userID int64, code string) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	tokens, err := s.api.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Error("ConnectCalendar: code exchange failed for user=%d: %v", userID, err)
		return fmt.Errorf("%w: code exchange: %v", ErrUnavailable, err)
	}
	if tokens.RefreshToken == "" {
		s.logger.Warn("ConnectCalendar: token exchange for user=%d returned no refresh token", userID)
		return fmt.Errorf("%w: no refresh token granted", ErrUnavailable)
	}

	encryptedRefresh, err := s.codec.Encrypt(tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("%w: encrypt refresh token: %v", ErrInternal, err)
	}
	encryptedAccess, err := s.codec.Encrypt(tokens.AccessToken)
	if err != nil {
		return fmt.Errorf("%w: encrypt access token: %v", ErrInternal, err)
	}

	if err := s.users.UpdateTokens(ctx, userID, ptr.Ptr(encryptedRefresh), ptr.Ptr(encryptedAccess), ptr.Ptr(tokens.ExpiresAt)); err != nil {
		s.logger.Error("ConnectCalendar: failed to store tokens for user=%d: %v", userID, err)
		return fmt.Errorf("%w: store tokens: %v", ErrInternal, err)
	}

	s.logger.Info("ConnectCalendar: calendar connected for user=%d", userID)
	return nil
}

func (s *Service) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	return user, nil
}

// accessToken возвращает действующий access token пользователя. Свежий
// закешированный токен переиспользуется; протухший обновляется по
// refresh-гранту, и новый токен сохраняется обратно (best effort).
func (s *Service) accessToken(ctx context.Context, userID int64) (string, *domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	if !user.CalendarConnected() {
		return "", nil, ErrNotConnected
	}

	now := s.timeProvider.Now()

	// Закешированный access token еще жив
	if user.EncryptedAccessToken != nil && user.AccessTokenExpiresAt != nil &&
		now.Before(user.AccessTokenExpiresAt.Add(-accessTokenSlack)) {
		accessToken, err := s.codec.Decrypt(*user.EncryptedAccessToken)
		if err == nil {
			return accessToken, user, nil
		}
		// Нечитаемый кеш не фатален — идем по refresh-гранту
		s.logger.Warn("accessToken: failed to decrypt cached access token for user=%d: %v", userID, err)
	}

	refreshToken, err := s.codec.Decrypt(*user.EncryptedRefreshToken)
	if err != nil {
		s.logger.Error("accessToken: failed to decrypt refresh token for user=%d: %v", userID, err)
		return "", nil, fmt.Errorf("%w: decrypt refresh token: %v", ErrInternal, err)
	}

	tokens, err := s.api.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		s.logger.Error("accessToken: refresh grant failed for user=%d: %v", userID, err)
		return "", nil, fmt.Errorf("%w: refresh grant: %v", ErrUnavailable, err)
	}

	// Обновление кеша — best effort, запрос важнее
	if encryptedAccess, err := s.codec.Encrypt(tokens.AccessToken); err == nil {
		if err := s.users.UpdateAccessToken(ctx, userID, encryptedAccess, tokens.ExpiresAt); err != nil {
			s.logger.Warn("accessToken: failed to cache access token for user=%d: %v", userID, err)
		}
	}

	return tokens.AccessToken, user, nil
}
