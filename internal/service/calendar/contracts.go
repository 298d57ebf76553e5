package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/googlecalendar"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateTokens(ctx context.Context, id int64, encryptedRefresh, encryptedAccess *string, expiresAt *time.Time) error
	UpdateAccessToken(ctx context.Context, id int64, encryptedAccess string, expiresAt time.Time) error
}

// CalendarAPI интерфейс низкоуровневого клиента Google Calendar
type CalendarAPI interface {
	ExchangeCode(ctx context.Context, code string) (*googlecalendar.Tokens, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*googlecalendar.Tokens, error)
	FreeBusy(ctx context.Context, accessToken, calendarID string, timeMin, timeMax time.Time) ([]domain.Interval, error)
	InsertEvent(ctx context.Context, accessToken, calendarID string, event googlecalendar.Event) (*googlecalendar.CreatedEvent, error)
}

// TokenCodec интерфейс шифрования токенов at rest
type TokenCodec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
