package calendar

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

var now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type mockUserRepo struct {
	users map[int64]*domain.User

	updateTokensCalled      bool
	updateAccessCalled      bool
	updateAccessTokenErr    error
	storedEncryptedRefresh  *string
	storedEncryptedAccess   *string
	storedAccessTokenCached string
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdateTokens(_ context.Context, _ int64, encryptedRefresh, encryptedAccess *string, _ *time.Time) error {
	m.updateTokensCalled = true
	m.storedEncryptedRefresh = encryptedRefresh
	m.storedEncryptedAccess = encryptedAccess
	return nil
}

func (m *mockUserRepo) UpdateAccessToken(_ context.Context, _ int64, encryptedAccess string, _ time.Time) error {
	m.updateAccessCalled = true
	m.storedAccessTokenCached = encryptedAccess
	return m.updateAccessTokenErr
}

type mockAPI struct {
	exchangeTokens *googlecalendar.Tokens
	exchangeErr    error
	refreshTokens  *googlecalendar.Tokens
	refreshErr     error
	busy           []domain.Interval
	freeBusyErr    error
	createdEvent   *googlecalendar.CreatedEvent
	insertErr      error

	gotAccessToken string
	gotCalendarID  string
	gotTimeMin     time.Time
	gotTimeMax     time.Time
	refreshCalls   int
}

func (m *mockAPI) ExchangeCode(_ context.Context, _ string) (*googlecalendar.Tokens, error) {
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.exchangeTokens, nil
}

func (m *mockAPI) RefreshAccessToken(_ context.Context, _ string) (*googlecalendar.Tokens, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshTokens, nil
}

func (m *mockAPI) FreeBusy(_ context.Context, accessToken, calendarID string, timeMin, timeMax time.Time) ([]domain.Interval, error) {
	m.gotAccessToken = accessToken
	m.gotCalendarID = calendarID
	m.gotTimeMin = timeMin
	m.gotTimeMax = timeMax
	if m.freeBusyErr != nil {
		return nil, m.freeBusyErr
	}
	return m.busy, nil
}

func (m *mockAPI) InsertEvent(_ context.Context, accessToken, calendarID string, _ googlecalendar.Event) (*googlecalendar.CreatedEvent, error) {
	m.gotAccessToken = accessToken
	m.gotCalendarID = calendarID
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	return m.createdEvent, nil
}

// fakeCodec обратимое кодирование без настоящей криптографии
type fakeCodec struct{}

func (fakeCodec) Encrypt(plaintext string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(plaintext)), nil
}

func (fakeCodec) Decrypt(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func encrypted(t *testing.T, plaintext string) string {
	t.Helper()
	s, err := fakeCodec{}.Encrypt(plaintext)
	require.NoError(t, err)
	return s
}

func connectedUser(t *testing.T, id int64) *domain.User {
	return &domain.User{
		ID:                    id,
		Email:                 "user@example.com",
		Role:                  domain.RoleSeller,
		EncryptedRefreshToken: ptr.Ptr(encrypted(t, "refresh-token")),
	}
}

func newTestService(users *mockUserRepo, api *mockAPI) *Service {
	svc := NewService(users, api, fakeCodec{}, nopLogger{})
	svc.timeProvider = &fixedTime{now: now}
	return svc
}

func TestFetchBusy(t *testing.T) {
	t.Run("refresh grant path", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: connectedUser(t, 1)}}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "fresh-at", ExpiresAt: now.Add(time.Hour)},
			busy:          []domain.Interval{{Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour)}},
		}
		svc := newTestService(users, api)

		busy, err := svc.FetchBusy(context.Background(), 1, 14)
		require.NoError(t, err)
		require.Len(t, busy, 1)

		assert.Equal(t, "fresh-at", api.gotAccessToken)
		assert.Equal(t, domain.DefaultCalendarID, api.gotCalendarID)
		assert.Equal(t, now, api.gotTimeMin)
		assert.Equal(t, now.AddDate(0, 0, 14), api.gotTimeMax)

		// Новый access token закеширован
		assert.True(t, users.updateAccessCalled)
		assert.Equal(t, encrypted(t, "fresh-at"), users.storedAccessTokenCached)
	})

	t.Run("cached access token is reused", func(t *testing.T) {
		user := connectedUser(t, 1)
		user.EncryptedAccessToken = ptr.Ptr(encrypted(t, "cached-at"))
		user.AccessTokenExpiresAt = ptr.Ptr(now.Add(30 * time.Minute))

		users := &mockUserRepo{users: map[int64]*domain.User{1: user}}
		api := &mockAPI{}
		svc := newTestService(users, api)

		_, err := svc.FetchBusy(context.Background(), 1, 7)
		require.NoError(t, err)

		assert.Equal(t, "cached-at", api.gotAccessToken)
		assert.Zero(t, api.refreshCalls)
	})

	t.Run("expiring access token triggers refresh", func(t *testing.T) {
		user := connectedUser(t, 1)
		user.EncryptedAccessToken = ptr.Ptr(encrypted(t, "stale-at"))
		// Истекает внутри 60-секундного запаса
		user.AccessTokenExpiresAt = ptr.Ptr(now.Add(30 * time.Second))

		users := &mockUserRepo{users: map[int64]*domain.User{1: user}}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "fresh-at", ExpiresAt: now.Add(time.Hour)},
		}
		svc := newTestService(users, api)

		_, err := svc.FetchBusy(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, api.refreshCalls)
		assert.Equal(t, "fresh-at", api.gotAccessToken)
	})

	t.Run("custom calendar id", func(t *testing.T) {
		user := connectedUser(t, 1)
		user.CalendarID = ptr.Ptr("work@group.calendar.google.com")

		users := &mockUserRepo{users: map[int64]*domain.User{1: user}}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "at", ExpiresAt: now.Add(time.Hour)},
		}
		svc := newTestService(users, api)

		_, err := svc.FetchBusy(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, "work@group.calendar.google.com", api.gotCalendarID)
	})

	t.Run("user not found", func(t *testing.T) {
		svc := newTestService(&mockUserRepo{users: map[int64]*domain.User{}}, &mockAPI{})
		_, err := svc.FetchBusy(context.Background(), 42, 7)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("calendar not connected", func(t *testing.T) {
		user := &domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleSeller}
		svc := newTestService(&mockUserRepo{users: map[int64]*domain.User{1: user}}, &mockAPI{})
		_, err := svc.FetchBusy(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("refresh grant failure", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: connectedUser(t, 1)}}
		api := &mockAPI{refreshErr: googlecalendar.ErrUnauthorized}
		svc := newTestService(users, api)

		_, err := svc.FetchBusy(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("freebusy failure", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: connectedUser(t, 1)}}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "at", ExpiresAt: now.Add(time.Hour)},
			freeBusyErr:   googlecalendar.ErrUnavailable,
		}
		svc := newTestService(users, api)

		_, err := svc.FetchBusy(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		users := &mockUserRepo{
			users:                map[int64]*domain.User{1: connectedUser(t, 1)},
			updateAccessTokenErr: assert.AnError,
		}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "at", ExpiresAt: now.Add(time.Hour)},
		}
		svc := newTestService(users, api)

		_, err := svc.FetchBusy(context.Background(), 1, 7)
		assert.NoError(t, err)
	})
}

func TestCreateEvent(t *testing.T) {
	event := googlecalendar.Event{
		Summary: "Appointment",
		Start:   now.Add(2 * time.Hour),
		End:     now.Add(2*time.Hour + 30*time.Minute),
	}

	t.Run("success", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: connectedUser(t, 1)}}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "at", ExpiresAt: now.Add(time.Hour)},
			createdEvent:  &googlecalendar.CreatedEvent{ID: "evt-1", HangoutLink: "https://meet.google.com/abc"},
		}
		svc := newTestService(users, api)

		created, err := svc.CreateEvent(context.Background(), 1, event)
		require.NoError(t, err)
		assert.Equal(t, "evt-1", created.ID)
	})

	t.Run("insert failure", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: connectedUser(t, 1)}}
		api := &mockAPI{
			refreshTokens: &googlecalendar.Tokens{AccessToken: "at", ExpiresAt: now.Add(time.Hour)},
			insertErr:     googlecalendar.ErrUnavailable,
		}
		svc := newTestService(users, api)

		_, err := svc.CreateEvent(context.Background(), 1, event)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestConnectCalendar(t *testing.T) {
	plainUser := &domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleBuyer}

	t.Run("success", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: plainUser}}
		api := &mockAPI{
			exchangeTokens: &googlecalendar.Tokens{
				AccessToken:  "at-1",
				RefreshToken: "rt-1",
				ExpiresAt:    now.Add(time.Hour),
			},
		}
		svc := newTestService(users, api)

		require.NoError(t, svc.ConnectCalendar(context.Background(), 1, "auth-code"))

		assert.True(t, users.updateTokensCalled)
		require.NotNil(t, users.storedEncryptedRefresh)
		assert.Equal(t, encrypted(t, "rt-1"), *users.storedEncryptedRefresh)
		require.NotNil(t, users.storedEncryptedAccess)
		assert.Equal(t, encrypted(t, "at-1"), *users.storedEncryptedAccess)
	})

	t.Run("no refresh token granted", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: plainUser}}
		api := &mockAPI{
			exchangeTokens: &googlecalendar.Tokens{AccessToken: "at-1", ExpiresAt: now.Add(time.Hour)},
		}
		svc := newTestService(users, api)

		err := svc.ConnectCalendar(context.Background(), 1, "auth-code")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.False(t, users.updateTokensCalled)
	})

	t.Run("exchange failure", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: plainUser}}
		api := &mockAPI{exchangeErr: googlecalendar.ErrUnauthorized}
		svc := newTestService(users, api)

		err := svc.ConnectCalendar(context.Background(), 1, "bad-code")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("user not found", func(t *testing.T) {
		svc := newTestService(&mockUserRepo{users: map[int64]*domain.User{}}, &mockAPI{})
		err := svc.ConnectCalendar(context.Background(), 42, "auth-code")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
