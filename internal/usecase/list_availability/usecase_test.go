package list_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	calendarSvc "github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
)

// 2026-03-02 — понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type mockUserRepo struct {
	users map[int64]*domain.User
	err   error
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type mockCalendarService struct {
	busy []domain.Interval
	err  error

	gotUserID  int64
	gotHorizon int
}

func (m *mockCalendarService) FetchBusy(_ context.Context, userID int64, horizonDays int) ([]domain.Interval, error) {
	m.gotUserID = userID
	m.gotHorizon = horizonDays
	if m.err != nil {
		return nil, m.err
	}
	return m.busy, nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func connectedSeller(id int64) *domain.User {
	token := "encrypted-refresh"
	return &domain.User{
		ID:                    id,
		Email:                 "seller@example.com",
		Role:                  domain.RoleSeller,
		EncryptedRefreshToken: &token,
	}
}

func newTestUseCase(users *mockUserRepo, cal *mockCalendarService, now time.Time) *UseCase {
	uc := NewUseCase(users, cal, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: connectedSeller(1)}}
	cal := &mockCalendarService{
		busy: []domain.Interval{
			{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
		},
	}
	uc := newTestUseCase(users, cal, monday.Add(8*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{SellerID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.SellerID)
	assert.Equal(t, len(resp.Slots), resp.Count)
	assert.Equal(t, int64(1), cal.gotUserID)
	assert.Equal(t, domain.DefaultHorizonDays, cal.gotHorizon)

	// Первый слот после занятого часа
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, monday.Add(10*time.Hour), resp.Slots[0].Start)
}

func TestExecute_CustomPolicy(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: connectedSeller(1)}}
	cal := &mockCalendarService{}
	uc := newTestUseCase(users, cal, monday.Add(8*time.Hour))

	req := &Request{SellerID: 1, HorizonDays: 1, SlotDurationMinutes: 60}
	req.SetWorkingHours(10, 12)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, monday.Add(10*time.Hour), resp.Slots[0].Start)
	assert.Equal(t, monday.Add(11*time.Hour), resp.Slots[1].Start)
	assert.Equal(t, 1, cal.gotHorizon)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockUserRepo{}, &mockCalendarService{}, monday)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"zero seller id", &Request{SellerID: 0}, ErrInvalidInput},
		{"negative seller id", &Request{SellerID: -5}, ErrInvalidInput},
		{"negative horizon", &Request{SellerID: 1, HorizonDays: -1}, ErrInvalidInput},
		{"negative slot duration", &Request{SellerID: 1, SlotDurationMinutes: -30}, ErrInvalidInput},
		{"horizon above max", &Request{SellerID: 1, HorizonDays: domain.MaxHorizonDays + 1}, ErrInvalidPolicy},
		{"slot duration above max", &Request{SellerID: 1, SlotDurationMinutes: domain.MaxSlotDurationMinutes + 1}, ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_InvalidWorkingHours(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: connectedSeller(1)}}
	uc := newTestUseCase(users, &mockCalendarService{}, monday)

	req := &Request{SellerID: 1}
	req.SetWorkingHours(17, 9)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestExecute_SellerNotFound(t *testing.T) {
	uc := newTestUseCase(&mockUserRepo{users: map[int64]*domain.User{}}, &mockCalendarService{}, monday)

	_, err := uc.Execute(context.Background(), &Request{SellerID: 42})
	assert.ErrorIs(t, err, ErrSellerNotFound)
}

func TestExecute_NotSeller(t *testing.T) {
	buyer := &domain.User{ID: 1, Email: "buyer@example.com", Role: domain.RoleBuyer}
	uc := newTestUseCase(&mockUserRepo{users: map[int64]*domain.User{1: buyer}}, &mockCalendarService{}, monday)

	_, err := uc.Execute(context.Background(), &Request{SellerID: 1})
	assert.ErrorIs(t, err, ErrNotSeller)
}

func TestExecute_CalendarErrors(t *testing.T) {
	tests := []struct {
		name    string
		calErr  error
		wantErr error
	}{
		{"not connected", calendarSvc.ErrNotConnected, ErrSellerNotConnected},
		{"user not found in calendar", calendarSvc.ErrUserNotFound, ErrSellerNotFound},
		{"calendar unavailable", calendarSvc.ErrUnavailable, ErrCalendarUnavailable},
		{"unexpected error", calendarSvc.ErrInternal, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserRepo{users: map[int64]*domain.User{1: connectedSeller(1)}}
			cal := &mockCalendarService{err: tt.calErr}
			uc := newTestUseCase(users, cal, monday)

			_, err := uc.Execute(context.Background(), &Request{SellerID: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
