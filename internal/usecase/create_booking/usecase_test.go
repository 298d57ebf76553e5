package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/googlecalendar"
	calendarSvc "github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
)

// 2026-03-02 — понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type mockUserRepo struct {
	users map[int64]*domain.User
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type mockApptRepo struct {
	overlapping []int64
	overlapErr  error
	createErr   error

	created *domain.Appointment
}

func (m *mockApptRepo) FindOverlapping(_ context.Context, _ int64, _, _ time.Time) ([]int64, error) {
	if m.overlapErr != nil {
		return nil, m.overlapErr
	}
	return m.overlapping, nil
}

func (m *mockApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	appt.ID = 101
	appt.CreatedAt = monday
	m.created = appt
	return appt, nil
}

type calendarCall struct {
	userID int64
	event  googlecalendar.Event
}

type mockCalendarService struct {
	busy     []domain.Interval
	busyErr  error
	eventErr error

	// Ошибка только для зеркального события покупателя
	mirrorErr error

	created    *googlecalendar.CreatedEvent
	eventCalls []calendarCall
}

func (m *mockCalendarService) FetchBusy(_ context.Context, _ int64, _ int) ([]domain.Interval, error) {
	if m.busyErr != nil {
		return nil, m.busyErr
	}
	return m.busy, nil
}

func (m *mockCalendarService) CreateEvent(_ context.Context, userID int64, event googlecalendar.Event) (*googlecalendar.CreatedEvent, error) {
	m.eventCalls = append(m.eventCalls, calendarCall{userID: userID, event: event})
	if len(m.eventCalls) > 1 && m.mirrorErr != nil {
		return nil, m.mirrorErr
	}
	if m.eventErr != nil {
		return nil, m.eventErr
	}
	if m.created != nil {
		return m.created, nil
	}
	return &googlecalendar.CreatedEvent{ID: "evt-1"}, nil
}

type mockTxManager struct {
	err error
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func seller(id int64) *domain.User {
	token := "encrypted-refresh"
	return &domain.User{
		ID:                    id,
		Email:                 "seller@example.com",
		Role:                  domain.RoleSeller,
		EncryptedRefreshToken: &token,
	}
}

func buyer(id int64) *domain.User {
	return &domain.User{ID: id, Email: "buyer@example.com", Role: domain.RoleBuyer}
}

func validRequest() *Request {
	return &Request{
		BuyerID:  2,
		SellerID: 1,
		Start:    monday.Add(10 * time.Hour),
		End:      monday.Add(10*time.Hour + 30*time.Minute),
	}
}

func newTestUseCase(appts *mockApptRepo, users *mockUserRepo, cal *mockCalendarService, tx *mockTxManager) *UseCase {
	uc := NewUseCase(appts, users, cal, tx, nopLogger{})
	uc.timeProvider = &fixedTime{now: monday.Add(8 * time.Hour)}
	return uc
}

func TestExecute_Success(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
	appts := &mockApptRepo{}
	cal := &mockCalendarService{
		created: &googlecalendar.CreatedEvent{ID: "evt-42", HangoutLink: "https://meet.example/abc"},
	}
	uc := newTestUseCase(appts, users, cal, &mockTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.AppointmentID)
	assert.Equal(t, "evt-42", resp.GoogleEventID)
	require.NotNil(t, resp.MeetURL)
	assert.Equal(t, "https://meet.example/abc", *resp.MeetURL)

	// Событие создано в календаре продавца с конференцией и обоими участниками
	require.Len(t, cal.eventCalls, 1)
	assert.Equal(t, int64(1), cal.eventCalls[0].userID)
	assert.True(t, cal.eventCalls[0].event.WithConference)
	assert.ElementsMatch(t, []string{"seller@example.com", "buyer@example.com"}, cal.eventCalls[0].event.Attendees)

	// Запись сохранена
	require.NotNil(t, appts.created)
	assert.Equal(t, "evt-42", appts.created.GoogleEventID)
	assert.Equal(t, resp.Summary, appts.created.Summary)
}

func TestExecute_BuyerMirror(t *testing.T) {
	connectedBuyer := buyer(2)
	token := "buyer-refresh"
	connectedBuyer.EncryptedRefreshToken = &token

	t.Run("mirrors event to connected buyer", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: connectedBuyer}}
		cal := &mockCalendarService{}
		uc := newTestUseCase(&mockApptRepo{}, users, cal, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		require.Len(t, cal.eventCalls, 2)
		assert.Equal(t, int64(2), cal.eventCalls[1].userID)
		assert.False(t, cal.eventCalls[1].event.WithConference)
	})

	t.Run("mirror failure does not fail booking", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: connectedBuyer}}
		cal := &mockCalendarService{mirrorErr: calendarSvc.ErrUnavailable}
		appts := &mockApptRepo{}
		uc := newTestUseCase(appts, users, cal, &mockTxManager{})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.NotZero(t, resp.AppointmentID)
	})

	t.Run("no mirror for disconnected buyer", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
		cal := &mockCalendarService{}
		uc := newTestUseCase(&mockApptRepo{}, users, cal, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Len(t, cal.eventCalls, 1)
	})
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockApptRepo{}, &mockUserRepo{}, &mockCalendarService{}, &mockTxManager{})

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero buyer id", func(r *Request) { r.BuyerID = 0 }, ErrInvalidInput},
		{"zero seller id", func(r *Request) { r.SellerID = 0 }, ErrInvalidInput},
		{"buyer equals seller", func(r *Request) { r.BuyerID = r.SellerID }, ErrInvalidInput},
		{"zero start", func(r *Request) { r.Start = time.Time{} }, ErrInvalidInput},
		{"start equals end", func(r *Request) { r.End = r.Start }, ErrInvalidInterval},
		{"start after end", func(r *Request) { r.Start, r.End = r.End, r.Start }, ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_PastSlot(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
	uc := newTestUseCase(&mockApptRepo{}, users, &mockCalendarService{}, &mockTxManager{})

	req := validRequest()
	req.Start = monday.Add(7 * time.Hour) // раньше now
	req.End = monday.Add(8 * time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_ParticipantErrors(t *testing.T) {
	t.Run("seller not found", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{2: buyer(2)}}
		uc := newTestUseCase(&mockApptRepo{}, users, &mockCalendarService{}, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})

	t.Run("seller is not a seller", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: buyer(1), 2: buyer(2)}}
		uc := newTestUseCase(&mockApptRepo{}, users, &mockCalendarService{}, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrNotSeller)
	})

	t.Run("buyer not found", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1)}}
		uc := newTestUseCase(&mockApptRepo{}, users, &mockCalendarService{}, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrBuyerNotFound)
	})
}

func TestExecute_AuthoritativeRecheck(t *testing.T) {
	t.Run("conflict with fresh busy data", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
		cal := &mockCalendarService{
			busy: []domain.Interval{
				{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
			},
		}
		uc := newTestUseCase(&mockApptRepo{}, users, cal, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
		// До записи события дело не дошло
		assert.Empty(t, cal.eventCalls)
	})

	t.Run("adjacent busy interval does not conflict", func(t *testing.T) {
		users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
		cal := &mockCalendarService{
			busy: []domain.Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
				{Start: monday.Add(10*time.Hour + 30*time.Minute), End: monday.Add(11 * time.Hour)},
			},
		}
		uc := newTestUseCase(&mockApptRepo{}, users, cal, &mockTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("calendar errors are mapped", func(t *testing.T) {
		tests := []struct {
			name    string
			busyErr error
			wantErr error
		}{
			{"not connected", calendarSvc.ErrNotConnected, ErrSellerNotConnected},
			{"unavailable", calendarSvc.ErrUnavailable, ErrCalendarUnavailable},
			{"internal", calendarSvc.ErrInternal, ErrInternal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
				cal := &mockCalendarService{busyErr: tt.busyErr}
				uc := newTestUseCase(&mockApptRepo{}, users, cal, &mockTxManager{})

				_, err := uc.Execute(context.Background(), validRequest())
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestExecute_EventCreationFails(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
	cal := &mockCalendarService{eventErr: calendarSvc.ErrUnavailable}
	appts := &mockApptRepo{}
	uc := newTestUseCase(appts, users, cal, &mockTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
	assert.Nil(t, appts.created)
}

func TestExecute_LocalOverlapGuard(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
	appts := &mockApptRepo{overlapping: []int64{55}}
	uc := newTestUseCase(appts, users, &mockCalendarService{}, &mockTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, appts.created)
}

func TestExecute_TxFailure(t *testing.T) {
	users := &mockUserRepo{users: map[int64]*domain.User{1: seller(1), 2: buyer(2)}}
	appts := &mockApptRepo{createErr: assert.AnError}
	uc := newTestUseCase(appts, users, &mockCalendarService{}, &mockTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
