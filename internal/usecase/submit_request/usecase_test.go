package submit_request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	slotRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/userservice"
	"github.com/m04kA/SMC-ServiceDesk/pkg/metrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/ptr"
)

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) LockClient(ctx context.Context, clientID int64) error {
	return m.Called(ctx, clientID).Error(0)
}

func (m *mockRequestRepo) HasActive(ctx context.Context, clientID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, clientID, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	args := m.Called(ctx, req)
	if fn, ok := args.Get(0).(func(*domain.BookingRequest) *domain.BookingRequest); ok {
		return fn(req), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

type mockClaims struct{ mock.Mock }

func (m *mockClaims) GetClaim(ctx context.Context, claimID int64) (*catalogservice.Claim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogservice.Claim), args.Error(1)
}

type mockPicker struct{ mock.Mock }

func (m *mockPicker) PickAvailableResponsable(ctx context.Context) (*int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	requests  *mockRequestRepo
	slots     *mockSlotRepo
	claims    *mockClaims
	picker    *mockPicker
	publisher *mockPublisher
	uc        *UseCase
	now       time.Time
}

func newFixture() *fixture {
	f := &fixture{
		requests:  &mockRequestRepo{},
		slots:     &mockSlotRepo{},
		claims:    &mockClaims{},
		picker:    &mockPicker{},
		publisher: &mockPublisher{},
		now:       time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewUseCase(f.requests, f.slots, f.claims, f.picker, f.publisher, directTx{}, (*metrics.Metrics)(nil), nopLogger{})
	f.uc.timeProvider = fixedTime{now: f.now}
	return f
}

func validRequest() *Request {
	return &Request{
		ClientID:    3,
		Motive:      "  dishwasher does not drain ",
		DesiredDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		SlotID:      ptr.Ptr(int64(2)),
		ClaimID:     ptr.Ptr(int64(9)),
		Comment:     ptr.Ptr("   "),
	}
}

func TestExecute_CreatesPendingUnreservedRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slotStart := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	f.slots.On("GetByID", ctx, int64(2)).
		Return(&domain.Slot{ID: 2, TechnicianID: 7, StartAt: slotStart, EndAt: slotStart.Add(time.Hour)}, nil)
	f.claims.On("GetClaim", ctx, int64(9)).
		Return(&catalogservice.Claim{ID: 9, ClientID: 3, PurchasedArticleID: 31}, nil)
	f.picker.On("PickAvailableResponsable", ctx).Return(ptr.Ptr(int64(12)), nil)
	f.requests.On("LockClient", mock.Anything, int64(3)).Return(nil)
	f.requests.On("HasActive", mock.Anything, int64(3), f.now).Return(false, nil)
	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.BookingRequest) bool {
		return r.Status == domain.RequestStatusPending &&
			r.Motive == "dishwasher does not drain" &&
			r.Comment == nil &&
			*r.AssignedResponsableID == 12 &&
			*r.SlotID == 2
	})).Return(func(r *domain.BookingRequest) *domain.BookingRequest {
		r.ID = 15
		return r
	}, nil)
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.RequestSubmitted && e.AggregateID == 15
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	f.requests.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestExecute_ActiveRequestExists(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SlotID = nil
	req.ClaimID = nil

	f.picker.On("PickAvailableResponsable", mock.Anything).Return(nil, nil)
	f.requests.On("LockClient", mock.Anything, int64(3)).Return(nil)
	f.requests.On("HasActive", mock.Anything, int64(3), f.now).Return(true, nil)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrActiveRequestExists)
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_UnassignedWhenUserServiceDegraded(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SlotID = nil
	req.ClaimID = nil

	f.picker.On("PickAvailableResponsable", mock.Anything).Return(nil, userservice.ErrServiceDegraded)
	f.requests.On("LockClient", mock.Anything, int64(3)).Return(nil)
	f.requests.On("HasActive", mock.Anything, int64(3), f.now).Return(false, nil)
	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.BookingRequest) bool {
		return r.AssignedResponsableID == nil
	})).Return(&domain.BookingRequest{ID: 16, ClientID: 3, Status: domain.RequestStatusPending}, nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.AssignedResponsableID)
}

func TestExecute_SlotChecks(t *testing.T) {
	slotStart := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		slot    *domain.Slot
		slotErr error
		wantErr error
	}{
		{"missing", nil, slotRepo.ErrSlotNotFound, ErrSlotNotFound},
		{"reserved", &domain.Slot{ID: 2, StartAt: slotStart, IsReserved: true, InterventionID: ptr.Ptr(int64(40))}, nil, ErrSlotAlreadyReserved},
		{"already started", &domain.Slot{ID: 2, StartAt: time.Date(2024, 2, 28, 11, 0, 0, 0, time.UTC)}, nil, ErrInvalidInput},
		{"storage failure", nil, errors.New("db down"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			req.ClaimID = nil

			if tt.slot != nil {
				f.slots.On("GetByID", mock.Anything, int64(2)).Return(tt.slot, nil)
			} else {
				f.slots.On("GetByID", mock.Anything, int64(2)).Return(nil, tt.slotErr)
			}

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ClaimOfAnotherClient(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SlotID = nil

	f.claims.On("GetClaim", mock.Anything, int64(9)).
		Return(&catalogservice.Claim{ID: 9, ClientID: 4}, nil)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"no client", func(r *Request) { r.ClientID = 0 }},
		{"empty motive", func(r *Request) { r.Motive = "   " }},
		{"no date", func(r *Request) { r.DesiredDate = time.Time{} }},
		{"past date", func(r *Request) { r.DesiredDate = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }},
		{"bad slot id", func(r *Request) { r.SlotID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
