package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	partRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/part"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
	"github.com/m04kA/SMC-ServiceDesk/pkg/metrics"
)

type mockPartRepo struct{ mock.Mock }

func (m *mockPartRepo) GetByID(ctx context.Context, id int64) (*domain.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Part), args.Error(1)
}

func (m *mockPartRepo) List(ctx context.Context, lowStockOnly bool) ([]*domain.Part, error) {
	args := m.Called(ctx, lowStockOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Part), args.Error(1)
}

func (m *mockPartRepo) Restock(ctx context.Context, partID int64, quantity int, reason string) (*domain.PartConsumption, error) {
	args := m.Called(ctx, partID, quantity, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartConsumption), args.Error(1)
}

func (m *mockPartRepo) Adjust(ctx context.Context, partID int64, delta int, reason string) (*domain.PartConsumption, error) {
	args := m.Called(ctx, partID, delta, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartConsumption), args.Error(1)
}

func (m *mockPartRepo) Movements(ctx context.Context, partID int64, limit uint64) ([]*domain.StockMovement, error) {
	args := m.Called(ctx, partID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StockMovement), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (directTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *mockPartRepo, *mockPublisher) {
	repo := &mockPartRepo{}
	publisher := &mockPublisher{}
	return NewService(repo, publisher, directTx{}, (*metrics.Metrics)(nil), nopLogger{}), repo, publisher
}

func part(stock, minStock int) domain.Part {
	return domain.Part{
		ID:        5,
		Name:      "Résistance 2000W",
		Reference: "RS-2000",
		UnitPrice: decimal.RequireFromString("34.90"),
		Stock:     stock,
		MinStock:  minStock,
	}
}

func TestList(t *testing.T) {
	svc, repo, _ := newService()
	low := part(1, 2)
	repo.On("List", mock.Anything, true).Return([]*domain.Part{&low}, nil)

	resp, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp.Parts, 1)
	assert.True(t, resp.Parts[0].LowStock)
	assert.Equal(t, "RS-2000", resp.Parts[0].Reference)
}

func TestMovements(t *testing.T) {
	svc, repo, _ := newService()
	p := part(3, 1)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&p, nil)
	repo.On("Movements", mock.Anything, int64(5), uint64(models.DefaultMovementsLimit)).Return([]*domain.StockMovement{
		domain.NewStockMovement(5, domain.MovementOut, -2, 3, "consumed by intervention"),
		domain.NewStockMovement(5, domain.MovementIn, 5, 5, "restock"),
	}, nil)

	resp, err := svc.Movements(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, resp.Movements, 2)
	assert.Equal(t, "out", resp.Movements[0].Kind)
	assert.Equal(t, 5, resp.Movements[0].StockBefore)
	assert.Equal(t, 3, resp.Movements[0].StockAfter)
}

func TestMovements_Errors(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, partRepo.ErrPartNotFound)

	_, err := svc.Movements(context.Background(), 404, 10)
	assert.ErrorIs(t, err, ErrPartNotFound)

	_, err = svc.Movements(context.Background(), 5, models.MaxMovementsLimit+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRestock(t *testing.T) {
	svc, repo, _ := newService()
	after := part(8, 2)
	repo.On("Restock", mock.Anything, int64(5), 5, "restock").Return(&domain.PartConsumption{
		Part:     after,
		Movement: *domain.NewStockMovement(5, domain.MovementIn, 5, 8, "restock"),
	}, nil)

	resp, err := svc.Restock(context.Background(), 5, &models.RestockRequest{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Part.Stock)
	assert.Equal(t, 3, resp.Movement.StockBefore)
	assert.Equal(t, "in", resp.Movement.Kind)
}

func TestRestock_Validation(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Restock(context.Background(), 5, &models.RestockRequest{Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Restock(context.Background(), 5, &models.RestockRequest{Quantity: -3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.AssertNotCalled(t, "Restock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name         string
		req          *models.AdjustRequest
		prepare      func(repo *mockPartRepo, publisher *mockPublisher)
		wantErr      error
		wantLowStock bool
	}{
		{
			name:    "zero delta",
			req:     &models.AdjustRequest{Delta: 0, Reason: "inventaire"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing reason",
			req:     &models.AdjustRequest{Delta: -1, Reason: "  "},
			wantErr: ErrInvalidInput,
		},
		{
			name: "would go negative",
			req:  &models.AdjustRequest{Delta: -10, Reason: "casse"},
			prepare: func(repo *mockPartRepo, _ *mockPublisher) {
				repo.On("Adjust", mock.Anything, int64(5), -10, "casse").
					Return(nil, fmt.Errorf("%w: Adjust - no rows", partRepo.ErrInsufficientStock))
			},
			wantErr: ErrInsufficientStock,
		},
		{
			name: "unknown part",
			req:  &models.AdjustRequest{Delta: 2, Reason: "inventaire"},
			prepare: func(repo *mockPartRepo, _ *mockPublisher) {
				repo.On("Adjust", mock.Anything, int64(5), 2, "inventaire").Return(nil, partRepo.ErrPartNotFound)
			},
			wantErr: ErrPartNotFound,
		},
		{
			name: "database failure",
			req:  &models.AdjustRequest{Delta: 2, Reason: "inventaire"},
			prepare: func(repo *mockPartRepo, _ *mockPublisher) {
				repo.On("Adjust", mock.Anything, int64(5), 2, "inventaire").Return(nil, errors.New("connection reset"))
			},
			wantErr: ErrInternal,
		},
		{
			name: "drop below threshold publishes low stock",
			req:  &models.AdjustRequest{Delta: -2, Reason: "casse"},
			prepare: func(repo *mockPartRepo, publisher *mockPublisher) {
				repo.On("Adjust", mock.Anything, int64(5), -2, "casse").Return(&domain.PartConsumption{
					Part:     part(1, 2),
					Movement: *domain.NewStockMovement(5, domain.MovementAdjustment, -2, 1, "casse"),
				}, nil)
				publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
					return e.Type == events.StockLow && e.AggregateID == 5
				})).Return(nil)
			},
			wantLowStock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, publisher := newService()
			if tt.prepare != nil {
				tt.prepare(repo, publisher)
			}

			resp, err := svc.Adjust(context.Background(), 5, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLowStock, resp.Part.LowStock)
			publisher.AssertExpectations(t)
		})
	}
}
