package warranty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ServiceDesk/pkg/ptr"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetClaim(ctx context.Context, claimID int64) (*catalogservice.Claim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogservice.Claim), args.Error(1)
}

func (m *mockCatalog) GetPurchasedArticle(ctx context.Context, id int64) (*catalogservice.PurchasedArticle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogservice.PurchasedArticle), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCovers(t *testing.T) {
	purchase := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		months int
		at     time.Time
		want   bool
	}{
		{"purchase day", 12, purchase, true},
		{"before purchase", 12, purchase.Add(-time.Hour), false},
		{"last moment", 12, purchase.AddDate(1, 0, 0).Add(-time.Second), true},
		{"expiry instant", 12, purchase.AddDate(1, 0, 0), false},
		{"no warranty", 0, purchase, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Covers(purchase, tt.months, tt.at))
		})
	}
}

func TestEvaluator_IsClaimUnderWarranty(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	catalog := &mockCatalog{}
	catalog.On("GetClaim", ctx, int64(9)).
		Return(&catalogservice.Claim{ID: 9, ClientID: 7, PurchasedArticleID: 31}, nil)
	catalog.On("GetPurchasedArticle", ctx, int64(31)).
		Return(&catalogservice.PurchasedArticle{ID: 31, PurchaseDate: at.AddDate(-1, 0, 0), WarrantyMonths: 24}, nil)

	evaluator := NewEvaluator(catalog, nopLogger{})

	covered, err := evaluator.IsClaimUnderWarranty(ctx, ptr.Ptr(int64(9)), at)
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = evaluator.IsClaimUnderWarranty(ctx, nil, at)
	require.NoError(t, err)
	assert.False(t, covered)

	catalog.AssertExpectations(t)
}

func TestEvaluator_Errors(t *testing.T) {
	ctx := context.Background()
	catalog := &mockCatalog{}
	catalog.On("GetClaim", ctx, int64(1)).Return(nil, catalogservice.ErrClaimNotFound)
	catalog.On("GetClaim", ctx, int64(2)).Return(nil, errors.New("timeout"))

	evaluator := NewEvaluator(catalog, nopLogger{})

	_, err := evaluator.IsClaimUnderWarranty(ctx, ptr.Ptr(int64(1)), time.Now())
	assert.ErrorIs(t, err, ErrClaimNotFound)

	_, err = evaluator.IsClaimUnderWarranty(ctx, ptr.Ptr(int64(2)), time.Now())
	assert.ErrorIs(t, err, ErrInternal)
}
