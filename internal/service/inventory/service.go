package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	partRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/part"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
)

const defaultRestockReason = "restock"

// Service сервис склада запчастей
type Service struct {
	partRepo  PartRepository
	publisher EventPublisher
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса склада
func NewService(partRepo PartRepository, publisher EventPublisher, txManager TransactionManager, metrics Metrics, logger Logger) *Service {
	return &Service{
		partRepo:  partRepo,
		publisher: publisher,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// List возвращает запчасти; lowStockOnly оставляет только stock <= min_stock
func (s *Service) List(ctx context.Context, lowStockOnly bool) (*models.PartListResponse, error) {
	s.logger.Info("List: fetching parts, lowStockOnly=%t", lowStockOnly)

	parts, err := s.partRepo.List(ctx, lowStockOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPartList(parts), nil
}

// Movements возвращает журнал движений запчасти, новые первыми
func (s *Service) Movements(ctx context.Context, partID int64, limit int) (*models.MovementListResponse, error) {
	s.logger.Info("Movements: fetching movements for part=%d, limit=%d", partID, limit)

	if limit <= 0 {
		limit = models.DefaultMovementsLimit
	}
	if limit > models.MaxMovementsLimit {
		return nil, fmt.Errorf("%w: limit must not exceed %d", ErrInvalidInput, models.MaxMovementsLimit)
	}

	var movements []*domain.StockMovement
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := s.partRepo.GetByID(txCtx, partID); err != nil {
			return err
		}
		var err error
		movements, err = s.partRepo.Movements(txCtx, partID, uint64(limit))
		return err
	})
	if err != nil {
		return nil, s.mapError("Movements", partID, err)
	}

	return models.FromDomainMovementList(movements), nil
}

// Restock приходует запчасти на склад
func (s *Service) Restock(ctx context.Context, partID int64, req *models.RestockRequest) (*models.StockChangeResponse, error) {
	s.logger.Info("Restock: part=%d, quantity=%d", partID, req.Quantity)

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	reason, err := normalizeReason(req.Reason, false)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = defaultRestockReason
	}

	var change *domain.PartConsumption
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		change, err = s.partRepo.Restock(txCtx, partID, req.Quantity, reason)
		return err
	})
	if err != nil {
		return nil, s.mapError("Restock", partID, err)
	}

	s.logger.Info("Restock: part=%d stock %d -> %d", partID, change.Movement.StockBefore, change.Movement.StockAfter)
	return models.FromDomainConsumption(change), nil
}

// Adjust корректирует остаток по результатам инвентаризации
// Остаток не может стать отрицательным
func (s *Service) Adjust(ctx context.Context, partID int64, req *models.AdjustRequest) (*models.StockChangeResponse, error) {
	s.logger.Info("Adjust: part=%d, delta=%d", partID, req.Delta)

	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: delta must not be zero", ErrInvalidInput)
	}
	reason, err := normalizeReason(req.Reason, true)
	if err != nil {
		return nil, err
	}

	var change *domain.PartConsumption
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		change, err = s.partRepo.Adjust(txCtx, partID, req.Delta, reason)
		return err
	})
	if err != nil {
		if errors.Is(err, partRepo.ErrInsufficientStock) {
			s.metrics.IncStockConflict()
		}
		return nil, s.mapError("Adjust", partID, err)
	}

	if req.Delta < 0 && change.Part.IsLowStock() {
		event := events.New(events.StockLow, partID, map[string]interface{}{
			"name":      change.Part.Name,
			"reference": change.Part.Reference,
			"stock":     change.Part.Stock,
			"min_stock": change.Part.MinStock,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Adjust: failed to publish %s for part=%d: %v", event.Type, partID, err)
		}
	}

	s.logger.Info("Adjust: part=%d stock %d -> %d", partID, change.Movement.StockBefore, change.Movement.StockAfter)
	return models.FromDomainConsumption(change), nil
}

func normalizeReason(reason string, required bool) (string, error) {
	reason = strings.TrimSpace(reason)
	if required && reason == "" {
		return "", fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxMovementReasonLength {
		return "", fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxMovementReasonLength)
	}
	return reason, nil
}

func (s *Service) mapError(op string, partID int64, err error) error {
	switch {
	case errors.Is(err, partRepo.ErrPartNotFound):
		s.logger.Warn("%s: part=%d not found", op, partID)
		return ErrPartNotFound
	case errors.Is(err, partRepo.ErrInsufficientStock):
		s.logger.Warn("%s: part=%d: stock would become negative", op, partID)
		return ErrInsufficientStock
	default:
		s.logger.Error("%s: repository error for part=%d: %v", op, partID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
