package warranty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
)

// Evaluator решает, покрывается ли вмешательство гарантией
type Evaluator struct {
	catalog CatalogClient
	logger  Logger
}

// NewEvaluator создает новый экземпляр Evaluator
func NewEvaluator(catalog CatalogClient, logger Logger) *Evaluator {
	return &Evaluator{
		catalog: catalog,
		logger:  logger,
	}
}

// Covers true, если момент at попадает в [purchaseDate, purchaseDate + months)
func Covers(purchaseDate time.Time, months int, at time.Time) bool {
	if months <= 0 {
		return false
	}
	end := purchaseDate.AddDate(0, months, 0)
	return !at.Before(purchaseDate) && at.Before(end)
}

// IsUnderWarranty проверяет гарантию купленного товара на момент at
func (e *Evaluator) IsUnderWarranty(ctx context.Context, purchasedArticleID int64, at time.Time) (bool, error) {
	article, err := e.catalog.GetPurchasedArticle(ctx, purchasedArticleID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrPurchasedArticleNotFound) {
			return false, ErrPurchasedArticleNotFound
		}
		e.logger.Error("IsUnderWarranty: catalog error for purchased_article=%d: %v", purchasedArticleID, err)
		return false, fmt.Errorf("%w: IsUnderWarranty - catalog error: %v", ErrInternal, err)
	}

	covered := Covers(article.PurchaseDate, article.WarrantyMonths, at)
	e.logger.Info("IsUnderWarranty: purchased_article=%d, purchase_date=%s, months=%d, covered=%t",
		purchasedArticleID, article.PurchaseDate.Format("2006-01-02"), article.WarrantyMonths, covered)

	return covered, nil
}

// IsClaimUnderWarranty проверяет гарантию товара, к которому относится рекламация
// Вмешательство без рекламации всегда платное
func (e *Evaluator) IsClaimUnderWarranty(ctx context.Context, claimID *int64, at time.Time) (bool, error) {
	if claimID == nil {
		return false, nil
	}

	claim, err := e.catalog.GetClaim(ctx, *claimID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrClaimNotFound) {
			return false, ErrClaimNotFound
		}
		e.logger.Error("IsClaimUnderWarranty: catalog error for claim=%d: %v", *claimID, err)
		return false, fmt.Errorf("%w: IsClaimUnderWarranty - catalog error: %v", ErrInternal, err)
	}

	return e.IsUnderWarranty(ctx, claim.PurchasedArticleID, at)
}
