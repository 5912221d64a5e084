package warranty

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
)

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetClaim(ctx context.Context, claimID int64) (*catalogservice.Claim, error)
	GetPurchasedArticle(ctx context.Context, purchasedArticleID int64) (*catalogservice.PurchasedArticle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
