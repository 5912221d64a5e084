package warranty

import "errors"

var (
	// ErrClaimNotFound возвращается, когда рекламация не найдена
	ErrClaimNotFound = errors.New("claim not found")

	// ErrPurchasedArticleNotFound возвращается, когда купленный товар не найден
	ErrPurchasedArticleNotFound = errors.New("purchased article not found")

	// ErrInternal возвращается при недоступности CatalogService
	ErrInternal = errors.New("warranty: internal error")
)
