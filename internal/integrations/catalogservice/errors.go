package catalogservice

import "errors"

var (
	// ErrClaimNotFound возвращается, когда рекламация не найдена
	ErrClaimNotFound = errors.New("claim not found")

	// ErrPurchasedArticleNotFound возвращается, когда купленный товар не найден
	ErrPurchasedArticleNotFound = errors.New("purchased article not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
