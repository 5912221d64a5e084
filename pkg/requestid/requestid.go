package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header HTTP заголовок с идентификатором запроса
const Header = "X-Request-ID"

type ctxKey struct{}

// New генерирует новый идентификатор запроса
func New() string {
	return uuid.NewString()
}

// NewContext кладёт идентификатор запроса в контекст
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext возвращает идентификатор запроса или пустую строку
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
