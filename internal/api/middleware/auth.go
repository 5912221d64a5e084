package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

const (
	// HeaderUserID идентификатор пользователя, проставляемый gateway
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя, проставляемая gateway
	HeaderUserRole = "X-User-Role"

	msgMissingIdentity = "отсутствует идентификатор пользователя"
	msgInvalidIdentity = "некорректный идентификатор пользователя"
	msgInvalidRole     = "некорректная роль пользователя"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if !role.IsValid() {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identity выбирает источник идентичности: Bearer JWT, если задан секрет, иначе заголовки gateway
func Identity(jwtSecret string) func(http.Handler) http.Handler {
	if jwtSecret != "" {
		return JWTAuth(jwtSecret)
	}
	return Auth
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}
