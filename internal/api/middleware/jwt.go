package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

var (
	// ErrInvalidToken возвращается для неподписанного, поврежденного или неполного токена
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken возвращается для просроченного токена
	ErrExpiredToken = errors.New("token expired")
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgExpiredToken = "срок действия токена истек"
)

// JWTAuth извлекает пользователя из Bearer токена HS256
// Ожидаемые claims: user_id (число или строка) и role
func JWTAuth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			actor, err := ParseToken(key, tokenString)
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					handlers.RespondUnauthorized(w, msgExpiredToken)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// ParseToken проверяет подпись и извлекает пользователя из claims
func ParseToken(key []byte, tokenString string) (domain.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, ErrExpiredToken
		}
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	userID, err := userIDClaim(claims["user_id"])
	if err != nil {
		return domain.Actor{}, err
	}

	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if !role.IsValid() {
		return domain.Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, roleStr)
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}

func userIDClaim(raw interface{}) (int64, error) {
	var id int64
	switch v := raw.(type) {
	case float64:
		id = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: user_id is not numeric", ErrInvalidToken)
		}
		id = parsed
	default:
		return 0, fmt.Errorf("%w: user_id is missing", ErrInvalidToken)
	}

	if id <= 0 {
		return 0, fmt.Errorf("%w: user_id must be positive", ErrInvalidToken)
	}
	return id, nil
}
