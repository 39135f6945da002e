package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// userIDHeader заголовок, через который API-gateway передает ID пользователя
const userIDHeader = "X-User-ID"

type ctxKey string

const userIDKey ctxKey = "user_id"

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его в контекст
// Заголовок опционален: публичные ручки работают без него, защищенные
// проверяют наличие через GetUserID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(userIDHeader)
		if header != "" {
			if userID, err := strconv.ParseInt(header, 10, 64); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
