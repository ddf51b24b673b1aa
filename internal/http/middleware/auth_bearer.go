package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey struct{}

// AuthBearer извлекает Bearer-токен из Authorization и кладёт "сырой"
// токен в контекст. Разбор токена — забота обработчиков сессии.
func AuthBearer() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "

			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, prefix) {
				if token := strings.TrimSpace(auth[len(prefix):]); token != "" {
					r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, token))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken возвращает токен, положенный AuthBearer ("" — если нет).
func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxKey{}).(string)
	return token
}
