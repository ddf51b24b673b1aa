package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/kueater-client/internal/gateway/transport"
)

// RequestID обеспечивает наличие X-Request-Id:
//  1. читает заголовок, если он есть;
//  2. иначе генерирует UUID;
//  3. кладёт id в заголовки ответа и запроса и в контекст —
//     оттуда его забирает transport.WithMetadata для исходящих вызовов.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(transport.HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(transport.HeaderRequestID, id)
			}
			w.Header().Set(transport.HeaderRequestID, id)

			next.ServeHTTP(w, r.WithContext(transport.WithRequestID(r.Context(), id)))
		})
	}
}
