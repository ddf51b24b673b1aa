package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type CtxKey string

const (
	// CtxRequestID — id входящего запроса фасада; уходит наружу как X-Request-Id.
	CtxRequestID CtxKey = "request_id"
)

// HeaderRequestID — заголовок корреляции запросов.
const HeaderRequestID = "X-Request-Id"

// WithMetadata добавляет в исходящий запрос заголовки:
//   - X-Request-Id (из контекста; если нет — новый UUID);
//   - User-Agent (если передан параметром).
//
// Исходный запрос не модифицируется.
func WithMetadata(userAgent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			out := r.Clone(r.Context())

			if out.Header.Get(HeaderRequestID) == "" {
				rid := RequestIDFrom(r.Context())
				if rid == "" {
					rid = uuid.NewString()
				}
				out.Header.Set(HeaderRequestID, rid)
			}

			if userAgent != "" {
				out.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(out)
		})
	}
}

// WithRequestID кладёт request id в контекст.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, CtxRequestID, rid)
}

// RequestIDFrom достаёт request id из контекста ("" — если нет).
func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(CtxRequestID); v != nil {
		if rid, _ := v.(string); rid != "" {
			return rid
		}
	}

	return ""
}
