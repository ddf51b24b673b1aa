package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/kueater-client/pkg/log"
)

// WithLogging — логирование исходящих вызовов.
// Поведение:
//   - добавляет поля request_id/method/route, прокладывает обогащённый логгер в контекст (pkg/log);
//   - пишет одну финальную запись: msg="http_out", status, dur;
//     транспортная ошибка — уровень Warn с err.
//
// Безопасность: не логирует тела и query целиком (там userId).
func WithLogging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = RequestIDFrom(r.Context())
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("route", r.URL.Query().Get("route")),
			)
			ctx := log.Into(r.Context(), l)

			resp, err := next.RoundTrip(r.WithContext(ctx))
			dur := time.Since(start)

			if err != nil {
				l.Warn("http_out",
					slog.String("err", err.Error()),
					slog.Duration("dur", dur),
				)
				return nil, err
			}

			l.Info("http_out",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", dur),
			)

			return resp, nil
		})
	}
}
