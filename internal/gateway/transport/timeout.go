package transport

import (
	"context"
	"io"
	"net/http"
	"time"
)

// WithTimeout ограничивает каждый исходящий вызов таймаутом d.
// Действует более ранний из двух сроков: дедлайн контекста запроса
// (например, фасада) или now+d.
//
// Контракт:
//  1. d <= 0 — запрос уходит как есть;
//  2. иначе — context.WithTimeout(ctx, d); cancel вызывается при закрытии
//     тела ответа (или сразу, если ответа нет), чтобы дедлайн покрывал
//     и чтение тела.
func WithTimeout(d time.Duration) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			ctx, cancel := context.WithTimeout(r.Context(), d)

			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

// cancelBody освобождает контекст таймаута при Close.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
