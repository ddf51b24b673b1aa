// handlers — REST-обработчики локального фасада над слоем синхронизации.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/kueater-client/internal/errors"
	"github.com/pribylovaa/kueater-client/internal/http/middleware"
	"github.com/pribylovaa/kueater-client/internal/identity"
	"github.com/pribylovaa/kueater-client/internal/service"
	"github.com/pribylovaa/kueater-client/pkg/log"
	"github.com/pribylovaa/kueater-client/pkg/redact"
)

// Handlers агрегирует зависимости.
type Handlers struct {
	Svc      *service.Service
	Identity *identity.Static
	now      func() time.Time
}

func New(svc *service.Service, id *identity.Static) *Handlers {
	return &Handlers{Svc: svc, Identity: id, now: time.Now}
}

// Session сверяет сессию сервиса с идентичностью перед каждым запросом.
// Bearer ID-токен, если есть, задаёт пользователя; битый токен — 401.
func (h *Handlers) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := middleware.BearerToken(r.Context()); token != "" {
			uid, err := identity.UserIDFromToken(token, h.now())
			if err != nil {
				log.From(r.Context()).Warn("id_token_rejected",
					slog.String("token", redact.Token()),
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, err)
				return
			}
			h.Identity.Set(uid)
		}

		ctx := r.Context()
		h.Svc.SyncIdentity(ctx, h.Identity)

		if uid := h.Svc.UserID(); uid != "" {
			ctx, _ = log.With(ctx, slog.String("user", redact.UserID(uid)))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
