// identity — источник идентичности текущего пользователя.
//
// Аутентификация внешняя: клиенту нужен только uid пользователя
// (пустая строка — пользователя нет).
package identity

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken — токен не разбирается или не содержит uid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// Provider отдаёт uid текущего пользователя или "".
type Provider interface {
	CurrentUserID() string
}

// Static — идентичность, которую явно задаёт вызывающий (вход/выход).
type Static struct {
	mu  sync.RWMutex
	uid string
}

func NewStatic(uid string) *Static {
	return &Static{uid: strings.TrimSpace(uid)}
}

func (s *Static) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uid
}

// Set меняет пользователя; "" — выход.
func (s *Static) Set(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uid = strings.TrimSpace(uid)
}

// idClaims — поля ID-токена, которые нужны клиенту.
// user_id есть в токенах Firebase, sub — стандартный.
type idClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// leeway — допуск на расхождение часов.
const leeway = 5 * time.Second

// UserIDFromToken извлекает uid из ID-токена.
//
// Подпись не проверяется, её проверяет удалённое API.
// Истёкший токен отвергается.
func UserIDFromToken(raw string, now time.Time) (string, error) {
	const op = "identity/UserIDFromToken"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	var claims idClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time.Add(leeway)) {
		return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	uid := strings.TrimSpace(claims.Subject)
	if uid == "" {
		uid = strings.TrimSpace(claims.UserID)
	}

	if uid == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}
