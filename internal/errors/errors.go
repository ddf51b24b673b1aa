// errors стандартизирует ответы об ошибках локального HTTP-фасада.
// На вход принимает ошибку слоя синхронизации (сентинелы service/identity,
// типизированные ошибки gateway, ошибки контекста), на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Откат мутации ошибкой не является и сюда не попадает.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/kueater-client/internal/gateway"
	"github.com/pribylovaa/kueater-client/internal/gateway/transport"
	"github.com/pribylovaa/kueater-client/internal/identity"
	"github.com/pribylovaa/kueater-client/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для UI.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Порядок проверок важен: ошибки контекста приходят обёрнутыми
// в *gateway.NetworkError и должны распознаваться раньше неё.
//   - ErrInvalidArgument -> 400
//   - ErrNoUser, ErrInvalidToken, ErrTokenExpired -> 401
//   - ErrUnknownEntity -> 404
//   - ErrSessionChanged -> 409
//   - context.Canceled -> 499
//   - context.DeadlineExceeded -> 504
//   - *gateway.NetworkError -> 503
//   - *gateway.APIError, *gateway.DecodeError -> 502
//   - err == nil и прочее -> 500/internal
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrNoUser):
		return http.StatusUnauthorized, "unauthenticated", "no signed-in user"
	case stderrors.Is(err, identity.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthenticated", "token expired"
	case stderrors.Is(err, identity.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthenticated", "invalid token"
	case stderrors.Is(err, service.ErrUnknownEntity):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrSessionChanged):
		return http.StatusConflict, "session_changed", "user changed during request"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case gateway.IsNetwork(err):
		return http.StatusServiceUnavailable, "unavailable", "remote api unavailable"
	case gateway.IsAPI(err):
		return http.StatusBadGateway, "bad_gateway", "remote api error"
	case gateway.IsDecode(err):
		return http.StatusBadGateway, "bad_gateway", "malformed remote response"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка или контекста.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	rid := r.Header.Get(transport.HeaderRequestID)
	if rid == "" {
		rid = transport.RequestIDFrom(r.Context())
	}
	resp.Error.RequestID = rid

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
