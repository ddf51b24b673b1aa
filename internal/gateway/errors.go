package gateway

import (
	"errors"
	"fmt"
)

// NetworkError — ответ от API не получен: ошибка транспорта, таймаут, отмена.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError — API ответило, но не успехом: не-2xx статус
// или доменный код ошибки внутри тела.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.Status)
	}

	return fmt.Sprintf("api error: status=%d message=%q", e.Status, e.Message)
}

// DecodeError — тело ответа не удалось разобрать.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode error: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNetwork сообщает, является ли err (или обёрнутая в ней) *NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPI сообщает, является ли err (или обёрнутая в ней) *APIError.
func IsAPI(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsDecode сообщает, является ли err (или обёрнутая в ней) *DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
