// redact — маскирование идентификаторов и секретов перед записью в логи.
package redact

// UserID оставляет первые два символа идентификатора пользователя.
// Короткие идентификаторы (≤4 рун) скрываются целиком.
func UserID(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return "***"
	}

	return string(r[:2]) + "***"
}

func Token() string { return "[REDACTED_TOKEN]" }
