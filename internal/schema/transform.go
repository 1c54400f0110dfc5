package schema

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// tokenBytes — количество случайных байт в токене.
// Токен на проводе — hex-строка из 80 символов.
const tokenBytes = 40

// NormalizeCity приводит название города к каноническому верхнему регистру.
// Вызывается явно перед сохранением и перед поиском, чтобы
// "Paris" и "paris" совпадали.
func NormalizeCity(city string) string {
	return strings.ToUpper(city)
}

// NewToken генерирует свежий токен доступа.
// Вызывается явно и только при регистрации: токен не ротируется,
// клиентское значение поля token всегда игнорируется.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
