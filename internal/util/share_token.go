package util

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
)

// url-safe алфавит токенов (64 символа, без спецсимволов)
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// GenerateRandomToken : генерирует криптографически непредсказуемый токен длиной length символов
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", LogError("[util] ошибка генерации токена", err)
	}

	token := make([]byte, length)
	for i, b := range bytes {
		token[i] = tokenAlphabet[int(b)&63]
	}

	return string(token), nil
}

// GenerateUniqueShareToken : повторяет генерацию, пока токен занят в таблице files.
// Уникальность в итоге гарантирует ограничение БД, цикл лишь уменьшает шанс конфликта.
func GenerateUniqueShareToken(ctx context.Context, exec sqlx.ExtContext, length int) (string, error) {
	for {
		token, err := GenerateRandomToken(length)
		if err != nil {
			return "", err
		}

		var exists bool
		err = sqlx.GetContext(ctx, exec, &exists, `
			SELECT EXISTS (SELECT 1 FROM files WHERE share_token = $1)
		`, token)

		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", LogError("[util] ошибка проверки токена", err)
		}

		if exists == false {
			return token, nil
		}
	}
}
