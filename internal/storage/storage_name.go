package storage

import (
	"cloud-drive-server/internal/util"
	"fmt"
	"strings"
	"time"
	"unicode"
)

const nameTokenLength = 12

// MakeStorageName : собирает устойчивое к коллизиям имя объекта:
// <unix-ms>-<случайный токен>-<очищенное исходное имя>.
// Имя от клиента никогда не используется как ключ хранения напрямую.
func MakeStorageName(originalName string) (string, error) {
	token, err := util.GenerateRandomToken(nameTokenLength)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), token, sanitizeName(originalName)), nil
}

// sanitizeName : убирает разделители путей и управляющие символы из имени файла
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)

	// отбрасываем компоненты пути, присланные клиентом
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	var builder strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			builder.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			builder.WriteRune('_')
		}
	}

	if builder.Len() == 0 {
		return "file"
	}
	return builder.String()
}
