package apperrors

import "errors"

// Доменные ошибки-маркеры. Хэндлеры переводят их в HTTP-статусы через errors.Is,
// наружу уходит только короткое сообщение без внутренних деталей.
var (
	// ErrValidation : некорректное или неполное тело запроса (400)
	ErrValidation = errors.New("некорректный запрос")
	// ErrUnauthenticated : личность не предъявлена или токен невалиден (401)
	ErrUnauthenticated = errors.New("пользователь не аутентифицирован")
	// ErrForbidden : личность установлена, но доступ запрещён (403)
	ErrForbidden = errors.New("доступ запрещён")
	// ErrNotFound : запись каталога или объект на диске не найдены (404)
	ErrNotFound = errors.New("не найдено")
)
