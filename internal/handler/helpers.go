package handler

import (
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/util"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// decodeJSON : разбирает тело запроса, при ошибке сам пишет 400 и возвращает err
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return err
	}
	return nil
}

// handleServiceError : переводит доменную ошибку в HTTP-статус.
// Наружу уходит только короткое сообщение, детали остаются в логах.
func handleServiceError(w http.ResponseWriter, err error) {
	log.Println(err)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		util.HandleError(w, "некорректный запрос", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrUnauthenticated):
		util.HandleError(w, "требуется аутентификация", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrForbidden):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case errors.Is(err, apperrors.ErrNotFound):
		util.HandleError(w, "не найдено", http.StatusNotFound)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
