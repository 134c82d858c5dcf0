package handler

import (
	"cloud-drive-server/internal/model/requestresponse"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/util"
	"net/http"
)

type ShareHandler struct {
	ports.ShareService
}

func NewShareHandler(shareService ports.ShareService) *ShareHandler {
	return &ShareHandler{shareService}
}

// CreateShare godoc
// @Summary Приглашение доступа к файлу
// @Description Создаёт запись журнала приглашений со статусом pending. Доступно только владельцу файла.
// @Tags Shares
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateShareRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Share
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/shares [post]
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	var req requestresponse.CreateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	share, err := h.ShareService.CreateShare(r.Context(), claims, req.FileUUID, req.SharedWithEmail, req.Permission)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, share)
}

// ListShares godoc
// @Summary Приглашения, созданные вызывающим
// @Description Без параметра file возвращает все приглашения вызывающего, с параметром — приглашения конкретного файла (только владельцу).
// @Tags Shares
// @Produce json
// @Param file query string false "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Share
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/shares [get]
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	shares, err := h.ShareService.ListShares(r.Context(), claims, r.URL.Query().Get("file"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, shares)
}
