package handler

import (
	"cloud-drive-server/internal/model/requestresponse"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/util"
	"github.com/go-chi/chi/v5"
	"net/http"
)

type FolderHandler struct {
	ports.FolderService
}

func NewFolderHandler(folderService ports.FolderService) *FolderHandler {
	return &FolderHandler{folderService}
}

// ListFolders godoc
// @Summary Список папок вызывающего
// @Description Возвращает папки под parent (query-параметр), либо папки верхнего уровня. Сортировка по имени.
// @Tags Folders
// @Produce json
// @Param parent query string false "UUID родительской папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Folder
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/folders [get]
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	var parentUUID *string
	if parent := r.URL.Query().Get("parent"); parent != "" {
		parentUUID = &parent
	}

	folders, err := h.FolderService.ListFolders(r.Context(), claims, parentUUID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, folders)
}

// CreateFolder godoc
// @Summary Создание папки
// @Tags Folders
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateFolderRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Folder
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/folders [post]
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	var req requestresponse.CreateFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	folder, err := h.FolderService.CreateFolder(r.Context(), claims, req.Name, req.ParentUUID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, folder)
}

// UpdateFolder godoc
// @Summary Переименование или перенос папки
// @Description Перенос внутрь собственного поддерева отклоняется, иерархия остаётся деревом.
// @Tags Folders
// @Accept json
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param body body requestresponse.UpdateFolderRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Folder
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/folders/{uuid} [put]
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())
	folderUUID := chi.URLParam(r, "uuid")

	var req requestresponse.UpdateFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	folder, err := h.FolderService.UpdateFolder(r.Context(), claims, folderUUID, req.Name, req.ParentUUID, req.MoveToRoot)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, folder)
}

// DeleteFolder godoc
// @Summary Удаление папки
// @Description Каскадно удаляет вложенные папки и файлы вместе с их содержимым в хранилище.
// @Tags Folders
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/folders/{uuid} [delete]
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())
	folderUUID := chi.URLParam(r, "uuid")

	if err := h.FolderService.DeleteFolder(r.Context(), claims, folderUUID); err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "папка успешно удалена"})
}
