package handler

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/model/requestresponse"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/util"
	"fmt"
	"github.com/go-chi/chi/v5"
	"io"
	"log"
	"net/http"
	"strconv"
)

// запас на multipart-обрамление поверх лимита самого файла
const multipartOverhead = 1 << 20

type FileHandler struct {
	ports.FileService
	maxUploadSize int64
}

func NewFileHandler(fileService ports.FileService, uploadCfg *config.UploadConfig) *FileHandler {
	return &FileHandler{fileService, uploadCfg.MaxSizeBytes}
}

// ListFiles godoc
// @Summary Список файлов вызывающего
// @Description Файлы в папке (query-параметр folder) либо верхнего уровня, последние обновлённые первыми.
// @Tags Files
// @Produce json
// @Param folder query string false "UUID папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	var folderUUID *string
	if folder := r.URL.Query().Get("folder"); folder != "" {
		folderUUID = &folder
	}

	files, err := h.FileService.ListFiles(r.Context(), claims, folderUUID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeFileList(w, files)
}

// RecentFiles godoc
// @Summary Последние обновлённые файлы
// @Tags Files
// @Produce json
// @Param limit query int false "Количество файлов (по умолчанию 10)"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/files/recent [get]
func (h *FileHandler) RecentFiles(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			util.HandleError(w, "неверный формат limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	files, err := h.FileService.ListRecentFiles(r.Context(), claims, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeFileList(w, files)
}

// UploadFile godoc
// @Summary Загрузка файла
// @Description Принимает multipart/form-data: поле file с содержимым и опциональное поле folderId.
// Содержимое уходит в хранилище до записи в каталог, файлы больше 100 МБ отклоняются.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param folderId formData string false "UUID папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/files/upload [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())

	// жёсткая крышка на весь запрос, сам лимит файла проверяет сервис
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		util.HandleError(w, "неверный формат запроса или превышен лимит размера", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")

	var folderUUID *string
	if folderID := r.FormValue("folderId"); folderID != "" {
		folderUUID = &folderID
	}

	created, err := h.FileService.Upload(r.Context(), claims, header.Filename, mimeType, folderUUID, file)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.FileResponseFromModel(created))
}

// DownloadFile godoc
// @Summary Скачивание файла
// @Description Публичный файл с действующим токеном отдаётся без аутентификации, иначе только владельцу.
// @Tags Files
// @Produce octet-stream
// @Param uuid path string true "UUID файла"
// @Param Authorization header string false "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/files/{uuid}/download [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	h.streamFile(w, r, "attachment")
}

// ViewFile godoc
// @Summary Просмотр файла в браузере
// @Description Та же проверка доступа, что и у скачивания, но содержимое отдаётся inline.
// @Tags Files
// @Produce octet-stream
// @Param uuid path string true "UUID файла"
// @Param Authorization header string false "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/files/{uuid}/view [get]
func (h *FileHandler) ViewFile(w http.ResponseWriter, r *http.Request) {
	h.streamFile(w, r, "inline")
}

// streamFile : отдаёт содержимое потоком, без буферизации всего файла в памяти
func (h *FileHandler) streamFile(w http.ResponseWriter, r *http.Request, disposition string) {
	claims := security.ClaimsFromContextOrNil(r.Context())
	fileUUID := chi.URLParam(r, "uuid")

	result, err := h.FileService.GetContent(r.Context(), claims, fileUUID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	defer result.Content.Close()

	w.Header().Set("Content-Type", result.File.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(result.File.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, result.File.OriginalName))

	if _, err := io.Copy(w, result.Content); err != nil {
		log.Printf("[FileHandler] ошибка отдачи содержимого %s: %v", fileUUID, err)
	}
}

// ShareFile godoc
// @Summary Выпуск публичной ссылки
// @Description Генерирует непредсказуемый токен и возвращает абсолютный URL.
// Повторный вызов перевыпускает токен, старая ссылка перестаёт работать.
// @Tags Files
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ShareLinkResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/files/{uuid}/share [post]
func (h *FileHandler) ShareFile(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())
	fileUUID := chi.URLParam(r, "uuid")

	shareURL, file, err := h.FileService.IssueShareLink(r.Context(), claims, fileUUID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.ShareLinkResponse{
		ShareURL: shareURL,
		File:     requestresponse.FileResponseFromModel(file),
	})
}

// GetSharedFile godoc
// @Summary Метаданные файла по публичному токену
// @Tags Files
// @Produce json
// @Param token path string true "Публичный токен"
// @Success 200 {object} requestresponse.FileResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/share/{token} [get]
func (h *FileHandler) GetSharedFile(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	file, err := h.FileService.GetByShareToken(r.Context(), token)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.FileResponseFromModel(file))
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Сначала объект в хранилище, затем строка каталога.
// @Tags Files
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/files/{uuid} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	claims := security.ClaimsFromContextOrNil(r.Context())
	fileUUID := chi.URLParam(r, "uuid")

	if err := h.FileService.DeleteFile(r.Context(), claims, fileUUID); err != nil {
		handleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "файл успешно удалён"})
}

func writeFileList(w http.ResponseWriter, files []model.File) {
	response := requestresponse.ListFilesResponse{Count: len(files)}
	response.Data.Files = make([]requestresponse.FileResponse, 0, len(files))
	for i := range files {
		response.Data.Files = append(response.Data.Files, requestresponse.FileResponseFromModel(&files[i]))
	}

	util.WriteJSON(w, http.StatusOK, response)
}
