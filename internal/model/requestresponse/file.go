package requestresponse

import (
	"cloud-drive-server/internal/model"
	"time"
)

// FileResponse : описывает файл для JSON-ответа
type FileResponse struct {
	UUID       string  `json:"uuid" example:"qwdj1q4o34u34ih759ou1"`
	Name       string  `json:"name" example:"photo.jpg"`
	MimeType   string  `json:"mime" example:"image/jpeg"`
	SizeBytes  int64   `json:"size" example:"10240"`
	FolderUUID *string `json:"folder_uuid,omitempty"`
	IsPublic   bool    `json:"public" example:"false"`
	ShareToken string  `json:"share_token,omitempty"`
	CreatedAt  string  `json:"created" example:"2025-08-23T12:34:56Z"`
	UpdatedAt  string  `json:"updated" example:"2025-08-23T12:34:56Z"`
}

// FileResponseFromModel : конвертирует model.File в FileResponse
func FileResponseFromModel(file *model.File) FileResponse {
	resp := FileResponse{
		UUID:       file.UUID,
		Name:       file.OriginalName,
		MimeType:   file.MimeType,
		SizeBytes:  file.SizeBytes,
		FolderUUID: file.FolderUUID,
		IsPublic:   file.IsPublic,
		CreatedAt:  file.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  file.UpdatedAt.Format(time.RFC3339),
	}
	if file.ShareToken != nil {
		resp.ShareToken = *file.ShareToken
	}
	return resp
}

// ListFilesResponse : ответ API со списком файлов
type ListFilesResponse struct {
	Data struct {
		Files []FileResponse `json:"files"`
	} `json:"data"`
	Count int `json:"count" example:"10"`
}

// ShareLinkResponse : ответ на выпуск публичной ссылки
type ShareLinkResponse struct {
	ShareURL string       `json:"share_url" example:"https://drive.example.com/share/V1StGXR8_Z5jdHi6B-myTV1StGXR8_Z5j"`
	File     FileResponse `json:"file"`
}
