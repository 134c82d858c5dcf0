package model

import "time"

// File : загруженный объект
// Инвариант: IsPublic == true тогда и только тогда, когда ShareToken != nil.
// Оба поля выставляются одним UPDATE при выпуске публичной ссылки.
// StoragePath сериализуется ради Redis-кэша, наружу модель не отдаётся — только FileResponse.
type File struct {
	UUID         string    `db:"uuid" json:"uuid"`
	StorageName  string    `db:"storage_name" json:"storage_name"`
	OriginalName string    `db:"original_name" json:"original_name"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	StoragePath  string    `db:"storage_path" json:"storage_path"`
	OwnerUUID    string    `db:"owner_uuid" json:"owner_uuid"`
	FolderUUID   *string   `db:"folder_uuid" json:"folder_uuid,omitempty"`
	IsPublic     bool      `db:"is_public" json:"is_public"`
	ShareToken   *string   `db:"share_token" json:"share_token,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
