package model

import "time"

// Folder : именованный контейнер файлов, может быть вложен в родительскую папку
type Folder struct {
	UUID       string    `db:"uuid" json:"uuid"`
	Name       string    `db:"name" json:"name"`
	OwnerUUID  string    `db:"owner_uuid" json:"owner_uuid"`
	ParentUUID *string   `db:"parent_uuid" json:"parent_uuid,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
