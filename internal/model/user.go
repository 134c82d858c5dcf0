package model

import "time"

// User : создаётся при первой успешной аутентификации через внешнего провайдера
type User struct {
	UUID        string    `db:"uuid" json:"uuid"`
	ExternalUID string    `db:"external_uid" json:"external_uid"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"display_name"`
	PhotoURL    string    `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
