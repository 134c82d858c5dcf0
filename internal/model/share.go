package model

import "time"

// Уровни доступа и статусы приглашений
const (
	PermissionView = "view"
	PermissionEdit = "edit"
	PermissionFull = "full"

	ShareStatusPending  = "pending"
	ShareStatusAccepted = "accepted"
	ShareStatusRejected = "rejected"
)

// Share : запись-приглашение на доступ к файлу по email
// Это отдельный журнал приглашений, не связанный с механизмом публичных токенов.
type Share struct {
	UUID            string    `db:"uuid" json:"uuid"`
	FileUUID        string    `db:"file_uuid" json:"file_uuid"`
	SharedByUUID    string    `db:"shared_by_uuid" json:"shared_by_uuid"`
	SharedWithEmail string    `db:"shared_with_email" json:"shared_with_email"`
	Permission      string    `db:"permission" json:"permission"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ValidPermission : проверяет уровень доступа приглашения
func ValidPermission(permission string) bool {
	switch permission {
	case PermissionView, PermissionEdit, PermissionFull:
		return true
	}
	return false
}
