package requestresponse

// CreateFolderRequest : тело запроса создания папки
type CreateFolderRequest struct {
	Name       string  `json:"name" example:"Documents"`
	ParentUUID *string `json:"parent_uuid,omitempty" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// UpdateFolderRequest : переименование и/или перенос папки
// nil-поле означает "не менять"
type UpdateFolderRequest struct {
	Name       *string `json:"name,omitempty" example:"Photos"`
	ParentUUID *string `json:"parent_uuid,omitempty"`
	MoveToRoot bool    `json:"move_to_root,omitempty"`
}
