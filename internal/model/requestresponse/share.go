package requestresponse

// CreateShareRequest : тело запроса приглашения доступа к файлу
type CreateShareRequest struct {
	FileUUID        string `json:"file_uuid" example:"qwdj1q4o34u34ih759ou1"`
	SharedWithEmail string `json:"shared_with_email" example:"friend@example.com"`
	Permission      string `json:"permission" example:"view"`
}
