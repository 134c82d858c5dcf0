package requestresponse

// CreateUserRequest : тело запроса создания пользователя (идемпотентно по external_uid)
type CreateUserRequest struct {
	ExternalUID string `json:"uid" example:"fb-uid-1234"`
	Email       string `json:"email" example:"user@example.com"`
	DisplayName string `json:"display_name" example:"Ivan Petrov"`
	PhotoURL    string `json:"photo_url" example:"https://example.com/avatar.png"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid payload"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"Операция выполнена успешно"`
}
