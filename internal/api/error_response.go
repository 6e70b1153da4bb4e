package api

import "materialmart/internal/apperr"

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message" example:"Material not found"`
	// errors 欄位驗證錯誤，只在 400 Invalid data 時出現
	Errors []apperr.FieldError `json:"errors,omitempty"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}
