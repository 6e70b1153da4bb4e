package api

import (
	"time"

	"materialmart/internal/model"
)

// UserResponse 對外的使用者資料，不含密碼雜湊
// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id" example:"5f0c8a0e-3c9e-4d7b-9a53-0b7b1c7f2a10"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      string    `json:"name" example:"Alice Chen"`
	Phone     *string   `json:"phone" example:"0912-345-678"`
	Location  *string   `json:"location" example:"Taipei"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}

// swagger:model api.UserEnvelope
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}
