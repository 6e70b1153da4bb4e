package api

import "materialmart/internal/model"

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username string  `json:"username" validate:"required" example:"alice"`
	Email    string  `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string  `json:"password" validate:"required,min=6" example:"Secret123!"`
	Name     string  `json:"name" validate:"required" example:"Alice Chen"`
	Phone    *string `json:"phone" example:"0912-345-678"`
	Location *string `json:"location" example:"Taipei"`
}

// NewUser 轉為 model.NewUser；Password 仍為明文，由 service 雜湊
func (r RegisterRequest) NewUser() model.NewUser {
	return model.NewUser{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Phone:    r.Phone,
		Location: r.Location,
	}
}
