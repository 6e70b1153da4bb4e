package service

import (
	"materialmart/internal/apperr"
	"materialmart/internal/model"
)

// Identity 目前請求的已驗證身分；UserID 為空代表匿名
type Identity struct {
	UserID string
}

func (i Identity) Anonymous() bool { return i.UserID == "" }

// Action 對刊登的變更動作
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// AuthorizeMaterialChange 只允許刊登擁有者修改或刪除
func AuthorizeMaterialChange(id Identity, m *model.Material, action Action) error {
	if id.Anonymous() {
		return apperr.Unauthenticated("Authentication required")
	}
	if m.SellerID != id.UserID {
		return apperr.Forbidden("You can only " + string(action) + " your own materials")
	}
	return nil
}
