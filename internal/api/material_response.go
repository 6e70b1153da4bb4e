package api

import "materialmart/internal/model"

// MaterialDetailResponse 刊登詳情，附上賣家公開資料；賣家不存在時為 null
// swagger:model api.MaterialDetailResponse
type MaterialDetailResponse struct {
	model.Material
	Seller *UserResponse `json:"seller"`
}

func NewMaterialDetail(m *model.Material, seller *model.User) MaterialDetailResponse {
	resp := MaterialDetailResponse{Material: *m}
	if seller != nil {
		u := NewUserResponse(seller)
		resp.Seller = &u
	}
	return resp
}
