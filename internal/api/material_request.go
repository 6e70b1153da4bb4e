package api

import "materialmart/internal/model"

// CreateMaterialRequest 不含 sellerId；賣家一律取自 session
// swagger:model api.CreateMaterialRequest
type CreateMaterialRequest struct {
	Title             string   `json:"title" validate:"required" example:"Red clay bricks"`
	Description       string   `json:"description" validate:"required" example:"About 200 reclaimed bricks"`
	Category          string   `json:"category" validate:"required" example:"Bricks"`
	Condition         string   `json:"condition" validate:"required" example:"used"`
	Quantity          string   `json:"quantity" validate:"required" example:"200"`
	Unit              string   `json:"unit" validate:"required" example:"pcs"`
	Price             *Price   `json:"price" validate:"omitnil,price" swaggertype:"string" example:"12.50"`
	Location          string   `json:"location" validate:"required" example:"Taipei"`
	ContactPreference string   `json:"contactPreference" validate:"required" example:"email"`
	Images            []string `json:"images" example:"https://example.com/a.jpg"`
}

func (r CreateMaterialRequest) NewMaterial() model.NewMaterial {
	return model.NewMaterial{
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		Condition:         r.Condition,
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		Price:             r.Price.StringPtr(),
		Location:          r.Location,
		ContactPreference: r.ContactPreference,
		Images:            r.Images,
	}
}

// UpdateMaterialRequest 部分更新；省略的欄位不變，price 為 "" 代表改為免費
// swagger:model api.UpdateMaterialRequest
type UpdateMaterialRequest struct {
	Title             *string   `json:"title" validate:"omitnil,min=1"`
	Description       *string   `json:"description" validate:"omitnil,min=1"`
	Category          *string   `json:"category" validate:"omitnil,min=1"`
	Condition         *string   `json:"condition" validate:"omitnil,min=1"`
	Quantity          *string   `json:"quantity" validate:"omitnil,min=1"`
	Unit              *string   `json:"unit" validate:"omitnil,min=1"`
	Price             *Price    `json:"price" validate:"omitnil,price" swaggertype:"string"`
	Location          *string   `json:"location" validate:"omitnil,min=1"`
	ContactPreference *string   `json:"contactPreference" validate:"omitnil,min=1"`
	Images            *[]string `json:"images"`
	IsAvailable       *bool     `json:"isAvailable"`
}

func (r UpdateMaterialRequest) Patch() model.MaterialPatch {
	return model.MaterialPatch{
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		Condition:         r.Condition,
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		Price:             r.Price.StringPtr(),
		Location:          r.Location,
		ContactPreference: r.ContactPreference,
		Images:            r.Images,
		IsAvailable:       r.IsAvailable,
	}
}
