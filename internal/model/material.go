// File: internal/model/material.go
package model

import (
	"strings"
	"time"
)

// Material 一筆建材刊登
type Material struct {
	ID                string    `db:"id" json:"id"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	Category          string    `db:"category" json:"category"`
	Condition         string    `db:"condition" json:"condition"`
	Quantity          string    `db:"quantity" json:"quantity"`
	Unit              string    `db:"unit" json:"unit"`
	Price             *string   `db:"price" json:"price"`
	Location          string    `db:"location" json:"location"`
	ContactPreference string    `db:"contact_preference" json:"contactPreference"`
	Images            []string  `db:"images" json:"images"`
	SellerID          string    `db:"seller_id" json:"sellerId"`
	IsAvailable       bool      `db:"is_available" json:"isAvailable"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// NewMaterial 建立刊登的內容；SellerID 由呼叫端另外傳入
type NewMaterial struct {
	Title             string
	Description       string
	Category          string
	Condition         string
	Quantity          string
	Unit              string
	Price             *string
	Location          string
	ContactPreference string
	Images            []string
}

// MaterialPatch 部分更新；nil 表示不變更。
// Price 指向空字串時代表清除價格（免費）。
type MaterialPatch struct {
	Title             *string
	Description       *string
	Category          *string
	Condition         *string
	Quantity          *string
	Unit              *string
	Price             *string
	Location          *string
	ContactPreference *string
	Images            *[]string
	IsAvailable       *bool
}

// Apply 將 patch 合併進 m；ID、SellerID、CreatedAt 永不變更
func (p MaterialPatch) Apply(m *Material) {
	setString(&m.Title, p.Title)
	setString(&m.Description, p.Description)
	setString(&m.Category, p.Category)
	setString(&m.Condition, p.Condition)
	setString(&m.Quantity, p.Quantity)
	setString(&m.Unit, p.Unit)
	setString(&m.Location, p.Location)
	setString(&m.ContactPreference, p.ContactPreference)
	if p.Price != nil {
		m.Price = NormalizePrice(p.Price)
	}
	if p.Images != nil {
		m.Images = append([]string{}, (*p.Images)...)
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// NormalizePrice 將價格轉成 NUMERIC(10,2)::text 的格式（"12.5" → "12.50"、"007" → "7.00"），
// 兩個後端因此回傳相同字串；空字串視為未定價。非十進位格式原樣保留，交由資料庫拒絕。
func NormalizePrice(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	whole, frac, _ := strings.Cut(v, ".")
	if !isDigits(whole) || len(frac) > 2 || (frac != "" && !isDigits(frac)) {
		return &v
	}
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	v = whole + "." + frac + strings.Repeat("0", 2-len(frac))
	return &v
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaterialFilter 搜尋條件；空字串代表不限制
type MaterialFilter struct {
	Query     string `query:"query"`
	Category  string `query:"category"`
	Location  string `query:"location"`
	Condition string `query:"condition"`
}

// Matches 判斷 m 是否符合所有非空的條件；是否上架由呼叫端檢查
func (f MaterialFilter) Matches(m Material) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(m.Title), q) &&
			!strings.Contains(strings.ToLower(m.Description), q) {
			return false
		}
	}
	if f.Category != "" && strings.ToLower(m.Category) != strings.ToLower(f.Category) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(m.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Condition != "" && strings.ToLower(m.Condition) != strings.ToLower(f.Condition) {
		return false
	}
	return true
}

func (f MaterialFilter) Empty() bool {
	return f == MaterialFilter{}
}
