// Package materials 提供刊登的查詢與 CRUD handler。
package materials

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/model"
	"materialmart/internal/store"

	"github.com/labstack/echo/v4"
)

// ListMaterialsHandler 列出可購買的刊登，可依條件篩選
// @Summary     列出刊登
// @Description 只回傳 isAvailable 的刊登，依建立時間由新到舊；篩選條件以 AND 組合
// @Tags        materials
// @Produce     json
// @Param       query     query    string false "標題或描述的關鍵字（不分大小寫）"
// @Param       category  query    string false "分類（完全相符，不分大小寫）"
// @Param       location  query    string false "地點關鍵字"
// @Param       condition query    string false "狀況（完全相符，不分大小寫）"
// @Success     200       {array}  model.Material
// @Failure     500       {object} api.ErrorResponse
// @Router      /materials [get]
func ListMaterialsHandler(repo store.Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f model.MaterialFilter
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
			return api.BindError(c)
		}

		var (
			list []model.Material
			err  error
		)
		if f.Empty() {
			list, err = repo.GetMaterials(c.Request().Context())
		} else {
			list, err = repo.SearchMaterials(c.Request().Context(), f)
		}
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// SellerMaterialsHandler 列出賣家所有刊登（含已下架）
// @Summary     賣家的刊登
// @Tags        materials
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {array}  model.Material
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{id}/materials [get]
func SellerMaterialsHandler(repo store.Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := repo.GetMaterialsBySeller(c.Request().Context(), c.Param("id"))
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
