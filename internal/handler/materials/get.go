// File: internal/handler/materials/get.go
package materials

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/apperr"
	"materialmart/internal/store"

	"github.com/labstack/echo/v4"
)

var errMaterialNotFound = apperr.NotFound("Material not found")

// GetMaterialHandler 取得單筆刊登與賣家資料
// @Summary     刊登詳情
// @Tags        materials
// @Produce     json
// @Param       id  path     string true "刊登 ID"
// @Success     200 {object} api.MaterialDetailResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /materials/{id} [get]
func GetMaterialHandler(repo store.Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		m, err := repo.GetMaterial(ctx, c.Param("id"))
		if err != nil {
			return api.WriteError(c, err)
		}
		if m == nil {
			return api.WriteError(c, errMaterialNotFound)
		}

		seller, err := repo.GetUser(ctx, m.SellerID)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewMaterialDetail(m, seller))
	}
}
