// File: internal/handler/materials/update.go
package materials

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/middleware"
	"materialmart/internal/service"
	"materialmart/internal/store"

	"github.com/labstack/echo/v4"
)

// UpdateMaterialHandler 部分更新刊登（只限擁有者）
// @Summary     更新刊登
// @Description 省略的欄位不變；price 傳 "" 改為免費；isAvailable 切換上下架
// @Tags        materials
// @Accept      json
// @Produce     json
// @Param       id   path     string                    true "刊登 ID"
// @Param       body body     api.UpdateMaterialRequest true "要更新的欄位"
// @Success     200  {object} model.Material
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /materials/{id} [put]
func UpdateMaterialHandler(repo store.Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		existing, err := repo.GetMaterial(ctx, id)
		if err != nil {
			return api.WriteError(c, err)
		}
		if existing == nil {
			return api.WriteError(c, errMaterialNotFound)
		}
		if err := service.AuthorizeMaterialChange(middleware.Identity(c), existing, service.ActionEdit); err != nil {
			return api.WriteError(c, err)
		}

		var req api.UpdateMaterialRequest
		if err := c.Bind(&req); err != nil {
			return api.BindError(c)
		}
		if err := c.Validate(&req); err != nil {
			return api.WriteError(c, err)
		}

		m, err := repo.UpdateMaterial(ctx, id, req.Patch())
		if err != nil {
			return api.WriteError(c, err)
		}
		if m == nil {
			return api.WriteError(c, errMaterialNotFound)
		}
		return c.JSON(http.StatusOK, m)
	}
}
