// File: internal/handler/materials/delete.go
package materials

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/middleware"
	"materialmart/internal/service"
	"materialmart/internal/store"

	"github.com/labstack/echo/v4"
)

// DeleteMaterialHandler 刪除刊登（只限擁有者）
// @Summary     刪除刊登
// @Tags        materials
// @Produce     json
// @Param       id  path     string true "刊登 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /materials/{id} [delete]
func DeleteMaterialHandler(repo store.Repository) echo.HandlerFunc {
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
		if err := service.AuthorizeMaterialChange(middleware.Identity(c), existing, service.ActionDelete); err != nil {
			return api.WriteError(c, err)
		}

		deleted, err := repo.DeleteMaterial(ctx, id)
		if err != nil {
			return api.WriteError(c, err)
		}
		if !deleted {
			return api.WriteError(c, errMaterialNotFound)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Material deleted successfully"})
	}
}
