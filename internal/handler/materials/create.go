// File: internal/handler/materials/create.go
package materials

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/middleware"
	"materialmart/internal/store"

	"github.com/labstack/echo/v4"
)

// CreateMaterialHandler 建立刊登；賣家為目前登入者，忽略本文中的 sellerId
// @Summary     建立刊登
// @Tags        materials
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateMaterialRequest true "刊登內容"
// @Success     200  {object} model.Material
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /materials [post]
func CreateMaterialHandler(repo store.Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := middleware.Identity(c)

		var req api.CreateMaterialRequest
		if err := c.Bind(&req); err != nil {
			return api.BindError(c)
		}
		if err := c.Validate(&req); err != nil {
			return api.WriteError(c, err)
		}

		m, err := repo.CreateMaterial(c.Request().Context(), req.NewMaterial(), id.UserID)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, m)
	}
}
