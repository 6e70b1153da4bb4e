// File: internal/handler/auth/current_user.go
package auth

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/middleware"
	"materialmart/internal/service"

	"github.com/labstack/echo/v4"
)

// CurrentUserHandler 回傳目前登入的使用者
// @Summary     目前使用者
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserEnvelope
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /user [get]
func CurrentUserHandler(a *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := a.CurrentUser(c.Request().Context(), middleware.Identity(c))
		if err != nil {
			return api.WriteError(c, err)
		}
		if user == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{User: api.NewUserResponse(user)})
	}
}
