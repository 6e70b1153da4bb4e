// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並換發 session
// @Summary     登入使用者
// @Description 驗證 email 與密碼；成功後換發 session cookie，舊 session 失效
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.UserEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(a *service.Auth, sessions Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return api.BindError(c)
		}
		if err := c.Validate(&req); err != nil {
			return api.WriteError(c, err)
		}

		user, err := a.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return api.WriteError(c, err)
		}

		if err := sessions.Establish(c.Response(), c.Request(), user.ID); err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{User: api.NewUserResponse(user)})
	}
}
