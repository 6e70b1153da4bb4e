// File: internal/handler/auth/register.go
package auth

import (
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立帳號並直接登入
// @Summary     註冊使用者
// @Description 建立新帳號；成功後換發 session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.UserEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(a *service.Auth, sessions Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return api.BindError(c)
		}
		if err := c.Validate(&req); err != nil {
			return api.WriteError(c, err)
		}

		user, err := a.Register(c.Request().Context(), req.NewUser())
		if err != nil {
			return api.WriteError(c, err)
		}

		if err := sessions.Establish(c.Response(), c.Request(), user.ID); err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusCreated, api.UserEnvelope{User: api.NewUserResponse(user)})
	}
}
