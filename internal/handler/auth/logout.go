// File: internal/handler/auth/logout.go
package auth

import (
	"log/slog"
	"net/http"

	"materialmart/internal/api"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 刪除 session 紀錄並清除 cookie
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/logout [post]
func LogoutHandler(sessions Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sessions.Destroy(c.Response(), c.Request()); err != nil {
			slog.ErrorContext(c.Request().Context(), "destroy session", "error", err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Could not log out"})
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
	}
}
