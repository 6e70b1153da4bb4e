package middleware

import (
	"log/slog"
	"net/http"

	"materialmart/internal/api"
	"materialmart/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextIdentityKey = "identity"

// SessionReader 由 session.Manager 實作
type SessionReader interface {
	UserID(r *http.Request) (string, error)
}

// LoadIdentity 從 session 取出使用者並放入 context。
// session backend 故障時以匿名身分繼續，需要登入的路由會回 401。
func LoadIdentity(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := sessions.UserID(c.Request())
			if err != nil {
				slog.WarnContext(c.Request().Context(), "load session", "error", err)
				userID = ""
			}
			c.Set(ContextIdentityKey, service.Identity{UserID: userID})
			return next(c)
		}
	}
}

// Identity 取得 LoadIdentity 設定的身分；未經過 LoadIdentity 時為匿名
func Identity(c echo.Context) service.Identity {
	id, _ := c.Get(ContextIdentityKey).(service.Identity)
	return id
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Identity(c).Anonymous() {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Authentication required"})
		}
		return next(c)
	}
}
