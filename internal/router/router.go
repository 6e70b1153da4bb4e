// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"materialmart/internal/handler"
	"materialmart/internal/handler/auth"
	"materialmart/internal/handler/materials"
	"materialmart/internal/middleware"
	"materialmart/internal/service"
	"materialmart/internal/session"
	"materialmart/internal/store"
)

// Deps 路由所需的共用元件
type Deps struct {
	Repo     store.Repository
	Auth     *service.Auth
	Sessions *session.Manager
}

// Setup 註冊所有路由與中介層
// 只有需要身分的路由才讀取 session；公開查詢不碰 session store
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	identity := middleware.LoadIdentity(d.Sessions)

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.Repo, d.Sessions))

	// 帳號
	api.POST("/auth/register", auth.RegisterHandler(d.Auth, d.Sessions))
	api.POST("/auth/login", auth.LoginHandler(d.Auth, d.Sessions))
	api.POST("/auth/logout", auth.LogoutHandler(d.Sessions), identity, middleware.RequireAuth)
	api.GET("/user", auth.CurrentUserHandler(d.Auth), identity)

	// 刊登：查詢公開，異動需登入；擁有者檢查在 handler 內
	api.GET("/materials", materials.ListMaterialsHandler(d.Repo))
	api.GET("/materials/:id", materials.GetMaterialHandler(d.Repo))
	api.POST("/materials", materials.CreateMaterialHandler(d.Repo), identity, middleware.RequireAuth)
	api.PUT("/materials/:id", materials.UpdateMaterialHandler(d.Repo), identity, middleware.RequireAuth)
	api.DELETE("/materials/:id", materials.DeleteMaterialHandler(d.Repo), identity, middleware.RequireAuth)

	api.GET("/users/:id/materials", materials.SellerMaterialsHandler(d.Repo))
}
