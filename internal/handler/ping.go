// File: internal/handler/ping.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"materialmart/internal/api"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// Pinger 由 store.Repository 與 session.Manager 實作
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 session store 是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(repo Pinger, sessions Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := repo.Ping(ctx); err != nil {
			slog.ErrorContext(ctx, "ping repository", "error", err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := sessions.Ping(ctx); err != nil {
			slog.ErrorContext(ctx, "ping session store", "error", err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "session store unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
