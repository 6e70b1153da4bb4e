package api

import (
	"errors"
	"log/slog"
	"net/http"

	"materialmart/internal/apperr"

	"github.com/labstack/echo/v4"
)

const internalMessage = "Internal server error"

// WriteError 依 apperr 種類決定狀態碼；未知錯誤記錄後回傳 500，不外洩細節
func WriteError(c echo.Context, err error) error {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid data", Errors: ve.Fields})
	case errors.Is(err, apperr.ErrConflict):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: apperr.Message(err, "Conflict")})
	case errors.Is(err, apperr.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: apperr.Message(err, "Not authenticated")})
	case errors.Is(err, apperr.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Message: apperr.Message(err, "Forbidden")})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: apperr.Message(err, "Not found")})
	}

	slog.ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: internalMessage})
}

// HTTPErrorHandler 將 echo 自身的錯誤（404 路由、405、bind 失敗）轉成同樣的 {message} 格式
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok || he.Code >= http.StatusInternalServerError {
			msg = http.StatusText(he.Code)
		}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, ErrorResponse{Message: msg})
		}
		if werr != nil {
			slog.Error("write error response", "error", werr)
		}
		return
	}
	if werr := WriteError(c, err); werr != nil {
		slog.Error("write error response", "error", werr)
	}
}

// BindError 請求本文無法解析時的回應
func BindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid data"})
}
