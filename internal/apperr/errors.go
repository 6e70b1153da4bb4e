// Package apperr 定義 repository、認證服務與 HTTP 層共用的錯誤種類。
// 呼叫端以 errors.Is / errors.As 判斷，只有 internal/api 會轉成狀態碼。
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("invalid data")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// kindError 帶有給使用者看的訊息，errors.Is 時仍比對其種類
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// Conflict 回傳帶有訊息的 ErrConflict
func Conflict(msg string) error { return &kindError{kind: ErrConflict, msg: msg} }

// Unauthenticated 回傳帶有訊息的 ErrUnauthenticated
func Unauthenticated(msg string) error { return &kindError{kind: ErrUnauthenticated, msg: msg} }

// Forbidden 回傳帶有訊息的 ErrForbidden
func Forbidden(msg string) error { return &kindError{kind: ErrForbidden, msg: msg} }

// NotFound 回傳帶有訊息的 ErrNotFound
func NotFound(msg string) error { return &kindError{kind: ErrNotFound, msg: msg} }

// FieldError 單一欄位的驗證錯誤
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 列出請求中所有未通過驗證的欄位
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid data: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Message 回傳最內層 kindError 的訊息；非 apperr 錯誤回傳 fallback
func Message(err error, fallback string) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return fallback
}
