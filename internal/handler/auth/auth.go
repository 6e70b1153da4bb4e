// Package auth 提供註冊、登入、登出與目前使用者的 handler。
package auth

import "net/http"

// Sessions 由 session.Manager 實作
type Sessions interface {
	Establish(w http.ResponseWriter, r *http.Request, userID string) error
	Destroy(w http.ResponseWriter, r *http.Request) error
}
