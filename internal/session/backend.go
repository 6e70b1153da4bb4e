// Package session 實作伺服器端 session。
//
// Cookie 只保存經 securecookie 簽章的 session ID；session 內容存放在
// Backend（memory、postgres user_sessions 資料表或 redis）。ServerStore
// 實作 gorilla/sessions.Store，Manager 在其上提供登入、登出與查詢身分。
package session

import (
	"context"
	"time"
)

// Backend 保存已編碼的 session 內容。
// Load 對不存在或已過期的 session 回傳 found=false。
type Backend interface {
	Load(ctx context.Context, id string) (data string, found bool, err error)
	Save(ctx context.Context, id, data string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Pruner 由需要主動清除過期資料的 Backend 實作；redis 以 TTL 自動過期故不需要
type Pruner interface {
	Prune(ctx context.Context, now time.Time) (int64, error)
}
