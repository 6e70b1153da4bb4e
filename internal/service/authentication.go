// File: internal/service/authentication.go
package service

import (
	"context"
	"fmt"

	"materialmart/internal/apperr"
	"materialmart/internal/model"
	"materialmart/internal/store"
)

// ErrInvalidCredentials 不區分帳號不存在或密碼錯誤
var ErrInvalidCredentials = apperr.Unauthenticated("Invalid credentials")

// hashPassword 可在測試中覆寫
var hashPassword = HashPassword

// Auth 驗證身分；session 的建立與銷毀由 HTTP 層透過 session.Manager 處理
type Auth struct {
	repo store.Repository
}

func NewAuth(repo store.Repository) *Auth {
	return &Auth{repo: repo}
}

// Register 檢查 email 與 username 是否重複，雜湊密碼後建立使用者。
// nu.Password 為明文。
func (a *Auth) Register(ctx context.Context, nu model.NewUser) (*model.User, error) {
	existing, err := a.repo.GetUserByEmail(ctx, nu.Email)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User already exists")
	}

	existing, err = a.repo.GetUserByUsername(ctx, nu.Username)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Username already taken")
	}

	hash, err := hashPassword(nu.Password)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}
	nu.Password = hash

	// 檢查與建立之間沒有交易；並發註冊由資料庫 unique constraint 擋下並回傳 Conflict
	u, err := a.repo.CreateUser(ctx, nu)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	return u, nil
}

// Login 驗證 email 與密碼
func (a *Auth) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	if u == nil {
		_ = ComparePassword(dummyPasswordHash(), password)
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(u.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser 解析 session 綁定的使用者；匿名或帳號已不存在時回傳 nil
func (a *Auth) CurrentUser(ctx context.Context, id Identity) (*model.User, error) {
	if id.Anonymous() {
		return nil, nil
	}
	u, err := a.repo.GetUser(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("CurrentUser: %w", err)
	}
	return u, nil
}
