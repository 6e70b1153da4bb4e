package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	CookieName = "materialmart-session"
	// MaxAge 一天（秒）
	MaxAge = 86400

	userIDKey = "user_id"
)

// CookieOptions 回傳 session cookie 設定；secure 於 production 開啟
func CookieOptions(secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   MaxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Manager 封裝登入狀態的建立、查詢與銷毀
type Manager struct {
	store *ServerStore
	name  string
}

func NewManager(store *ServerStore) *Manager {
	return &Manager{store: store, name: CookieName}
}

// UserID 回傳目前 session 的使用者；匿名時回傳空字串
func (m *Manager) UserID(r *http.Request) (string, error) {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	id, _ := s.Values[userIDKey].(string)
	return id, nil
}

// Establish 綁定 userID 並換發新的 session ID，舊 ID 立即失效
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, userID string) error {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.ID != "" {
		if err := m.store.Delete(r.Context(), s.ID); err != nil {
			return fmt.Errorf("regenerate session: %w", err)
		}
		s.ID = ""
	}
	s.Values = map[interface{}]interface{}{userIDKey: userID}
	s.Options.MaxAge = m.store.Options.MaxAge
	s.IsNew = true
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Destroy 刪除 session 紀錄並清除 cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s.Options.MaxAge = -1
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	s.Values = map[interface{}]interface{}{}
	s.ID = ""
	return nil
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
