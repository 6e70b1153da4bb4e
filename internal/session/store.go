package session

import (
	"context"
	"encoding/base32"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// ServerStore 實作 sessions.Store：cookie 只帶簽章過的 ID，Values 存於 Backend
type ServerStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	backend Backend
	now     func() time.Time
}

// NewServerStore 的 keyPairs 與 sessions.NewCookieStore 相同（hash key, 可選 block key 交替）
func NewServerStore(backend Backend, opts sessions.Options, keyPairs ...[]byte) *ServerStore {
	s := &ServerStore{
		Codecs:  securecookie.CodecsFromPairs(keyPairs...),
		Options: &opts,
		backend: backend,
		now:     time.Now,
	}
	s.MaxAge(opts.MaxAge)
	return s
}

// MaxAge 同步 cookie 與 codec 的有效期限
func (s *ServerStore) MaxAge(age int) {
	s.Options.MaxAge = age
	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Get 透過 request registry 取得 session，同一 request 內只載入一次
func (s *ServerStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New 依 cookie 載入既有 session。
// 簽章不符或 backend 已無紀錄時回傳新的空 session，不視為錯誤。
func (s *ServerStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.Codecs...); err != nil {
		return session, nil
	}

	data, found, err := s.backend.Load(r.Context(), id)
	if err != nil {
		return session, err
	}
	if !found {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, data, &session.Values, s.Codecs...); err != nil {
		return session, nil
	}
	session.ID = id
	session.IsNew = false
	return session, nil
}

// Save 寫入 backend 並設定 cookie；MaxAge < 0 時刪除紀錄並讓 cookie 過期
func (s *ServerStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.backend.Delete(r.Context(), session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newID()
	}
	data, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	expiresAt := s.now().Add(time.Duration(session.Options.MaxAge) * time.Second)
	if err := s.backend.Save(r.Context(), session.ID, data, expiresAt); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Delete 移除 backend 紀錄；用於登入時汰換舊 session
func (s *ServerStore) Delete(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, id)
}

func (s *ServerStore) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func newID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
