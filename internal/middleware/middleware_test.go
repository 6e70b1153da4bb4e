package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"materialmart/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	userID string
	err    error
}

func (f fakeSessions) UserID(*http.Request) (string, error) { return f.userID, f.err }

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoadIdentity(t *testing.T) {
	cases := []struct {
		name     string
		sessions fakeSessions
		want     service.Identity
	}{
		{"signed in", fakeSessions{userID: "u1"}, service.Identity{UserID: "u1"}},
		{"anonymous", fakeSessions{}, service.Identity{}},
		{"backend error", fakeSessions{userID: "u1", err: errors.New("down")}, service.Identity{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := newContext()
			var got service.Identity
			h := LoadIdentity(tc.sessions)(func(c echo.Context) error {
				got = Identity(c)
				return nil
			})
			require.NoError(t, h(ctx))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIdentityWithoutMiddleware(t *testing.T) {
	ctx, _ := newContext()
	require.True(t, Identity(ctx).Anonymous())
}

func TestRequireAuth(t *testing.T) {
	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	// success path
	ctx, rec := newContext()
	ctx.Set(ContextIdentityKey, service.Identity{UserID: "u1"})
	require.NoError(t, RequireAuth(next)(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// anonymous
	called = false
	ctx, rec = newContext()
	require.NoError(t, RequireAuth(next)(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Authentication required"}`, rec.Body.String())
}
