package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/metrics"
	"github.com/NathanBartolo/echo/internal/mocks"
	"github.com/NathanBartolo/echo/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testFrontendURL = "http://localhost:5173"

func newGoogleRouter(t *testing.T, env *testEnv) (*gin.Engine, *mocks.MockIdentityProvider) {
	t.Helper()
	provider := mocks.NewMockIdentityProvider(gomock.NewController(t))
	provider.EXPECT().Name().Return("google").AnyTimes()
	provider.EXPECT().AuthCodeURL(gomock.Any()).DoAndReturn(func(state string) string {
		return "https://accounts.google.com/o/oauth2/auth?state=" + url.QueryEscape(state)
	}).AnyTimes()

	h := NewGoogleHandler(provider, env.users, metrics.NewNoopMetrics(), testFrontendURL)

	r := gin.New()
	r.Use(sessions.Sessions("echo_session", cookie.NewStore([]byte("test-session-secret"))))
	r.GET("/api/auth/google", h.Login)
	r.GET("/api/auth/google/callback", h.Callback)
	return r, provider
}

// startLogin runs the redirect leg and returns the issued state and session cookies
func startLogin(t *testing.T, r http.Handler) (string, []*http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	return state, w.Result().Cookies()
}

func callback(r http.Handler, query string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?"+query, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleCallback_Success(t *testing.T) {
	env := newTestEnv(t)
	r, provider := newGoogleRouter(t, env)

	provider.EXPECT().Exchange(gomock.Any(), "auth-code").Return(&core.OAuthUserInfo{
		ProviderUserID: "g-1",
		Email:          testAdminEmail,
		EmailVerified:  true,
		Name:           "Grace",
	}, nil)

	state, cookies := startLogin(t, r)
	w := callback(r, "state="+url.QueryEscape(state)+"&code=auth-code", cookies)
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", loc.Path)
	assert.NotEmpty(t, loc.Query().Get("token"))

	var profile models.Profile
	require.NoError(t, json.Unmarshal([]byte(loc.Query().Get("user")), &profile))
	assert.Equal(t, "Grace", profile.Name)
	assert.Equal(t, models.RoleAdmin, profile.Role, "configured admin email is promoted")

	// the issued token works against the API
	me := env.do(t, http.MethodGet, "/api/auth/me", loc.Query().Get("token"), nil)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestGoogleCallback_Failures(t *testing.T) {
	failure := testFrontendURL + "/login?error=Google+login+failed"

	t.Run("state mismatch", func(t *testing.T) {
		env := newTestEnv(t)
		r, _ := newGoogleRouter(t, env)
		_, cookies := startLogin(t, r)

		w := callback(r, "state=forged&code=x", cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, failure, w.Header().Get("Location"))
	})

	t.Run("no session", func(t *testing.T) {
		env := newTestEnv(t)
		r, _ := newGoogleRouter(t, env)

		w := callback(r, "state=anything&code=x", nil)
		assert.Equal(t, failure, w.Header().Get("Location"))
	})

	t.Run("exchange error", func(t *testing.T) {
		env := newTestEnv(t)
		r, provider := newGoogleRouter(t, env)
		provider.EXPECT().Exchange(gomock.Any(), "bad").Return(nil, errors.New("invalid_grant"))

		state, cookies := startLogin(t, r)
		w := callback(r, "state="+url.QueryEscape(state)+"&code=bad", cookies)
		assert.Equal(t, failure, w.Header().Get("Location"))
	})

	t.Run("email belongs to a local account", func(t *testing.T) {
		env := newTestEnv(t)
		victim := env.register(t, "Victim", "victim@example.com")
		r, provider := newGoogleRouter(t, env)
		provider.EXPECT().Exchange(gomock.Any(), "auth-code").Return(&core.OAuthUserInfo{
			ProviderUserID: "other-sub",
			Email:          "victim@example.com",
			EmailVerified:  true,
		}, nil)

		state, cookies := startLogin(t, r)
		w := callback(r, "state="+url.QueryEscape(state)+"&code=auth-code", cookies)
		assert.Equal(t, failure, w.Header().Get("Location"))

		stored, err := env.store.GetUserByID(context.Background(), victim.User.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.GoogleID)
	})

	t.Run("user denied consent", func(t *testing.T) {
		env := newTestEnv(t)
		r, _ := newGoogleRouter(t, env)

		state, cookies := startLogin(t, r)
		w := callback(r, "state="+url.QueryEscape(state)+"&error=access_denied", cookies)
		assert.Equal(t, failure, w.Header().Get("Location"))
	})
}
