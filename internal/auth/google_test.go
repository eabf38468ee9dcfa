package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// newFakeGoogle serves the token and userinfo endpoints
func newFakeGoogle(t *testing.T, userInfoStatus int, userInfo map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userInfoStatus)
		_ = json.NewEncoder(w).Encode(userInfo)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogleProvider(srv *httptest.Server) *GoogleProvider {
	p := NewGoogleProvider(OAuthProviderConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:5000/api/auth/google/callback",
	}, srv.Client())
	p.config.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := NewGoogleProvider(OAuthProviderConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:5000/api/auth/google/callback",
	}, nil)

	u, err := url.Parse(p.AuthCodeURL("state-xyz"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, "select_account", q.Get("prompt"))
	assert.Equal(t, "google", p.Name())
}

func TestGoogleProvider_Exchange_Success(t *testing.T) {
	srv := newFakeGoogle(t, http.StatusOK, map[string]any{
		"sub":            "1234567890",
		"email":          "listener@gmail.com",
		"email_verified": true,
		"name":           "Listener",
		"picture":        "https://example.com/p.png",
	})
	p := newTestGoogleProvider(srv)

	info, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", info.ProviderUserID)
	assert.Equal(t, "listener@gmail.com", info.Email)
	assert.Equal(t, "Listener", info.Name)
	assert.Equal(t, "https://example.com/p.png", info.AvatarURL)
	assert.True(t, info.EmailVerified)
}

func TestGoogleProvider_Exchange_UnverifiedEmail(t *testing.T) {
	srv := newFakeGoogle(t, http.StatusOK, map[string]any{
		"sub":   "1234567890",
		"email": "someone@example.com",
	})

	info, err := newTestGoogleProvider(srv).Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.False(t, info.EmailVerified, "absent email_verified counts as unverified")
}

func TestGoogleProvider_Exchange_BadCode(t *testing.T) {
	srv := newFakeGoogle(t, http.StatusOK, map[string]any{"sub": "1"})
	p := newTestGoogleProvider(srv)

	_, err := p.Exchange(context.Background(), "bad-code")
	require.ErrorIs(t, err, ErrOAuthExchange)
}

func TestGoogleProvider_Exchange_UserInfoErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := newFakeGoogle(t, http.StatusUnauthorized, map[string]any{"error": "nope"})
		_, err := newTestGoogleProvider(srv).Exchange(context.Background(), "good-code")
		require.ErrorIs(t, err, ErrOAuthUserInfo)
	})

	t.Run("missing subject", func(t *testing.T) {
		srv := newFakeGoogle(t, http.StatusOK, map[string]any{"email": "x@example.com"})
		_, err := newTestGoogleProvider(srv).Exchange(context.Background(), "good-code")
		require.ErrorIs(t, err, ErrOAuthUserInfo)
	})
}
