package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/services"
	"github.com/NathanBartolo/echo/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	sessionOAuthState = "oauth_state"

	googleLoginFailed = "Google login failed"

	oauthStateBytes = 32
)

// GoogleHandler runs the Google authorization code flow and hands the
// resulting session token to the frontend through a redirect.
type GoogleHandler struct {
	provider    core.IdentityProvider
	users       *services.UserService
	metrics     core.Recorder
	frontendURL string
}

func NewGoogleHandler(
	provider core.IdentityProvider,
	users *services.UserService,
	m core.Recorder,
	frontendURL string,
) *GoogleHandler {
	return &GoogleHandler{
		provider:    provider,
		users:       users,
		metrics:     m,
		frontendURL: frontendURL,
	}
}

// Login handles GET /api/auth/google
func (h *GoogleHandler) Login(c *gin.Context) {
	state, err := util.RandomURLString(oauthStateBytes)
	if err != nil {
		respondServerError(c, err, msgServerError)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionOAuthState, state)
	if err := session.Save(); err != nil {
		respondServerError(c, err, msgServerError)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// Callback handles GET /api/auth/google/callback
func (h *GoogleHandler) Callback(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	logger := log.Ctx(ctx)
	provider := h.provider.Name()

	session := sessions.Default(c)
	expected, _ := session.Get(sessionOAuthState).(string)
	session.Delete(sessionOAuthState)
	_ = session.Save()

	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		logger.Warn().Msg("oauth state mismatch")
		h.fail(c, provider, start, googleLoginFailed)
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		logger.Info().Str("error", errParam).Msg("google login cancelled")
		h.fail(c, provider, start, googleLoginFailed)
		return
	}

	info, err := h.provider.Exchange(ctx, c.Query("code"))
	if err != nil {
		logger.Error().Err(err).Msg("google code exchange failed")
		h.fail(c, provider, start, googleLoginFailed)
		return
	}

	user, err := h.users.AuthenticateWithGoogle(ctx, info)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve google user")
		h.fail(c, provider, start, googleLoginFailed)
		return
	}

	result, err := h.users.IssueSession(ctx, user, services.MethodGoogle)
	if err != nil {
		logger.Error().Err(err).Msg("failed to issue token")
		h.fail(c, provider, start, err.Error())
		return
	}

	userJSON, err := json.Marshal(result.User)
	if err != nil {
		h.fail(c, provider, start, err.Error())
		return
	}

	h.metrics.RecordOAuthCallback(provider, true)
	h.metrics.RecordAuthAttempt(services.MethodGoogle, true, time.Since(start))

	q := url.Values{}
	q.Set("token", result.Token)
	q.Set("user", string(userJSON))
	c.Redirect(http.StatusFound, util.FrontendURL(h.frontendURL, "/auth/callback", q))
}

func (h *GoogleHandler) fail(c *gin.Context, provider string, start time.Time, message string) {
	h.metrics.RecordOAuthCallback(provider, false)
	h.metrics.RecordAuthAttempt(services.MethodGoogle, false, time.Since(start))
	c.Redirect(http.StatusFound, util.FrontendURL(h.frontendURL, "/login", url.Values{"error": {message}}))
}
