package handlers

import (
	"net/http"

	"github.com/NathanBartolo/echo/internal/middleware"
	"github.com/NathanBartolo/echo/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves local login and the caller's own profile
type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrMissingFields)
		return
	}

	session, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrMissingFields)
		return
	}

	session, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c).Profile())
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrMissingFields)
		return
	}

	profile, err := h.users.UpdateProfile(
		c.Request.Context(),
		middleware.CurrentUser(c).ID,
		services.ProfileUpdate{Name: req.Name, Email: req.Email},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ChangePassword handles PUT /api/auth/profile/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrPasswordsRequired)
		return
	}

	err := h.users.ChangePassword(
		c.Request.Context(),
		middleware.CurrentUser(c).ID,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password updated successfully")
}

// UpdateAvatar handles PUT /api/auth/profile/avatar
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	var req avatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrAvatarRequired)
		return
	}

	profile, err := h.users.UpdateAvatar(c.Request.Context(), middleware.CurrentUser(c).ID, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RemoveAvatar handles DELETE /api/auth/profile/avatar
func (h *AuthHandler) RemoveAvatar(c *gin.Context) {
	profile, err := h.users.RemoveAvatar(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount handles DELETE /api/auth/profile. The body is optional for
// Google-only accounts.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if c.Request.ContentLength != 0 {
		_ = c.ShouldBindJSON(&req)
	}

	if err := h.users.DeleteAccount(c.Request.Context(), middleware.CurrentUser(c).ID, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Account deleted successfully")
}
