package handlers

import (
	"net/http"

	"github.com/NathanBartolo/echo/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves user management for administrators
type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(users *services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

type roleRequest struct {
	Role string `json:"role"`
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateRole handles PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrInvalidRole)
		return
	}

	user, err := h.users.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "id": id})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
