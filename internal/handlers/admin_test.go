package handlers

import (
	"net/http"
	"testing"

	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	admin := env.registerAdmin(t)

	w := env.do(t, http.MethodGet, "/api/admin/users", ada.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin only"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 2)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = env.do(t, http.MethodGet, "/api/admin/users/"+ada.User.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ada.User.ID, decode[models.User](t, w).ID)

	w = env.do(t, http.MethodPut, "/api/admin/users/"+ada.User.ID+"/role", admin.Token, gin.H{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid role"}`, w.Body.String())

	w = env.do(t, http.MethodPut, "/api/admin/users/"+ada.User.ID+"/role", admin.Token, gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.Stats{TotalUsers: 2, AdminCount: 2}, decode[services.Stats](t, w))

	w = env.do(t, http.MethodDelete, "/api/admin/users/"+ada.User.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted","id":"`+ada.User.ID+`"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/admin/users/"+ada.User.ID, admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}
