package handlers

import (
	"net/http"
	"testing"

	"github.com/NathanBartolo/echo/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPlaylist(t *testing.T, env *testEnv, token, name string) models.Playlist {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/playlists", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Playlist](t, w)
}

func TestPlaylistFlow(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")

	p := createPlaylist(t, env, ada.Token, "Road trip")
	assert.Contains(t, env.do(t, http.MethodGet, "/api/playlists/"+p.ID, ada.Token, nil).Body.String(), `"songs":[]`)

	w := env.do(t, http.MethodPost, "/api/playlists/"+p.ID+"/song", ada.Token, gin.H{
		"song": gin.H{"trackId": 1440857781, "title": "Purple Rain", "artist": "Prince"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = env.do(t, http.MethodPost, "/api/playlists/"+p.ID+"/song", ada.Token, gin.H{
		"trackId": "1440857781", "title": "Purple Rain", "artist": "Prince",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p = decode[models.Playlist](t, w)
	require.Len(t, p.Songs, 2)
	assert.Equal(t, models.TrackID("1440857781"), p.Songs[0].TrackID)
	first, second := p.Songs[0].ID, p.Songs[1].ID

	w = env.do(t, http.MethodPut, "/api/playlists/"+p.ID+"/reorder", ada.Token, gin.H{"songIds": []string{first}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/playlists/"+p.ID+"/reorder", ada.Token, gin.H{"songIds": []string{second, first}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, second, decode[models.Playlist](t, w).Songs[0].ID)

	w = env.do(t, http.MethodDelete, "/api/playlists/"+p.ID+"/song/"+first, ada.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.Playlist](t, w).Songs, 1)

	w = env.do(t, http.MethodPut, "/api/playlists/"+p.ID, ada.Token, gin.H{"description": "summer"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Playlist](t, w)
	assert.Equal(t, "Road trip", updated.Name)
	assert.Equal(t, "summer", updated.Description)

	w = env.do(t, http.MethodGet, "/api/playlists/user/"+ada.User.ID, ada.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Playlist](t, w), 1)

	w = env.do(t, http.MethodDelete, "/api/playlists/"+p.ID, ada.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Deleted"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/playlists/"+p.ID, ada.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaylist_Validation(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	p := createPlaylist(t, env, ada.Token, "Mix")

	w := env.do(t, http.MethodPost, "/api/playlists", ada.Token, gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Playlist name required"}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/playlists/"+p.ID+"/song", ada.Token, gin.H{"song": gin.H{"artist": "x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Song data required"}`, w.Body.String())

	w = env.do(t, http.MethodPut, "/api/playlists/"+p.ID, ada.Token, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaylist_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	p := createPlaylist(t, env, ada.Token, "Mix")

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/playlists"},
		{http.MethodPost, "/api/playlists/" + p.ID + "/song"},
		{http.MethodDelete, "/api/playlists/" + p.ID + "/song/x"},
		{http.MethodDelete, "/api/playlists/" + p.ID},
	} {
		w := env.do(t, tc.method, tc.path, "", gin.H{"name": "x", "title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestPlaylist_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	bob := env.register(t, "Bob", "bob@example.com")
	admin := env.registerAdmin(t)
	p := createPlaylist(t, env, ada.Token, "Private")

	w := env.do(t, http.MethodGet, "/api/playlists/"+p.ID, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/playlists/user/"+ada.User.ID, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/playlists/"+p.ID, admin.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/playlists/"+p.ID, admin.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
